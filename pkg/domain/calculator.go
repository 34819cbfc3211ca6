package domain

import (
	"math"
	"strconv"
)

// Smart-site assumptions: rates are lifted by a fixed number of percentage
// points and capped.
const (
	SmartConnectionRateLift = 20.0
	SmartConnectionRateCap  = 95.0
	SmartCloseRateLift      = 5.0
	SmartCloseRateCap       = 85.0
)

// Keys of CalculatorResult.Assumptions.
const (
	AssumptionSmartConnectionRate = "smartConnectionRate"
	AssumptionSmartCloseRate      = "smartCloseRate"
)

// CalculatorInput describes a contractor's current funnel. Rates are percents.
type CalculatorInput struct {
	MonthlyInquiries int     `json:"monthlyInquiries"`
	ConnectionRate   float64 `json:"connectionRate"`
	CloseRate        float64 `json:"closeRate"`
	LifetimeValue    float64 `json:"lifetimeValue"`
}

// CalculatorResult compares current monthly revenue with the smart-site projection.
type CalculatorResult struct {
	CurrentConnected float64 `json:"currentConnected"`
	CurrentClosed    float64 `json:"currentClosed"`
	CurrentRevenue   float64 `json:"currentRevenue"`
	SmartConnected   float64 `json:"smartConnected"`
	SmartClosed      float64 `json:"smartClosed"`
	SmartRevenue     float64 `json:"smartRevenue"`
	LiftRevenue      float64 `json:"liftRevenue"`
	// Assumptions holds the unrounded smart-site rates used for the projection.
	Assumptions map[string]float64 `json:"assumptions"`
}

// Calculate projects the revenue lift for a validated input. Every monetary and
// count output is rounded to two decimals; lift is computed before rounding.
func Calculate(in CalculatorInput) CalculatorResult {
	inquiries := float64(in.MonthlyInquiries)

	currentConnected := inquiries * (in.ConnectionRate / 100)
	currentClosed := currentConnected * (in.CloseRate / 100)
	currentRevenue := currentClosed * in.LifetimeValue

	smartConnectionRate := math.Min(SmartConnectionRateCap, in.ConnectionRate+SmartConnectionRateLift)
	smartCloseRate := math.Min(SmartCloseRateCap, in.CloseRate+SmartCloseRateLift)

	smartConnected := inquiries * (smartConnectionRate / 100)
	smartClosed := smartConnected * (smartCloseRate / 100)
	smartRevenue := smartClosed * in.LifetimeValue

	return CalculatorResult{
		CurrentConnected: Round2(currentConnected),
		CurrentClosed:    Round2(currentClosed),
		CurrentRevenue:   Round2(currentRevenue),
		SmartConnected:   Round2(smartConnected),
		SmartClosed:      Round2(smartClosed),
		SmartRevenue:     Round2(smartRevenue),
		LiftRevenue:      Round2(smartRevenue - currentRevenue),
		Assumptions: map[string]float64{
			AssumptionSmartConnectionRate: smartConnectionRate,
			AssumptionSmartCloseRate:      smartCloseRate,
		},
	}
}

// Round2 rounds v to two decimal places, half to even on the exact binary
// value of v (2.675 is stored below the midpoint and rounds to 2.67).
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)

	return r
}
