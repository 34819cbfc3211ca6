package domain_test

import (
	"smartsite/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate_Scenario(t *testing.T) {
	res := domain.Calculate(domain.CalculatorInput{
		MonthlyInquiries: 100,
		ConnectionRate:   50,
		CloseRate:        20,
		LifetimeValue:    1000,
	})

	require.InDelta(t, 50.0, res.CurrentConnected, 1e-9)
	require.InDelta(t, 10.0, res.CurrentClosed, 1e-9)
	require.InDelta(t, 10000.0, res.CurrentRevenue, 1e-9)
	require.InDelta(t, 70.0, res.SmartConnected, 1e-9)
	require.InDelta(t, 17.5, res.SmartClosed, 1e-9)
	require.InDelta(t, 17500.0, res.SmartRevenue, 1e-9)
	require.InDelta(t, 7500.0, res.LiftRevenue, 1e-9)
	require.Equal(t, map[string]float64{
		domain.AssumptionSmartConnectionRate: 70.0,
		domain.AssumptionSmartCloseRate:      25.0,
	}, res.Assumptions)
}

func TestCalculate_CapsRates(t *testing.T) {
	res := domain.Calculate(domain.CalculatorInput{
		MonthlyInquiries: 10,
		ConnectionRate:   80,
		CloseRate:        85,
		LifetimeValue:    500,
	})

	require.Equal(t, 95.0, res.Assumptions[domain.AssumptionSmartConnectionRate])
	require.Equal(t, 85.0, res.Assumptions[domain.AssumptionSmartCloseRate])
	require.InDelta(t, 9.5, res.SmartConnected, 1e-9)
}

func TestCalculate_Properties(t *testing.T) {
	inquiries := []int{0, 1, 37, 1000, 10000}
	rates := []float64{0, 0.5, 12.34, 50, 79.99, 80, 90, 100}
	values := []float64{0.01, 99.99, 1234.56, 1000000}

	for _, n := range inquiries {
		for _, conn := range rates {
			for _, closeRate := range rates {
				for _, ltv := range values {
					in := domain.CalculatorInput{
						MonthlyInquiries: n,
						ConnectionRate:   conn,
						CloseRate:        closeRate,
						LifetimeValue:    ltv,
					}
					res := domain.Calculate(in)

					smartConn := res.Assumptions[domain.AssumptionSmartConnectionRate]
					smartClose := res.Assumptions[domain.AssumptionSmartCloseRate]
					require.LessOrEqual(t, smartConn, domain.SmartConnectionRateCap)
					require.LessOrEqual(t, smartClose, domain.SmartCloseRateCap)
					if conn <= domain.SmartConnectionRateCap {
						require.GreaterOrEqual(t, smartConn, conn)
					}
					if closeRate <= domain.SmartCloseRateCap {
						require.GreaterOrEqual(t, smartClose, closeRate)
					}

					// each side is rounded separately from the lift
					require.InDelta(t, res.SmartRevenue-res.CurrentRevenue, res.LiftRevenue, 0.0150001, "%+v", in)

					require.Equal(t, res, domain.Calculate(in), "calculate must be deterministic")
				}
			}
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 1.004, want: 1},
		{in: 1.006, want: 1.01},
		{in: 0.125, want: 0.12},
		{in: 0.375, want: 0.38},
		{in: 2.675, want: 2.67},
		{in: 17.5, want: 17.5},
		{in: 123456789.129, want: 123456789.13},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, domain.Round2(tt.in), "Round2(%v)", tt.in)
	}
}
