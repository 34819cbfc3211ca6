// Package schema validates raw request bodies into typed domain values.
//
// Every payload is checked exhaustively: all violated fields are reported
// together in a *ValidationError rather than stopping at the first failure.
package schema

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"smartsite/pkg/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator() //nolint: gochecknoglobals

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	if err := v.RegisterValidation("dotted_domain", dottedDomain); err != nil {
		panic(err)
	}

	return v
}

// dottedDomain requires the part after the last "@" to contain a dot that is
// neither its first nor its last character.
func dottedDomain(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	host := s[at+1:]
	dot := strings.IndexByte(host, '.')

	return dot > 0 && !strings.HasSuffix(host, ".")
}

var calculatorFields = []field{ //nolint: gochecknoglobals
	{name: "monthlyInquiries", alias: "monthly_inquiries", kind: kindInteger},
	{name: "connectionRate", alias: "connection_rate", kind: kindNumber},
	{name: "closeRate", alias: "close_rate", kind: kindNumber},
	{name: "lifetimeValue", alias: "lifetime_value", kind: kindNumber},
}

type calculatorForm struct {
	MonthlyInquiries *float64 `json:"monthlyInquiries" validate:"required,gte=0,lte=10000"`
	ConnectionRate   *float64 `json:"connectionRate"   validate:"required,gte=0,lte=100"`
	CloseRate        *float64 `json:"closeRate"        validate:"required,gte=0,lte=100"`
	LifetimeValue    *float64 `json:"lifetimeValue"    validate:"required,gt=0,lte=1000000"`
}

// CalculatorInput validates a revenue calculator payload.
func CalculatorInput(body []byte) (domain.CalculatorInput, error) {
	var form calculatorForm
	err := parse(body, calculatorFields, &form, func(v values) {
		form.MonthlyInquiries = v.num("monthlyInquiries")
		form.ConnectionRate = v.num("connectionRate")
		form.CloseRate = v.num("closeRate")
		form.LifetimeValue = v.num("lifetimeValue")
	})
	if err != nil {
		return domain.CalculatorInput{}, err
	}

	return domain.CalculatorInput{
		MonthlyInquiries: int(*form.MonthlyInquiries),
		ConnectionRate:   *form.ConnectionRate,
		CloseRate:        *form.CloseRate,
		LifetimeValue:    *form.LifetimeValue,
	}, nil
}

var leadFields = []field{ //nolint: gochecknoglobals
	{name: "name", kind: kindString},
	{name: "phone", kind: kindString},
	{name: "email", kind: kindString},
	{name: "source", kind: kindString},
	{name: "notes", kind: kindString},
	{name: "industry", kind: kindString},
}

type leadForm struct {
	Name     *string `json:"name"     validate:"required,min=1"`
	Phone    *string `json:"phone"    validate:"required,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email,dotted_domain"`
	Source   *string `json:"source"   validate:"required,min=1"`
	Notes    *string `json:"notes"`
	Industry *string `json:"industry"`
}

// Lead validates a lead-capture payload.
func Lead(body []byte) (domain.Lead, error) {
	var form leadForm
	err := parse(body, leadFields, &form, func(v values) {
		form.Name = v.str("name")
		form.Phone = v.str("phone")
		form.Email = v.str("email")
		form.Source = v.str("source")
		form.Notes = v.str("notes")
		form.Industry = v.str("industry")
	})
	if err != nil {
		return domain.Lead{}, err
	}

	return domain.Lead{
		Name:     *form.Name,
		Phone:    *form.Phone,
		Email:    form.Email,
		Source:   *form.Source,
		Notes:    form.Notes,
		Industry: form.Industry,
	}, nil
}

var demoRequestFields = []field{ //nolint: gochecknoglobals
	{name: "name", kind: kindString},
	{name: "phone", kind: kindString},
	{name: "sampleIntent", alias: "sample_intent", kind: kindString},
}

type demoRequestForm struct {
	Name         *string `json:"name"         validate:"required,min=1"`
	Phone        *string `json:"phone"        validate:"required,min=1"`
	SampleIntent *string `json:"sampleIntent"`
}

// DemoRequest validates a demo-request payload.
func DemoRequest(body []byte) (domain.DemoRequest, error) {
	var form demoRequestForm
	err := parse(body, demoRequestFields, &form, func(v values) {
		form.Name = v.str("name")
		form.Phone = v.str("phone")
		form.SampleIntent = v.str("sampleIntent")
	})
	if err != nil {
		return domain.DemoRequest{}, err
	}

	return domain.DemoRequest{
		Name:         *form.Name,
		Phone:        *form.Phone,
		SampleIntent: form.SampleIntent,
	}, nil
}

// parse decodes body against fields, lets fill copy the decoded values into
// form and runs the struct constraints. Violations from both steps are merged,
// keeping at most one per field, in field declaration order.
func parse(body []byte, fields []field, form any, fill func(values)) error {
	vals, violations, err := decodeObject(body, fields)
	if err != nil {
		return &ValidationError{
			Violations: []Violation{{Field: "body", Constraint: "object", Message: "must be a JSON object"}},
			cause:      err,
		}
	}

	fill(vals)

	seen := make(map[string]bool, len(violations))
	for _, v := range violations {
		seen[v.Field] = true
	}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err //nolint: wrapcheck
		}
		for _, fe := range fieldErrs {
			if seen[fe.Field()] {
				continue
			}
			seen[fe.Field()] = true
			violations = append(violations, toViolation(fe))
		}
	}

	if len(violations) == 0 {
		return nil
	}

	order := make(map[string]int, len(fields))
	for i, f := range fields {
		order[f.name] = i
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return order[violations[i].Field] < order[violations[j].Field]
	})

	return &ValidationError{Violations: violations}
}

func toViolation(fe validator.FieldError) Violation {
	constraint := fe.Tag()
	if fe.Param() != "" {
		constraint += "=" + fe.Param()
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = "must not be empty"
	case "gte":
		msg = "must be greater than or equal to " + fe.Param()
	case "gt":
		msg = "must be greater than " + fe.Param()
	case "lte":
		msg = "must be less than or equal to " + fe.Param()
	case "email", "dotted_domain":
		constraint = "email"
		msg = "must be a valid email address"
	default:
		msg = "failed " + constraint
	}

	return Violation{Field: fe.Field(), Constraint: constraint, Message: msg}
}
