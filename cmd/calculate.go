package main

import (
	"encoding/json"
	"fmt"
	"smartsite/pkg/domain"
	"smartsite/pkg/schema"

	"github.com/spf13/cobra"
)

// calculateCommand prints the revenue projection for the given funnel numbers,
// applying the same validation as the HTTP endpoint.
func calculateCommand() *cobra.Command {
	var (
		inquiries      float64
		connectionRate float64
		closeRate      float64
		lifetimeValue  float64
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Projects the revenue lift of the Smart Site",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]float64{
				"monthlyInquiries": inquiries,
				"connectionRate":   connectionRate,
				"closeRate":        closeRate,
				"lifetimeValue":    lifetimeValue,
			})
			if err != nil {
				return fmt.Errorf("could not encode input: %w", err)
			}

			in, err := schema.CalculatorInput(body)
			if err != nil {
				return err //nolint: wrapcheck
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(domain.Calculate(in)); err != nil {
				return fmt.Errorf("could not print result: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&inquiries, "inquiries", 0, "Monthly inbound inquiries (0-10000)")
	cmd.Flags().Float64Var(&connectionRate, "connection-rate", 0, "Current connection rate in percent (0-100)")
	cmd.Flags().Float64Var(&closeRate, "close-rate", 0, "Current close rate in percent (0-100)")
	cmd.Flags().Float64Var(&lifetimeValue, "lifetime-value", 0, "Customer lifetime value (USD, >0)")
	_ = cmd.MarkFlagRequired("inquiries")
	_ = cmd.MarkFlagRequired("connection-rate")
	_ = cmd.MarkFlagRequired("close-rate")
	_ = cmd.MarkFlagRequired("lifetime-value")

	return cmd
}
