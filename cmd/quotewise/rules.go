// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the pricing rules in application order and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, r := range c.engine.Rules() {
			fmt.Fprintf(out, "%d. %-20s %s\n", i+1, r.ID, r.Description)
		}

		data, err := yaml.Marshal(map[string]any{
			"pricing": c.cfg.Pricing,
			"risk":    c.cfg.Risk,
		})
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		fmt.Fprintf(out, "\n%s", data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
