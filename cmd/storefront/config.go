package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wetigu/ai-playground/internal/config"
)

func configCmd(a *app) *cobra.Command {
	var env bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging the config file, .env and the
environment. The API token is masked.

With --env, list every supported environment variable instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env {
				fmt.Fprint(a.out, config.Usage())
				return nil
			}

			shown := *a.cfg
			if shown.API.Token != "" {
				shown.API.Token = "********"
			}
			if a.cfg.Output == "table" {
				fmt.Fprintf(a.out, "Config file:  %s\n", orNone(a.cfg.Path()))
				fmt.Fprintf(a.out, "API URL:      %s\n", shown.API.BaseURL)
				fmt.Fprintf(a.out, "API token:    %s\n", orNone(shown.API.Token))
				fmt.Fprintf(a.out, "Timeout:      %s\n", shown.API.Timeout)
				fmt.Fprintf(a.out, "Rate limit:   %g/s (burst %d)\n", shown.API.RateLimit, shown.API.RateBurst)
				fmt.Fprintf(a.out, "Log:          %s, %s\n", shown.Log.Level, shown.Log.Format)
				fmt.Fprintf(a.out, "Output:       %s\n", shown.Output)
				return nil
			}
			return a.render(shown, table{})
		},
	}

	cmd.Flags().BoolVar(&env, "env", false, "List supported environment variables")

	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
