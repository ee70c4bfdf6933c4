package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/wetigu/ai-playground/internal/config"
	"github.com/wetigu/ai-playground/internal/errors"
	"github.com/wetigu/ai-playground/pkg/api"
	"github.com/wetigu/ai-playground/pkg/resource"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// skipConfig marks commands that run without loading configuration.
const skipConfig = "skip-config"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by all commands of one invocation.
type app struct {
	// Flags
	cfgPath string
	output  string
	apiURL  string
	trace   bool
	metrics bool

	cfg      *config.Config
	client   *api.Client
	logger   *slog.Logger
	registry *prometheus.Registry

	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Command line client for the storefront API",
		Long: `storefront reads and writes products, orders and users through the
storefront REST API.

Settings are read from an optional YAML file, a .env file in the working
directory and STOREFRONT_* environment variables. Run "storefront config --env"
to list them.

Examples:
  storefront products list --category hardware
  storefront orders get 12 -o yaml
  storefront users create -f user.yaml
  storefront mock --addr :8000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] != "" {
				return nil
			}
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.metrics || a.registry == nil {
				return nil
			}
			return a.dumpMetrics()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVarP(&a.output, "output", "o", "", "Output format: table, json or yaml (default from config)")
	flags.StringVar(&a.apiURL, "api-url", "", "Backend API base URL (overrides STOREFRONT_API_URL)")
	flags.BoolVar(&a.trace, "trace", false, "Print request state transitions to stderr")
	flags.BoolVar(&a.metrics, "metrics", false, "Print client request metrics to stderr on exit")

	rootCmd.AddCommand(
		productsCmd(a),
		ordersCmd(a),
		usersCmd(a),
		mockCmd(a),
		configCmd(a),
		versionCmd(a),
	)

	return rootCmd
}

// init loads configuration and builds the API client.
func (a *app) init() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	if a.output != "" {
		cfg.Output = a.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.errOut).With("component", "storefront")

	a.registry = prometheus.NewRegistry()
	metrics := api.NewMetrics(api.WithRegistry(a.registry))

	client, err := api.NewClient(cfg.API,
		api.WithLogger(a.logger),
		api.WithMetrics(metrics),
	)
	if err != nil {
		return errors.New("S002").WithDetail(err.Error()).Wrap(err)
	}
	a.client = client
	return nil
}

// accessorOptions returns the options every accessor is created with.
func (a *app) accessorOptions() []resource.Option {
	return []resource.Option{resource.WithLogger(a.logger)}
}

func (a *app) dumpMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return err
		}
	}
	return nil
}

// success prints a success message.
func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.errOut, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func (a *app) info(format string, args ...any) {
	fmt.Fprintf(a.errOut, "  %s\n", fmt.Sprintf(format, args...))
}
