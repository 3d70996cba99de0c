package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ironsheep/sketch2wire/internal/config"
	"github.com/ironsheep/sketch2wire/internal/metrics"
	"github.com/ironsheep/sketch2wire/internal/pipeline"
	"github.com/ironsheep/sketch2wire/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// LogLevelEnv enables debug logging when set to "debug".
const LogLevelEnv = config.EnvPrefix + "LOG_LEVEL"

type rootOptions struct {
	configPath string
	envFile    string
	debug      bool
	analyzer   *pipeline.Analyzer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var metricsAddr string

	root := &cobra.Command{
		Use:   "sketch2wire",
		Short: "Turn UI sketches into wireframes",
		Long: `sketch2wire detects boxes drawn in a UI sketch, classifies them as
components (navbar, hero, card, button, ...) and lays them out on a canvas.

Run without a subcommand to start the MCP server on stdin/stdout.

Environment variables:
  SKETCH2WIRE_LOG_LEVEL=debug    Enable debug logging
  SKETCH2WIRE_*                  Override configuration values (see --config)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, metricsAddr)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, metricsAddr)
		},
	}
	serve.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(serve, newAnalyzeCmd(opts), newConfigCmd(opts), newVersionCmd())
	return root
}

// setup loads the dotenv file, configures logging and builds the analyzer.
func (o *rootOptions) setup() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	o.debug = os.Getenv(LogLevelEnv) == "debug"

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.analyzer, err = pipeline.New(cfg)
	return err
}

func runServe(opts *rootOptions, metricsAddr string) error {
	if opts.debug {
		log.Printf("sketch2wire MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var m *metrics.Metrics
	if metricsAddr != "" {
		m = metrics.New(prometheus.DefaultRegisterer)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Printf("Metrics server error: %v", err)
			}
		}()
		if opts.debug {
			log.Printf("Serving metrics on %s/metrics", metricsAddr)
		}
	}

	srv := server.New(opts.analyzer, m)
	srv.Version = Version
	srv.Debug = opts.debug
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	return nil
}

// newConfigCmd prints the configuration after defaults, --config and the
// environment have been applied.
func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := opts.analyzer.Config().YAML()
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sketch2wire %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
