// Package cli implements fpctl, the command-line front end of the
// fingerprint service.  Catalog and calculation commands run in-process;
// the field registry commands talk to a running server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	appfp "github.com/turtacn/KeyIP-Fingerprint/internal/application/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/config"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/client"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

func (b BuildInfo) TableHeaders() []string { return []string{"Version", "Commit", "Built"} }
func (b BuildInfo) TableRows() [][]string  { return [][]string{{b.Version, b.Commit, b.BuildDate}} }

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
	ServerAddr   string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Service      appfp.Service
	Client       *client.Client
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// WithCLIContext stores cliCtx in ctx.  Commands executed with the returned
// context skip configuration loading.
func WithCLIContext(ctx context.Context, cliCtx *CLIContext) context.Context {
	return context.WithValue(ctx, cliContextKey{}, cliCtx)
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fpctl",
		Short: "fpctl - molecular fingerprint settings and calculation",
		Long: "fpctl lists the supported fingerprint families, builds and validates\n" +
			"settings descriptors, checks that two descriptors produce interchangeable\n" +
			"fingerprints, calculates bit vectors, and manages the descriptors\n" +
			"registered for index fields on a fingerprint server.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./fpctl.yaml, then $HOME/.keyip/fingerprint.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "table", "output format (table, json, text)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "global operation timeout")
	pf.StringVar(&opts.ServerAddr, "server", "", "fingerprint server address (default: http://localhost:<server.port>)")

	cmd.AddCommand(
		newFamiliesCmd(),
		newSpecCmd(),
		newValidateCmd(),
		newCompatCmd(),
		newCalcCmd(),
		newSimilarityCmd(),
		newFieldsCmd(),
		newVersionCmd(),
	)

	return cmd
}

// persistentPreRun initializes config, logger, service and client, then
// stores the CLIContext.  A context injected with WithCLIContext is kept and
// only its output settings are refreshed from the flags.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		if cmd.Flags().Changed("output") {
			cliCtx.OutputFormat = opts.OutputFormat
		}
		if cmd.Flags().Changed("verbose") {
			cliCtx.Verbose = opts.Verbose
		}
		return nil
	}

	switch strings.ToLower(opts.OutputFormat) {
	case "table", "json", "text":
	default:
		return fmt.Errorf("unknown output format %q; expected table|json|text", opts.OutputFormat)
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	apiClient, err := initClient(cfg, opts)
	if err != nil {
		logger.Warn("API client initialization failed, field commands will not work", logging.Err(err))
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Service:      initService(cfg, logger),
		Client:       apiClient,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
		Timeout:      opts.Timeout,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(WithCLIContext(ctx, cliCtx))

	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./fpctl.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".keyip", "fingerprint.yaml"))
	}

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}

	return config.LoadFromEnv()
}

// initLogger creates a console logger on stderr so that command output on
// stdout stays machine-readable.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = logging.LevelDebug
	}

	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// initService builds an in-process fingerprint service without a field
// registry.
func initService(cfg *config.Config, logger logging.Logger) appfp.Service {
	opts := []appfp.Option{
		appfp.WithBatchConcurrency(cfg.Fingerprint.BatchConcurrency),
		appfp.WithMaxBatchSize(cfg.Fingerprint.MaxBatchSize),
	}
	if defaults, err := cfg.Fingerprint.DefaultSettings(); err == nil {
		opts = append(opts, appfp.WithDefaultSettings(defaults))
	}
	kernel := hashkernel.New(cfg.Fingerprint.Kernel, logger.Named("kernel"))
	return appfp.NewService(kernel, nil, logger.Named("fingerprint"), opts...)
}

// initClient creates an API client for the configured server.
func initClient(cfg *config.Config, opts *RootOptions) (*client.Client, error) {
	addr := opts.ServerAddr
	if addr == "" {
		addr = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	return client.NewClient(addr, os.Getenv("KEYIP_FP_API_KEY"), client.WithTimeout(opts.Timeout))
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.InvalidParam("command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.InvalidParam("CLIContext not found in command context")
	}

	return cliCtx, nil
}

// commandContext applies the global timeout to the command's context.
func commandContext(cmd *cobra.Command, cliCtx *CLIContext) (context.Context, context.CancelFunc) {
	if cliCtx.Timeout > 0 {
		return context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	}
	return context.WithCancel(cmd.Context())
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}

	return nil
}

// tableProvider is implemented by every result the CLI prints.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd.OutOrStdout(), data)
	}

	switch strings.ToLower(cliCtx.OutputFormat) {
	case "json":
		return printJSON(cmd.OutOrStdout(), data)
	case "text":
		return printText(cmd.OutOrStdout(), data)
	default:
		return printTable(cmd.OutOrStdout(), data)
	}
}

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printText writes one tab-separated line per row, without headers.
func printText(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	case tableProvider:
		for _, row := range v.TableRows() {
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "%+v\n", v)
		return err
	}
}

func printTable(w io.Writer, data interface{}) error {
	tp, ok := data.(tableProvider)
	if !ok {
		return printText(w, data)
	}
	RenderTable(w, tp.TableHeaders(), tp.TableRows())
	return nil
}

// RenderTable renders headers and rows as an aligned table.
func RenderTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", msg)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate})
		},
	}
}

//Personal.AI order the ending
