package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tinytelemetry/qtrace/internal/model"
	"github.com/tinytelemetry/qtrace/internal/report"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "qtrace [flags] <logfile>",
		Short: "Summarize ActiveRecord query traces from a log file",
		Long: "qtrace reads a log written with ActiveRecord query tracing enabled, groups the queries by SQL " +
			"and reports how often each one ran, with which bindings and from which call sites. " +
			"Use - to read the log from stdin.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			return run(cfg, args[0], cmd.OutOrStdout(), logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/qtrace/config.yml)")
	flags.String("source-root", "", "path prefix of application stack frames (default is the working directory)")
	flags.String("query-marker", model.DefaultQueryMarker, "marker of the query instrumentation namespace")
	flags.String("sql-marker", model.DefaultSQLMarker, "marker of the SQL payload field")
	flags.String("allocations-marker", model.DefaultAllocationsMarker, "marker of the field that ends the SQL payload")
	flags.String("binds-marker", model.DefaultBindsMarker, "marker of the bindings field")
	flags.Int("min-count", defaultMinCount, "hide queries executed fewer times than this")
	flags.Bool("color", true, "emphasize counts with terminal styling")
	flags.Bool("chart", false, "append a bar chart of the most executed queries")
	flags.Int("chart-top", defaultChartTop, "number of queries shown in the chart")
	flags.Int("chart-width", defaultChartWidth, "chart width in columns")
	flags.String("format", defaultFormat, "output format: text or yaml")
	flags.Bool("pager", false, "open the text report in a scrollable pager")
	flags.Int("max-line-size", defaultMaxLine, "maximum size of one log line in bytes")
	flags.BoolP("verbose", "v", false, "log processing details to stderr")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		out := c.OutOrStdout()
		fmt.Fprint(out, report.SetupInstructions(colorEnabled(c)))
		fmt.Fprintln(out)
		fmt.Fprint(out, c.UsageString())
	})

	cmd.Version = version
	cmd.SetVersionTemplate(fmt.Sprintf(
		"qtrace - Query Trace Reader\n  Version:    %s\n  Commit:     %s\n  Built:      %s\n  Go version: %s\n",
		version, commit, buildTime, goVersion))

	return cmd
}

func loadConfig(v *viper.Viper, configPath string) (appConfig, error) {
	var cfg appConfig

	cwd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("finding working directory: %w", err)
	}

	v.SetEnvPrefix("QTRACE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("source-root", withTrailingSlash(cwd))
	v.SetDefault("query-marker", model.DefaultQueryMarker)
	v.SetDefault("sql-marker", model.DefaultSQLMarker)
	v.SetDefault("allocations-marker", model.DefaultAllocationsMarker)
	v.SetDefault("binds-marker", model.DefaultBindsMarker)
	v.SetDefault("min-count", defaultMinCount)
	v.SetDefault("color", true)
	v.SetDefault("chart", false)
	v.SetDefault("chart-top", defaultChartTop)
	v.SetDefault("chart-width", defaultChartWidth)
	v.SetDefault("format", defaultFormat)
	v.SetDefault("pager", false)
	v.SetDefault("max-line-size", defaultMaxLine)
	v.SetDefault("verbose", false)

	explicit := configPath != ""
	if explicit {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "qtrace", "config.yml"))
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			notFound := errors.As(err, &configFileNotFound) || os.IsNotExist(err)
			if !notFound || explicit {
				return cfg, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if strings.TrimSpace(cfg.SourceRoot) == "" {
		return cfg, errors.New("source-root must not be empty")
	}
	if cfg.MinCount < 1 {
		return cfg, fmt.Errorf("invalid min-count: %d", cfg.MinCount)
	}
	if cfg.ChartTop < 1 {
		return cfg, fmt.Errorf("invalid chart-top: %d", cfg.ChartTop)
	}
	if cfg.MaxLineSize <= 0 {
		return cfg, fmt.Errorf("invalid max-line-size: %d", cfg.MaxLineSize)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format != formatText && cfg.Format != formatYAML {
		return cfg, fmt.Errorf("invalid format: %q (want %s or %s)", cfg.Format, formatText, formatYAML)
	}

	// Expand ~ in source-root
	if strings.HasPrefix(cfg.SourceRoot, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.SourceRoot = filepath.Join(home, cfg.SourceRoot[2:]) + "/"
		}
	}

	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// colorEnabled reads the color flag before the config is loaded.
func colorEnabled(cmd *cobra.Command) bool {
	on, err := cmd.Flags().GetBool("color")
	if err != nil {
		return true
	}
	return on
}

func withTrailingSlash(path string) string {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return path
	}
	return path + string(filepath.Separator)
}
