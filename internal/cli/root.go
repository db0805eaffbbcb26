package cli

import (
	"context"
	"io"
	"strings"

	"github.com/specialistvlad/factgraph/internal/app"
	"github.com/specialistvlad/factgraph/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoaderFactory builds the build file loader for a glob.
type LoaderFactory func(glob string) config.Loader

const envPrefix = "FACTGRAPH"

// Global flag names.
const (
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagWorkers     = "workers"
	flagGlob        = "glob"
	flagMetricsPort = "metrics-port"
)

type options struct {
	v         *viper.Viper
	outW      io.Writer
	newLoader LoaderFactory
}

// NewRootCommand returns the factgraph command tree. Output goes to outW;
// logs go to errW.
func NewRootCommand(outW, errW io.Writer, newLoader LoaderFactory, defaultGlob string) *cobra.Command {
	o := &options{v: viper.New(), outW: outW, newLoader: newLoader}
	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "factgraph",
		Short: "Propagate build facts through a target graph",
		Long: `factgraph reads BUILD.hcl files, builds the dependency graph of their
targets and propagates each target's facts (headers, libraries, flags, ...)
to the targets that depend on it.

Every flag can also be set through an environment variable, e.g.
FACTGRAPH_LOG_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.String(flagLogLevel, "warn", "Logging level: debug, info, warn or error.")
	pf.String(flagLogFormat, "text", "Log output format: text or json.")
	pf.Int(flagWorkers, 8, "Number of concurrent analysis workers.")
	pf.String(flagGlob, defaultGlob, "Build file pattern, relative to the workspace root.")
	pf.Int(flagMetricsPort, 0, "Port for the /health and /metrics server. 0 is disabled.")
	o.bind(pf)

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newAnalyzeCommand(o, errW),
		newInspectCommand(o, errW),
		newKeysCommand(o),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, newLoader LoaderFactory, defaultGlob string) error {
	root := NewRootCommand(outW, errW, newLoader, defaultGlob)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (o *options) bind(fs *pflag.FlagSet) {
	// BindPFlags only fails for a nil flag set.
	_ = o.v.BindPFlags(fs)
}

// appConfig validates the global flags together with the workspace root.
func (o *options) appConfig(args []string) (*app.Config, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	cfg, err := app.NewConfig(app.Config{
		Root:        root,
		Glob:        o.v.GetString(flagGlob),
		LogFormat:   strings.ToLower(o.v.GetString(flagLogFormat)),
		LogLevel:    strings.ToLower(o.v.GetString(flagLogLevel)),
		MetricsPort: o.v.GetInt(flagMetricsPort),
		WorkerCount: o.v.GetInt(flagWorkers),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func (o *options) newApp(errW io.Writer, args []string) (*app.App, error) {
	cfg, err := o.appConfig(args)
	if err != nil {
		return nil, err
	}
	return app.NewApp(errW, cfg, o.newLoader(cfg.Glob)), nil
}
