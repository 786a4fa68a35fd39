package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/searchkit/pkg/config"
	"github.com/dmitrymomot/searchkit/pkg/logger"
	"github.com/dmitrymomot/searchkit/pkg/requestid"
	"github.com/dmitrymomot/searchkit/pkg/search"
)

type app struct {
	profile    string
	verbose    bool
	logLevel   string
	logFormat  string
	envFiles   []string
	logger     *slog.Logger
	clientOpts []search.Option
}

// NewRootCmd builds the searchkit command tree. opts are applied to every
// client the commands create.
func NewRootCmd(opts ...search.Option) *cobra.Command {
	a := &app{clientOpts: opts, logger: logger.Discard()}

	root := &cobra.Command{
		Use:          "searchkit",
		Short:        "Query and inspect hosted search indices",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(a.envFiles) > 0 {
				if err := config.LoadEnv(a.envFiles...); err != nil {
					return err
				}
			}
			log, err := a.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.profile, "profile", "", "TOML profile with connection settings (overrides SEARCH_* variables)")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, ".env files to load before reading SEARCH_* variables")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every request to stderr")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "minimum log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newSearchCmd(a),
		newBrowseCmd(a),
		newFacetsCmd(a),
		newIndexesCmd(a),
		newMonitorCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) newLogger(w io.Writer) (*slog.Logger, error) {
	if a.verbose {
		return logger.New(
			logger.WithVerbose(w),
			logger.WithContextExtractors(requestid.Attr),
		), nil
	}
	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(a.logFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.Attr),
	), nil
}

func (a *app) client(extra ...search.Option) (*search.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	opts := make([]search.Option, 0, len(a.clientOpts)+len(extra)+1)
	opts = append(opts, search.WithLogger(a.logger))
	opts = append(opts, a.clientOpts...)
	opts = append(opts, extra...)
	return search.NewClient(cfg, opts...)
}

// config reads SEARCH_* variables, then applies the profile on top. With a
// profile the environment may be incomplete.
func (a *app) config() (search.Config, error) {
	cfg, envErr := search.LoadConfig()
	if a.profile == "" {
		return cfg, envErr
	}
	p, err := loadProfile(a.profile)
	if err != nil {
		return search.Config{}, err
	}
	return p.apply(cfg)
}
