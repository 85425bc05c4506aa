package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryosukesatoh/slack-summary/internal/config"
	"github.com/ryosukesatoh/slack-summary/internal/fetcher"
	"github.com/ryosukesatoh/slack-summary/internal/publisher"
	"github.com/ryosukesatoh/slack-summary/internal/runner"
	"github.com/ryosukesatoh/slack-summary/internal/summarizer"
	"github.com/ryosukesatoh/slack-summary/internal/users"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	envFile    string
	debug      bool

	typ      int
	channel  string
	limit    int
	oldest   string
	newest   string
	pinned   bool
	reaction string
	sentence bool
	schedule string
}

func newRootCmd() *cobra.Command {
	var fl flags
	root := &cobra.Command{
		Use:           "slack-summary",
		Short:         "Summarize Slack messages (Japanese only)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(fl.debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := execute(cmd, &fl, logger); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			return nil
		},
	}

	f := root.Flags()
	f.IntVarP(&fl.typ, "type", "t", config.DefaultType, "select summarizer 1: LexRank, 2: TextRank, 3: LSA")
	f.StringVarP(&fl.channel, "channel", "c", config.DefaultChannel, "channel id")
	f.IntVarP(&fl.limit, "limit", "l", config.DefaultLimit, "the number of sentences in the summary")
	f.StringVarP(&fl.oldest, "oldest", "o", "", "oldest date of messages (YYYY-MM-DD, JST)")
	f.StringVarP(&fl.newest, "newest", "n", "", "newest date of messages (YYYY-MM-DD, JST)")
	f.BoolVarP(&fl.pinned, "pinned", "p", false, "show pinned messages instead of a summary")
	f.StringVarP(&fl.reaction, "reaction", "r", "", "show messages carrying this reaction instead of a summary")
	f.BoolVarP(&fl.sentence, "sentence", "s", false, "show only the selected sentences instead of whole messages")
	f.StringVar(&fl.schedule, "schedule", "", "cron expression; run repeatedly instead of once")
	f.StringVar(&fl.configPath, "config", "", "path to an optional YAML config file")
	f.StringVar(&fl.envFile, "env-file", ".env", "dotenv file holding Slack credentials")
	f.BoolVar(&fl.debug, "debug", false, "enable debug logging")

	return root
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// configOptions turns explicitly set flags into config overrides so that
// unset flags leave file values alone.
func configOptions(cmd *cobra.Command, fl *flags) []config.Option {
	changed := cmd.Flags().Changed
	var opts []config.Option
	if changed("type") {
		opts = append(opts, func(c *config.Config) { c.Type = fl.typ })
	}
	if changed("channel") {
		opts = append(opts, func(c *config.Config) { c.Channel = fl.channel })
	}
	if changed("limit") {
		opts = append(opts, func(c *config.Config) { c.Limit = fl.limit })
	}
	if changed("oldest") {
		opts = append(opts, func(c *config.Config) { c.Oldest = fl.oldest })
	}
	if changed("newest") {
		opts = append(opts, func(c *config.Config) { c.Newest = fl.newest })
	}
	if changed("pinned") {
		opts = append(opts, func(c *config.Config) { c.Pinned = fl.pinned })
	}
	if changed("reaction") {
		opts = append(opts, func(c *config.Config) { c.Reaction = fl.reaction })
	}
	if changed("sentence") {
		opts = append(opts, func(c *config.Config) { c.Sentence = fl.sentence })
	}
	if changed("schedule") {
		opts = append(opts, func(c *config.Config) { c.Schedule = fl.schedule })
	}
	return opts
}

func execute(cmd *cobra.Command, fl *flags, logger *zap.Logger) error {
	if err := config.LoadDotEnv(fl.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(fl.configPath, configOptions(cmd, fl)...)
	if err != nil {
		return err
	}

	r, err := buildRunner(cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule == "" {
		return r.Run(ctx)
	}
	return schedule(ctx, cfg.Schedule, r, logger)
}

func buildRunner(cfg *config.Config, out io.Writer, logger *zap.Logger) (*runner.Runner, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// The morphological dictionary is only needed when summarizing.
	var s summarizer.Summarizer
	if cfg.Mode().Kind == config.SummaryMode {
		if s, err = summarizer.New(cfg); err != nil {
			return nil, err
		}
	}

	pubs := []publisher.Publisher{publisher.NewWriterPublisher(out)}
	lookup := users.NewSlackLookup(cfg.Slack.BotToken, cfg.Slack.APIURL)

	return runner.New(cfg, fetcher.New(cfg), lookup, s, pubs,
		runner.WithLocation(loc),
		runner.WithLogger(logger))
}

func schedule(ctx context.Context, expr string, r *runner.Runner, logger *zap.Logger) error {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		logger.Info("Cron triggered, running summary")
		if err := r.Run(ctx); err != nil {
			logger.Error("Scheduled run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to set up cron schedule %q: %w", expr, err)
	}
	c.Start()
	logger.Info("Scheduled summary", zap.String("schedule", expr))

	<-ctx.Done()
	logger.Info("Shutting down")

	<-c.Stop().Done()
	logger.Info("Shutdown complete")
	return nil
}
