package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ryosukesatoh/slack-summary/internal/config"
	"github.com/ryosukesatoh/slack-summary/internal/fetcher"
	"github.com/ryosukesatoh/slack-summary/internal/publisher"
	"github.com/ryosukesatoh/slack-summary/internal/summarizer"
	"github.com/ryosukesatoh/slack-summary/internal/transcript"
	"github.com/ryosukesatoh/slack-summary/internal/users"
)

// Runner orchestrates the fetch -> segment -> summarize -> publish pipeline.
type Runner struct {
	query      fetcher.Query
	mode       config.Mode
	limit      int
	location   *time.Location
	fetcher    fetcher.Fetcher
	lookup     users.Lookup
	summarizer summarizer.Summarizer
	publishers []publisher.Publisher
	logger     *zap.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLocation sets the zone used to display message times. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) { r.location = loc }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

func New(cfg *config.Config, f fetcher.Fetcher, lookup users.Lookup, s summarizer.Summarizer, pubs []publisher.Publisher, opts ...Option) (*Runner, error) {
	query, err := fetcher.QueryFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		query:      query,
		mode:       cfg.Mode(),
		limit:      cfg.Limit,
		location:   time.Local,
		fetcher:    f,
		lookup:     lookup,
		summarizer: s,
		publishers: pubs,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the full pipeline once. Names are memoized for this run only.
func (r *Runner) Run(ctx context.Context) error {
	log := r.logger.With(
		zap.String("channel", r.query.Channel),
		zap.Stringer("mode", r.mode.Kind))

	log.Info("Starting pipeline", zap.Int("page_limit", r.query.Limit), zap.Int("limit", r.limit))

	messages, err := r.fetcher.Fetch(ctx, r.query)
	if err != nil {
		return fmt.Errorf("runner: fetch failed: %w", err)
	}
	log.Info("Fetched messages", zap.Int("count", len(messages)))

	entries := transcript.Filter(messages, r.location)
	log.Debug("Filtered messages",
		zap.Int("kept", len(entries)),
		zap.Int("excluded", len(messages)-len(entries)))

	resolver := users.NewResolver(r.lookup, log)
	names := resolver.Resolve(ctx, transcript.Authors(entries))

	var blocks []publisher.Block
	switch r.mode.Kind {
	case config.PinnedMode:
		names = resolver.Resolve(ctx, publisher.Authors(messages, publisher.IsPinned))
		blocks = publisher.PinnedBlocks(messages, names, r.location)
	case config.ReactionMode:
		names = resolver.Resolve(ctx, publisher.Authors(messages, publisher.HasReaction(r.mode.Reaction)))
		blocks = publisher.ReactionBlocks(messages, r.mode.Reaction, names, r.location)
	default:
		sentences := transcript.Segment(entries)
		selection := summarizer.NewSelector(r.summarizer).Select(sentences, r.limit)
		log.Info("Selected sentences",
			zap.Int("sentences", len(sentences)),
			zap.Int("selected", len(selection)))

		if r.mode.SentenceOnly {
			blocks = publisher.SentenceBlocks(selection, names)
		} else {
			blocks = publisher.MessageBlocks(selection, entries, names)
		}
	}

	return r.publish(ctx, log, blocks)
}

// publish continues with other publishers even if one fails.
func (r *Runner) publish(ctx context.Context, log *zap.Logger, blocks []publisher.Block) error {
	var publishErrors []error
	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, blocks); err != nil {
			publishError := fmt.Errorf("publish via %T failed: %w", pub, err)
			publishErrors = append(publishErrors, publishError)
			log.Warn("Publisher failed", zap.Error(publishError))
		}
	}

	if len(publishErrors) == len(r.publishers) && len(r.publishers) > 0 {
		return fmt.Errorf("runner: all publishers failed: %v", publishErrors)
	}

	log.Info("Pipeline completed", zap.Int("blocks", len(blocks)), zap.Int("publisher_failures", len(publishErrors)))
	return nil
}
