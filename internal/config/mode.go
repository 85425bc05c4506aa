package config

// ModeKind selects what a run prints.
type ModeKind int

const (
	// SummaryMode segments and ranks messages. This is the default.
	SummaryMode ModeKind = iota
	// PinnedMode prints pinned messages and skips summarization.
	PinnedMode
	// ReactionMode prints messages carrying a given reaction and skips summarization.
	ReactionMode
)

func (k ModeKind) String() string {
	switch k {
	case PinnedMode:
		return "pinned"
	case ReactionMode:
		return "reaction"
	default:
		return "summary"
	}
}

// Mode is resolved once at startup from the pinned/reaction/sentence settings.
type Mode struct {
	Kind ModeKind
	// Reaction is the tag matched in ReactionMode.
	Reaction string
	// SentenceOnly prints selected sentences instead of their source messages in SummaryMode.
	SentenceOnly bool
}

// Mode returns the render mode. Pinned takes precedence over reaction.
func (c *Config) Mode() Mode {
	switch {
	case c.Pinned:
		return Mode{Kind: PinnedMode}
	case c.Reaction != "":
		return Mode{Kind: ReactionMode, Reaction: c.Reaction}
	default:
		return Mode{Kind: SummaryMode, SentenceOnly: c.Sentence}
	}
}
