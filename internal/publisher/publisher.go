package publisher

import (
	"context"
)

// Block is one printed entry: an author header followed by text.
type Block struct {
	Author string
	Time   string
	Text   string
}

// Publisher publishes rendered blocks to some output destination.
type Publisher interface {
	Publish(ctx context.Context, blocks []Block) error
}
