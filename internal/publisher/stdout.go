package publisher

import (
	"context"
	"fmt"
	"io"
)

// StdoutPublisher prints blocks as plain text. The command wires it to
// standard output.
type StdoutPublisher struct {
	w io.Writer
}

func NewWriterPublisher(w io.Writer) *StdoutPublisher {
	return &StdoutPublisher{w: w}
}

func (p *StdoutPublisher) Publish(_ context.Context, blocks []Block) error {
	for _, line := range Lines(blocks) {
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return fmt.Errorf("stdout: failed to write: %w", err)
		}
	}
	return nil
}

// Lines formats blocks as "○<author> <time>", the text, then a blank line.
func Lines(blocks []Block) []string {
	lines := make([]string, 0, len(blocks)*3)
	for _, b := range blocks {
		lines = append(lines, fmt.Sprintf("○%s %s", b.Author, b.Time), b.Text, "")
	}
	return lines
}
