package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// TerminalRenderer renders Markdown as ANSI text.
type TerminalRenderer struct {
	tr *glamour.TermRenderer
}

func NewTerminal(style string, width int) (*TerminalRenderer, error) {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &TerminalRenderer{tr: tr}, nil
}

func (t *TerminalRenderer) Render(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	out, err := t.tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
