package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryandumale04/SmartPrep/internal/render"
)

var (
	renderHTML  bool
	renderStyle string
	renderWidth int
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render markdown for the terminal, or as sanitized HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.BoolVar(&renderHTML, "html", false, "Emit sanitized HTML instead of terminal output")
	f.StringVar(&renderStyle, "style", "", "Terminal style, or chroma code style with --html")
	f.IntVar(&renderWidth, "width", 80, "Word wrap width for terminal output")
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	md := normalizeInput(raw)

	if renderHTML {
		style := renderStyle
		if style == "" {
			style = render.DefaultStyle
		}
		out, err := render.New(render.WithStyle(style)).Render(md)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	tr, err := render.NewTerminal(renderStyle, renderWidth)
	if err != nil {
		return err
	}
	out, err := tr.Render(md)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
