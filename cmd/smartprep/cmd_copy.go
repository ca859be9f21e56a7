package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/copystate"
	"github.com/aryandumale04/SmartPrep/internal/render"
)

var (
	copyBlock  int
	copyWindow = copystate.Window

	clipboard copystate.Clipboard = copystate.SystemClipboard{}
)

var copyCmd = &cobra.Command{
	Use:   "copy [file|-]",
	Short: "Copy a fenced code block to the clipboard",
	Long: `Copy the N-th fenced code block (1-based) of a markdown document or AI
response to the system clipboard. Prints "Copied!" and returns once the
confirmation window has passed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().IntVarP(&copyBlock, "block", "b", 1, "Code block number, starting at 1")
}

// recordingClipboard keeps the last write error so the command can report it.
type recordingClipboard struct {
	copystate.Clipboard
	err error
}

func (r *recordingClipboard) WriteAll(text string) error {
	r.err = r.Clipboard.WriteAll(text)
	return r.err
}

func runCopy(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	blocks := render.New().ExtractCodeBlocks(normalizeInput(raw))
	if len(blocks) == 0 {
		return fmt.Errorf("no code blocks found")
	}
	if copyBlock < 1 || copyBlock > len(blocks) {
		return fmt.Errorf("block %d out of range (found %d)", copyBlock, len(blocks))
	}
	block := blocks[copyBlock-1]

	reverted := make(chan struct{}, 1)
	clip := &recordingClipboard{Clipboard: clipboard}
	btn := copystate.NewButton(clip,
		copystate.WithWindow(copyWindow),
		copystate.WithLogger(cliLogger),
		copystate.WithOnChange(func(s copystate.State) {
			if s == copystate.Idle {
				select {
				case reverted <- struct{}{}:
				default:
				}
			}
		}),
	)
	defer btn.Close()

	btn.Activate(block.Code)
	if clip.err != nil {
		return fmt.Errorf("copy %s block: %w", block.Label, clip.err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Copied! (%s, %d bytes)\n", block.Label, len(block.Code))

	select {
	case <-reverted:
	case <-time.After(copyWindow + time.Second):
		cliLogger.Warn("copy: confirmation did not revert", zap.Duration("window", copyWindow))
	}
	return nil
}
