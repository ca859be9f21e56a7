package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/logger"
)

var (
	cliLogger *zap.Logger
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "smartprep",
	Short: "Offline tools for SmartPrep content",
	Long: `Work with interview-prep content without running the API server.

Available subcommands:
  prompt    - Print the AI prompt for a question set or a concept explanation
  normalize - Turn a raw AI response into display markdown
  render    - Render markdown for the terminal or as sanitized HTML
  copy      - Copy a fenced code block to the system clipboard`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cliLogger != nil {
			return nil
		}
		env := "production"
		if verbose {
			env = "development"
		}
		l, err := logger.NewLogger(env)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		cliLogger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
	rootCmd.AddCommand(promptCmd, normalizeCmd, renderCmd, copyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return b, nil
}
