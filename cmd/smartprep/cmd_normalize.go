package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryandumale04/SmartPrep/internal/airesponse"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]",
	Short: "Convert a raw AI response into display markdown",
	Long: `Read an AI response (a JSON value or plain text) and print the markdown
the UI would display for it. Input that is not valid JSON is treated as text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), normalizeInput(raw))
	return nil
}

func normalizeInput(raw []byte) string {
	r := airesponse.FromJSON(raw)
	if r.Kind() == airesponse.KindUnsupported {
		r = airesponse.Text(string(raw))
	}
	return airesponse.Normalize(r)
}
