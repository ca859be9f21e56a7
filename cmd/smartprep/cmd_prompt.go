package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryandumale04/SmartPrep/internal/prompt"
	"github.com/aryandumale04/SmartPrep/pkg/model"
)

var (
	promptRole        string
	promptExperience  string
	promptTopics      []string
	promptDescription string
	promptCount       int
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print an AI prompt",
}

var promptQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question-set prompt",
	Args:  cobra.NoArgs,
	RunE:  runPromptQuestions,
}

var promptConceptCmd = &cobra.Command{
	Use:   "concept <question>",
	Short: "Print the concept explanation prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPromptConcept,
}

func init() {
	f := promptQuestionsCmd.Flags()
	f.StringVar(&promptRole, "role", "", "Target role (required)")
	f.StringVar(&promptExperience, "experience", "", "Years of experience (required)")
	f.StringSliceVar(&promptTopics, "topics", nil, "Comma separated topics to focus on")
	f.StringVar(&promptDescription, "description", "", "Optional session description")
	f.IntVarP(&promptCount, "count", "n", model.DefaultQuestionCount, "Number of questions")
	_ = promptQuestionsCmd.MarkFlagRequired("role")
	_ = promptQuestionsCmd.MarkFlagRequired("experience")

	promptCmd.AddCommand(promptQuestionsCmd, promptConceptCmd)
}

func runPromptQuestions(cmd *cobra.Command, args []string) error {
	if promptCount < 1 || promptCount > model.MaxQuestionCount {
		return fmt.Errorf("count must be between 1 and %d", model.MaxQuestionCount)
	}
	p := prompt.BuildQuestionPrompt(promptRole, promptExperience, promptTopics, promptDescription, promptCount)
	fmt.Fprint(cmd.OutOrStdout(), p)
	return nil
}

func runPromptConcept(cmd *cobra.Command, args []string) error {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return fmt.Errorf("question is empty")
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt.BuildConceptPrompt(q))
	return nil
}
