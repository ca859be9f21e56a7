package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	return f.err
}

func newCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	cliLogger = zap.NewNop()
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, out
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json string", `"## Hi"`, "## Hi"},
		{"explanation object", `{"title":"T","explanation":"body"}`, "body"},
		{"plain text", "just text", "just text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeInput([]byte(tt.in)))
		})
	}
}

func TestRunNormalize_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resp.json")
	require.NoError(t, os.WriteFile(path, []byte(`"hello"`), 0o644))

	cmd, out := newCmd("")
	require.NoError(t, runNormalize(cmd, []string{path}))
	assert.Equal(t, "hello\n", out.String())

	assert.Error(t, runNormalize(cmd, []string{filepath.Join(t.TempDir(), "missing")}))
}

func TestRunPromptQuestions(t *testing.T) {
	promptRole, promptExperience = "Backend Engineer", "3"
	promptTopics = []string{"Go", "SQL"}
	promptCount = 5
	defer func() { promptCount = 10 }()

	cmd, out := newCmd("")
	require.NoError(t, runPromptQuestions(cmd, nil))
	assert.Contains(t, out.String(), "Backend Engineer")
	assert.Contains(t, out.String(), "Go, SQL")

	promptCount = 0
	assert.Error(t, runPromptQuestions(cmd, nil))
}

func TestRunPromptConcept(t *testing.T) {
	cmd, out := newCmd("")
	require.NoError(t, runPromptConcept(cmd, []string{"What", "is", "a", "goroutine?"}))
	assert.Contains(t, out.String(), "What is a goroutine?")

	assert.Error(t, runPromptConcept(cmd, []string{"  "}))
}

func TestRunRender_HTML(t *testing.T) {
	renderHTML = true
	defer func() { renderHTML = false }()

	cmd, out := newCmd(`"# Title"`)
	require.NoError(t, runRender(cmd, nil))
	assert.Contains(t, out.String(), "<h1")
	assert.Contains(t, out.String(), "Title")
}

func TestRunRender_Terminal(t *testing.T) {
	renderStyle = "notty"
	defer func() { renderStyle = "" }()

	cmd, out := newCmd("# Title\n\nsome text")
	require.NoError(t, runRender(cmd, []string{"-"}))
	assert.Contains(t, out.String(), "some text")
}

func TestRunCopy(t *testing.T) {
	fake := &fakeClipboard{}
	clipboard, copyWindow = fake, 20*time.Millisecond
	copyBlock = 2
	defer func() { copyBlock = 1 }()

	md := "```go\nfmt.Println(1)\n```\n\ntext\n\n```sql\nSELECT 1;\n```\n"
	cmd, out := newCmd(md)
	require.NoError(t, runCopy(cmd, nil))

	assert.Equal(t, "SELECT 1;", fake.text)
	assert.Contains(t, out.String(), "Copied!")
}

func TestRunCopy_Errors(t *testing.T) {
	fake := &fakeClipboard{err: errors.New("no display")}
	clipboard, copyWindow = fake, 20*time.Millisecond

	cmd, _ := newCmd("no code here")
	assert.ErrorContains(t, runCopy(cmd, nil), "no code blocks")

	copyBlock = 3
	cmd, _ = newCmd("```\nx\n```")
	assert.ErrorContains(t, runCopy(cmd, nil), "out of range")
	copyBlock = 1

	cmd, out := newCmd("```\nx\n```")
	assert.ErrorContains(t, runCopy(cmd, nil), "no display")
	assert.Empty(t, out.String())
}
