package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	titles, messages []string
}

func (r *recordingNotifier) Notify(title, message string) error {
	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
	return nil
}

func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("data_dir: %s\nlog:\n  format: \"off\"\n%s", filepath.Join(dir, "data"), extra)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// resetFlagVars restores flag variables that persist between Execute calls.
func resetFlagVars() {
	cfgFile, logLevel = "", ""
	since, until, preset, limit, page, format, noColor = "", "", "", 20, 1, "default", false
	newTitle, newPunctuate = "", false
	editText, editTitle, editAppend, editRetitle = "", "", "", false
	searchLimit = 200
	titleExplain, titleLocal = false, false
	punctuateExplain = false
	dictateMax, dictateSave = 0, false
	draftTitle = ""
	summaryPreset = "week"
	serveAddr = ""
}

func run(t *testing.T, config, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlagVars()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", config}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, config, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, config, stdin, args...)
	require.NoError(t, err, out)
	return out
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"new", "list", "show", "edit", "delete", "search", "title", "punctuate",
		"dictate", "draft", "sync", "remind", "serve", "summary", "tui", "version"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
		assert.NotEmpty(t, c.Short, c.Name())
	}
	for _, name := range want {
		assert.True(t, have[name], "missing command %s", name)
	}
}

func TestPunctuateCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out := mustRun(t, cfgPath, "", "punctuate", "what", "did", "you", "do", "today")
	assert.Equal(t, "What did you do today?\n", out)

	out = mustRun(t, cfgPath, "wow that was amazing\n", "punctuate")
	assert.Equal(t, "Wow, that was amazing!\n", out)

	out = mustRun(t, cfgPath, "", "punctuate", "--explain")
	assert.True(t, strings.HasPrefix(out, " 1  temporal-period"), out)
}

func TestTitleCommandLocal(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out := mustRun(t, cfgPath, "", "title", "--local", "I'm so grateful for my family today.")
	assert.Equal(t, "Gratitude: I'm so grateful for my family today\n", out)

	out = mustRun(t, cfgPath, "xyz qux", "title")
	assert.Equal(t, "Journal: Xyz qux\n", out)

	_, err := run(t, cfgPath, "  ", "title")
	assert.Error(t, err)
}

func TestEntryLifecycle(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out := mustRun(t, cfgPath, "", "new", "I'm so grateful for my family today.")
	assert.Contains(t, out, ": Gratitude: I'm so grateful for my family today")

	id := strings.TrimSpace(mustRun(t, cfgPath, "", "list", "--format", "quiet"))
	require.Len(t, id, 36)

	out = mustRun(t, cfgPath, "", "show", id[:8], "--format", "quiet")
	assert.Equal(t, "I'm so grateful for my family today.\n", out)

	mustRun(t, cfgPath, "", "edit", id, "--append", "and then we had dinner", "--title", "Family night")
	out = mustRun(t, cfgPath, "", "show", id, "--format", "json")
	assert.Contains(t, out, `"title": "Family night"`)
	assert.Contains(t, out, "today. And then we had dinner.")

	out = mustRun(t, cfgPath, "", "search", "DINNER", "--format", "quiet")
	assert.Equal(t, id+"\n", out)
	out = mustRun(t, cfgPath, "", "search", "breakfast", "--format", "quiet")
	assert.Empty(t, out)

	mustRun(t, cfgPath, "", "delete", id)
	out = mustRun(t, cfgPath, "", "list", "--format", "quiet")
	assert.Empty(t, out)

	_, err := run(t, cfgPath, "", "show", id)
	assert.Error(t, err)
}

func TestEditNeedsAChange(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	_, err := run(t, cfgPath, "", "edit", "whatever")
	assert.ErrorContains(t, err, "nothing to update")
}

func TestDraftAndDictate(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out := mustRun(t, cfgPath, "", "draft", "show")
	assert.Equal(t, "No draft.\n", out)

	out = mustRun(t, cfgPath, "\nwhat did you do\n\nwow that was amazing\n", "dictate")
	assert.Equal(t, "Added 2 fragments to the draft.\n", out)

	out = mustRun(t, cfgPath, "", "draft", "show")
	assert.Equal(t, "What did you do? Wow, that was amazing!\n", out)

	out = mustRun(t, cfgPath, "", "draft", "append", "i went home")
	assert.Equal(t, "What did you do? Wow, that was amazing! I went home.\n", out)

	out = mustRun(t, cfgPath, "", "draft", "save")
	assert.Contains(t, out, "Saved ")

	out = mustRun(t, cfgPath, "", "draft", "show")
	assert.Equal(t, "No draft.\n", out)

	out = mustRun(t, cfgPath, "", "list", "--format", "compact", "--no-color")
	assert.Contains(t, out, "What did you do?")
}

func TestDraftSaveEmptyFails(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	_, err := run(t, cfgPath, "", "draft", "save")
	assert.Error(t, err)
}

func TestSyncWithoutRemote(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	out := mustRun(t, cfgPath, "", "sync")
	assert.Contains(t, out, "No remote store configured")
}

func TestSummaryCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	mustRun(t, cfgPath, "", "new", "one two three")
	mustRun(t, cfgPath, "", "new", "four five")

	out := mustRun(t, cfgPath, "", "summary", "--preset", "today")
	assert.Contains(t, out, "TOTAL        2 entries, 5 words")
	assert.Contains(t, out, "streak: 1 day\n")
}

func TestRemindCommands(t *testing.T) {
	cfgPath := writeTestConfig(t, "reminder:\n  enabled: true\n  time: \"21:15\"\n  timezone: UTC\n")

	out := mustRun(t, cfgPath, "", "remind", "next")
	assert.Contains(t, out, "21:15 UTC")

	rec := &recordingNotifier{}
	old := notifier
	notifier = rec
	t.Cleanup(func() { notifier = old })

	mustRun(t, cfgPath, "", "new", "a quick note")
	mustRun(t, cfgPath, "", "remind", "test")
	require.Len(t, rec.messages, 1)
	assert.Equal(t, "Voice Journal reminder", rec.titles[0])
	assert.Contains(t, rec.messages[0], "1 entry today")
}

func TestInvalidConfigRejected(t *testing.T) {
	cfgPath := writeTestConfig(t, "reminder:\n  time: \"25:99\"\n")
	_, err := run(t, cfgPath, "", "punctuate", "hello")
	assert.ErrorContains(t, err, "reminder.time")
}

func TestVersionCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	out := mustRun(t, cfgPath, "", "version")
	assert.True(t, strings.HasPrefix(out, "voicejournal "), out)
}
