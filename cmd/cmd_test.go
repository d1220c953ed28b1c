package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its output. Flags
// keep their values between runs, so callers pass every flag they rely on.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TALKBUDDY_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "talkbuddy (devel)\n", out)
}

func TestScenarioList(t *testing.T) {
	out, err := execute(t, "", "scenario", "list", "--theme=", "--level=", "--search=")
	require.NoError(t, err)
	assert.Contains(t, out, "meeting-new-friend")
	assert.Contains(t, out, "6 scenarios")

	_, err = execute(t, "", "scenario", "list", "--theme=", "--level=expert", "--search=")
	assert.ErrorContains(t, err, "unknown level")

	_, err = execute(t, "", "scenario", "list", "--theme=", "--level=", "--search=zzz")
	assert.ErrorContains(t, err, "no scenarios match")
}

func TestScenarioShow(t *testing.T) {
	out, err := execute(t, "", "scenario", "show", "meeting-new-friend")
	require.NoError(t, err)
	assert.Contains(t, out, "Situation:")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Up to")

	_, err = execute(t, "", "scenario", "show", "nope")
	assert.Error(t, err)
}

func TestLearnerLifecycle(t *testing.T) {
	db := "--db=" + filepath.Join(t.TempDir(), "talkbuddy.db")
	store := "--store=sqlite"

	out, err := execute(t, "", "profile", "show", db, store)
	require.NoError(t, err)
	assert.Contains(t, out, "No profile yet")

	_, err = execute(t, "", "profile", "create", db, store,
		"--name=", "--age=8", "--level=beginner", "--themes=friends", "--avatar=🦊")
	assert.ErrorContains(t, err, "name is required")

	out, err = execute(t, "", "profile", "create", db, store,
		"--name=Ada", "--age=9", "--level=beginner", "--themes=friends,school", "--avatar=🦊")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved profile for 🦊 Ada")

	out, err = execute(t, "", "profile", "show", db, store)
	require.NoError(t, err)
	assert.Contains(t, out, "Age:    9")
	assert.Contains(t, out, "School")

	answers := strings.Repeat("a\n", 20)
	out, err = execute(t, answers, "practice", "meeting-new-friend", "--instant", db, store)
	require.NoError(t, err)
	assert.Contains(t, out, "Hi Ada!")
	assert.Contains(t, out, "Great job!")

	out, err = execute(t, "", "stats", db, store)
	require.NoError(t, err)
	assert.Contains(t, out, "Scenarios done: 1")

	out, err = execute(t, "", "reset", "--all=false", db, store)
	require.NoError(t, err)
	assert.Equal(t, "Progress reset.\n", out)

	out, err = execute(t, "", "stats", db, store)
	require.NoError(t, err)
	assert.Contains(t, out, "Scenarios done: 0")
	assert.Contains(t, out, "none yet")

	_, err = execute(t, "", "reset", "--all", db, store)
	require.NoError(t, err)
	out, err = execute(t, "", "profile", "show", db, store)
	require.NoError(t, err)
	assert.Contains(t, out, "No profile yet")
}

func TestPracticeUnknownScenario(t *testing.T) {
	_, err := execute(t, "", "practice", "nope", "--instant", "--store=memory", "--db=")
	assert.ErrorContains(t, err, "no scenario")
}

func TestUnknownStoreFlag(t *testing.T) {
	_, err := execute(t, "", "stats", "--store=etcd", "--db=")
	assert.ErrorContains(t, err, "unknown backend")
}
