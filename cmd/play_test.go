package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzer/internal/bank"
	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
)

func testEngine(t *testing.T) (*quiz.Engine, *history.Store, *history.MemoryStorage) {
	t.Helper()
	b, err := bank.Default()
	require.NoError(t, err)
	mem := history.NewMemoryStorage()
	hist := history.NewStore(mem, nil)
	return quiz.NewEngine(b, hist), hist, mem
}

func TestPlayLines_Submit(t *testing.T) {
	e, hist, _ := testEngine(t)
	var out bytes.Buffer

	in := strings.NewReader("2\nn\nn\np\ns\n")
	require.NoError(t, playLines(context.Background(), e, "dsa", in, &out))

	recs := hist.ListFor("dsa")
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Score)
	assert.Equal(t, 10, recs[0].Percentage)
	assert.Contains(t, out.String(), "Score: 1/10 (10%)")
	assert.Contains(t, out.String(), "Attempt 1")
	assert.Contains(t, out.String(), "Question 2/10")
	assert.Equal(t, quiz.StateIdle, e.State())
}

func TestPlayLines_LetterAnswer(t *testing.T) {
	e, hist, _ := testEngine(t)
	var out bytes.Buffer

	require.NoError(t, playLines(context.Background(), e, "dsa", strings.NewReader("b\ns\n"), &out))
	assert.Equal(t, 1, hist.ListFor("dsa")[0].Score)
}

func TestPlayLines_EndOfInputAbandons(t *testing.T) {
	e, hist, _ := testEngine(t)
	var out bytes.Buffer

	require.NoError(t, playLines(context.Background(), e, "python", strings.NewReader("1\n"), &out))
	assert.Empty(t, hist.ListFor("python"))
	assert.Contains(t, out.String(), "Quiz abandoned.")
	assert.Equal(t, quiz.StateIdle, e.State())
}

func TestPlayLines_Quit(t *testing.T) {
	e, hist, _ := testEngine(t)
	var out bytes.Buffer

	require.NoError(t, playLines(context.Background(), e, "ai", strings.NewReader("q\ns\n"), &out))
	assert.Empty(t, hist.ListFor("ai"))
}

func TestPlayLines_BadInput(t *testing.T) {
	e, _, _ := testEngine(t)
	var out bytes.Buffer

	require.NoError(t, playLines(context.Background(), e, "dsa", strings.NewReader("9\n??\np\ns\n"), &out))
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), `Unknown input "??"`)
	assert.Contains(t, out.String(), "Already at the first question.")
}

func TestPlayLines_UnknownSubject(t *testing.T) {
	e, _, _ := testEngine(t)
	err := playLines(context.Background(), e, "chemistry", strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, quiz.ErrNotFound)
}

func TestPlayLines_SaveFailureWarns(t *testing.T) {
	e, hist, mem := testEngine(t)
	mem.SetWriteErr(errors.New("read-only filesystem"))
	var out bytes.Buffer

	require.NoError(t, playLines(context.Background(), e, "cn", strings.NewReader("s\n"), &out))
	assert.Contains(t, out.String(), "Score: 0/10 (0%)")
	assert.Contains(t, out.String(), "could not be saved")
	assert.Len(t, hist.ListFor("cn"), 1)
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"a", 0, true},
		{"d", 3, true},
		{"ab", 0, false},
		{"?", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseOption(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseOption(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSubjectsAndHistoryCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZZER_DB", dir+"/quizzer.db")
	t.Setenv("QUIZZER_LOG_FILE", dir+"/quizzer.log")
	t.Setenv("QUIZZER_BANK", "")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetIn(strings.NewReader("2\ns\n"))
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Contains(t, run("history"), "No previous attempts.")
	assert.Contains(t, run("play", "--subject", "dsa"), "Score: 1/10 (10%)")
	assert.Contains(t, run("subjects"), "10%")
	assert.Contains(t, run("history", "--subject", "dsa"), "Attempt 1")
}
