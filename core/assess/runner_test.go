package assess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimulabs/elimu/core/view"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: 1, Text: "What does go vet do?", Answers: []Answer{
			{Value: "a", Text: "Formats code"},
			{Value: "b", Text: "Reports suspicious constructs", Correct: true},
		}},
		{ID: 2, Text: "Zero value of a slice?", Answers: []Answer{
			{Value: "a", Text: "nil", Correct: true},
			{Value: "b", Text: "empty slice"},
		}},
		{ID: 3, Text: "Channels are typed?", Answers: []Answer{
			{Value: "a", Text: "yes", Correct: true},
			{Value: "b", Text: "no"},
		}},
	}
}

func TestRunner_mountsReady(t *testing.T) {
	r := NewRunner(sampleQuestions(), 10*time.Minute)
	assert.Equal(t, view.Ready, r.Phase())
	assert.Equal(t, 3, r.Len())

	q, idx := r.Current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, q.ID)
}

func TestRunner_navigation(t *testing.T) {
	r := NewRunner(sampleQuestions(), 10*time.Minute)

	r.Prev() // clamped at the first question
	_, idx := r.Current()
	assert.Equal(t, 0, idx)

	r.Next()
	r.Next()
	_, idx = r.Current()
	assert.Equal(t, 2, idx)

	r.Next() // clamped at the last question
	_, idx = r.Current()
	assert.Equal(t, 2, idx)

	r.Goto(1)
	q, idx := r.Current()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, q.ID)

	r.Goto(99) // out of range is ignored
	_, idx = r.Current()
	assert.Equal(t, 1, idx)
}

func TestRunner_answerOverwrites(t *testing.T) {
	r := NewRunner(sampleQuestions(), 10*time.Minute)

	r.Answer("a")
	r.Answer("b") // changed their mind
	r.Next()
	r.Answer("a")

	res := r.Submit()
	assert.Equal(t, 2, res.Answered)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, "b", res.Questions[0].Chosen)
}

func TestRunner_scoring(t *testing.T) {
	r := NewRunner(sampleQuestions(), 10*time.Minute)
	r.Answer("b") // correct
	r.Goto(1)
	r.Answer("b") // wrong
	// question 3 left unanswered

	res := r.Submit()
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Answered)
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, 33, res.Score)

	require.Len(t, res.Questions, 3)
	assert.True(t, res.Questions[0].Correct)
	assert.False(t, res.Questions[1].Correct)
	assert.False(t, res.Questions[2].Answered)
}

func TestRunner_submitIsIdempotent(t *testing.T) {
	r := NewRunner(sampleQuestions(), 10*time.Minute)
	r.Answer("b")

	first := r.Submit()
	assert.True(t, r.Submitted())

	r.Answer("a") // ignored after submit
	second := r.Submit()
	assert.Equal(t, first, second)
}

func TestRunner_timeLeft(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	r := NewRunner(sampleQuestions(), 10*time.Minute)
	assert.Equal(t, 10*time.Minute, r.TimeLeft())
	assert.False(t, r.Expired())

	now = now.Add(7 * time.Minute)
	assert.Equal(t, 3*time.Minute, r.TimeLeft())

	now = now.Add(5 * time.Minute)
	assert.Equal(t, time.Duration(0), r.TimeLeft(), "clamped at zero")
	assert.True(t, r.Expired())
}

func TestRunner_emptySet(t *testing.T) {
	r := NewRunner(nil, time.Minute)
	res := r.Submit()
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.Score)
}
