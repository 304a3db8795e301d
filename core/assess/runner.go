// Package assess implements the multi-step assessment runner: sequential
// question navigation, per-question answers, a countdown and a local results
// summary. Assessments are client-side state; nothing round-trips until the
// course tooling grows a grading endpoint.
package assess

import (
	"time"

	"github.com/elimulabs/elimu/core/view"
)

var NowFunc = time.Now // mockable

type Answer struct {
	Value   string `json:"value"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Code    string   `json:"code,omitempty"`
	Hint    string   `json:"hint,omitempty"`
	Answers []Answer `json:"answers"`
}

// QuestionResult is one row of the results screen.
type QuestionResult struct {
	QuestionID int
	Chosen     string
	Correct    bool
	Answered   bool
}

// Result is the results screen summary.
type Result struct {
	Total     int
	Answered  int
	Correct   int
	Score     int // percent
	Questions []QuestionResult
}

// Runner holds one in-progress assessment attempt.
type Runner struct {
	view.Lifecycle

	questions []Question
	current   int
	answers   map[int]string // question ID -> chosen value
	startedAt time.Time
	limit     time.Duration
	submitted bool
	result    Result
}

func NewRunner(questions []Question, limit time.Duration) *Runner {
	r := &Runner{
		questions: questions,
		answers:   make(map[int]string, len(questions)),
		startedAt: NowFunc(),
		limit:     limit,
	}
	r.Begin()
	r.Finish(nil) // question set is local; the runner mounts Ready
	return r
}

func (r *Runner) Len() int { return len(r.questions) }

// Current returns the question in focus and its position.
func (r *Runner) Current() (Question, int) {
	var (
		q   Question
		idx int
	)
	r.Apply(func() {
		idx = r.current
		if idx < len(r.questions) {
			q = r.questions[idx]
		}
	})
	return q, idx
}

// Answer records the chosen value for the current question. Re-answering
// overwrites; there is no lock-in until submit.
func (r *Runner) Answer(value string) {
	r.Apply(func() {
		if r.submitted || r.current >= len(r.questions) {
			return
		}
		r.answers[r.questions[r.current].ID] = value
	})
}

func (r *Runner) Next() { r.jump(+1) }
func (r *Runner) Prev() { r.jump(-1) }

func (r *Runner) jump(delta int) {
	r.Apply(func() {
		next := r.current + delta
		if next >= 0 && next < len(r.questions) {
			r.current = next
		}
	})
}

// Goto focuses the question at idx, as the question-palette sidebar does.
func (r *Runner) Goto(idx int) {
	r.Apply(func() {
		if idx >= 0 && idx < len(r.questions) {
			r.current = idx
		}
	})
}

// TimeLeft reports the remaining time, clamped at zero.
func (r *Runner) TimeLeft() time.Duration {
	var left time.Duration
	r.Apply(func() {
		left = r.limit - NowFunc().Sub(r.startedAt)
	})
	if left < 0 {
		left = 0
	}
	return left
}

func (r *Runner) Expired() bool { return r.TimeLeft() == 0 }

// Submit grades the attempt locally and freezes it. Submitting twice returns
// the first result.
func (r *Runner) Submit() Result {
	var res Result
	r.Apply(func() {
		if r.submitted {
			res = r.result
			return
		}
		res.Total = len(r.questions)
		for _, q := range r.questions {
			qr := QuestionResult{QuestionID: q.ID}
			if chosen, ok := r.answers[q.ID]; ok {
				qr.Answered = true
				qr.Chosen = chosen
				res.Answered++
				for _, a := range q.Answers {
					if a.Value == chosen && a.Correct {
						qr.Correct = true
						res.Correct++
						break
					}
				}
			}
			res.Questions = append(res.Questions, qr)
		}
		if res.Total > 0 {
			res.Score = res.Correct * 100 / res.Total
		}
		r.submitted = true
		r.result = res
	})
	return res
}

func (r *Runner) Submitted() bool {
	var done bool
	r.Apply(func() { done = r.submitted })
	return done
}
