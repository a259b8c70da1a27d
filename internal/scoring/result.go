package scoring

import (
	"encoding/json"
	"time"
)

// Status is the judged outcome of one answer.
type Status string

const (
	Correct         Status = "correct"
	Incorrect       Status = "incorrect"
	Skipped         Status = "skipped"
	Timeout         Status = "timeout"
	HintUsedCorrect Status = "hint_used"
)

// Label returns a display name for the status.
func (s Status) Label() string {
	switch s {
	case Correct:
		return "Correct"
	case Incorrect:
		return "Incorrect"
	case Skipped:
		return "Skipped"
	case Timeout:
		return "Time up"
	case HintUsedCorrect:
		return "Correct (hint)"
	}
	return string(s)
}

const (
	basePoints     = 1.0
	maxPoints      = 1.5
	hintPoints     = 0.7
	bonusWindow    = 5.0
	bonusPerSecond = 0.1
)

// AnswerResult records one judged answer. Results are appended to the
// statistics log and never changed afterwards.
type AnswerResult struct {
	QuestionID    string    `json:"question_id"`
	PoemNumber    int       `json:"poem_number"`
	QuestionText  string    `json:"question_text"`
	CorrectAnswer string    `json:"correct_answer"`
	CorrectIndex  int       `json:"correct_index"`
	UserAnswer    *string   `json:"user_answer"`
	AnswerIndex   *int      `json:"answer_index"`
	Status        Status    `json:"status"`
	TimeTaken     float64   `json:"time_taken"`
	HintUsed      bool      `json:"hint_used"`
	Timestamp     time.Time `json:"timestamp"`
}

// IsCorrect reports whether the answer counts as correct.
func (r AnswerResult) IsCorrect() bool {
	return r.Status == Correct || r.Status == HintUsedCorrect
}

// Points returns the score for the answer. A correct answer earns 1.0 plus
// 0.1 per second under five seconds, capped at 1.5. A hinted correct answer
// earns 0.7. Everything else earns nothing.
func (r AnswerResult) Points() float64 {
	switch r.Status {
	case Correct:
		p := basePoints
		if r.TimeTaken <= bonusWindow {
			p += (bonusWindow - r.TimeTaken) * bonusPerSecond
		}
		return min(p, maxPoints)
	case HintUsedCorrect:
		return hintPoints
	}
	return 0
}

type answerResultJSON AnswerResult

// MarshalJSON adds the derived is_correct and points fields.
func (r AnswerResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		answerResultJSON
		IsCorrect bool    `json:"is_correct"`
		Points    float64 `json:"points"`
	}{answerResultJSON(r), r.IsCorrect(), r.Points()})
}

// UnmarshalJSON restores a result; the derived fields are recomputed.
func (r *AnswerResult) UnmarshalJSON(data []byte) error {
	var aux answerResultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = AnswerResult(aux)
	return nil
}
