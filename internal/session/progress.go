package session

// Progress describes how far the active quiz has got.
type Progress struct {
	Current  int     `json:"current"`
	Total    int     `json:"total"`
	Answered int     `json:"answered"`
	Score    int     `json:"score"`
	Points   float64 `json:"points"`
	Percent  float64 `json:"percent"`
	// Accuracy is over answered questions, 0..100.
	Accuracy  float64 `json:"accuracy"`
	Completed bool    `json:"completed"`
	// Elapsed is seconds since the quiz started, frozen at completion.
	Elapsed float64 `json:"elapsed"`
}

// Progress returns the active quiz's progress. Current is one-based and
// never exceeds Total.
func (c *Controller) Progress() (Progress, error) {
	if c.quiz == nil {
		return Progress{}, ErrNoQuiz
	}
	q := c.quiz
	p := Progress{
		Current:   min(q.CurrentIndex+1, q.Settings.TotalQuestions),
		Total:     q.Settings.TotalQuestions,
		Answered:  len(q.Results),
		Score:     q.Score,
		Points:    q.Points,
		Completed: q.Completed,
	}
	end := c.now()
	if q.Completed {
		end = q.CompletedAt
	}
	p.Elapsed = end.Sub(q.StartedAt).Seconds()
	if p.Total > 0 {
		p.Percent = float64(p.Answered) / float64(p.Total) * 100
	}
	if p.Answered > 0 {
		p.Accuracy = float64(p.Score) / float64(p.Answered) * 100
	}
	return p, nil
}
