package scoring

import "time"

// Export is the full record of a session's answers, suitable for JSON or
// spreadsheet output.
type Export struct {
	SessionInfo SessionInfo         `json:"session_info"`
	Summary     ExportSummary       `json:"statistics"`
	Analysis    PerformanceAnalysis `json:"performance_analysis"`
	Results     []AnswerResult      `json:"detailed_results"`
}

// SessionInfo identifies the exported session.
type SessionInfo struct {
	SessionID      string    `json:"session_id,omitempty"`
	StartTime      time.Time `json:"start_time"`
	Duration       float64   `json:"duration"`
	TotalQuestions int       `json:"total_questions"`
}

// ExportSummary holds the headline numbers.
type ExportSummary struct {
	Accuracy    float64 `json:"accuracy"`
	AverageTime float64 `json:"average_time"`
	TotalPoints float64 `json:"total_points"`
	Grade       string  `json:"grade"`
}

// Export snapshots the session for output.
func (v *Validator) Export(sessionID string) Export {
	stats := v.Statistics()
	results := stats.Results
	if results == nil {
		results = []AnswerResult{}
	}
	return Export{
		SessionInfo: SessionInfo{
			SessionID:      sessionID,
			StartTime:      v.sessionStart,
			Duration:       v.now().Sub(v.sessionStart).Seconds(),
			TotalQuestions: stats.TotalQuestions,
		},
		Summary: ExportSummary{
			Accuracy:    stats.Accuracy(),
			AverageTime: stats.AverageTime(),
			TotalPoints: stats.TotalPoints,
			Grade:       stats.Grade(),
		},
		Analysis: stats.Analyze(),
		Results:  results,
	}
}
