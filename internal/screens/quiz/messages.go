package quiz

import "time"

// tickMsg drives the countdown. gen ties it to the question it was
// started for so ticks from earlier questions are dropped.
type tickMsg struct {
	gen int
	at  time.Time
}
