package quiz

// Config controls question generation.
type Config struct {
	// Distractors is the number of wrong choices drawn per question.
	Distractors int

	// Validators run in order on every generated question; the first
	// failure rejects the question.
	Validators []Validator
}

// DefaultConfig returns three distractors and the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Distractors: 3,
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{MaxChoices: 4},
		},
	}
}
