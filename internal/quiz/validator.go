package quiz

import "fmt"

// Validator checks a generated question before it is handed out.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier such as "structural" or "choices".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed a check.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that the prompt, answer and explanation are set
// and the type is a concrete one.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "question text is empty"}
	}
	if q.Answer == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	if q.Explanation == "" {
		return &ValidationError{Validator: v.Name(), Message: "explanation is empty"}
	}
	if _, err := ParseType(string(q.Type)); err != nil || q.Type == Mixed {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("invalid type %q", q.Type)}
	}
	return nil
}

// ChoiceValidator checks that choices are unique, at most MaxChoices long,
// and that the correct answer sits at CorrectIndex.
type ChoiceValidator struct {
	MaxChoices int
}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(q *Question) *ValidationError {
	if len(q.Choices) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no choices"}
	}
	if v.MaxChoices > 0 && len(q.Choices) > v.MaxChoices {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%d choices, max %d", len(q.Choices), v.MaxChoices)}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("correct index %d out of range", q.CorrectIndex)}
	}
	if q.Choices[q.CorrectIndex] != q.Answer {
		return &ValidationError{Validator: v.Name(), Message: "choice at correct index does not match answer"}
	}
	seen := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if seen[c] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate choice %q", c)}
		}
		seen[c] = true
	}
	return nil
}
