package session

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/quiz"
)

// Settings configures one play-through.
type Settings struct {
	// Mode is the question type; Mixed picks one at random per question.
	Mode quiz.Type `json:"mode" validate:"quiz_mode"`

	// Difficulty selects which poems are asked.
	Difficulty poem.Difficulty `json:"difficulty" validate:"required,difficulty"`

	// TotalQuestions is the number of questions in the quiz.
	TotalQuestions int `json:"total_questions" validate:"min=1,max=100"`

	// EnableHints allows one hint per question at reduced points.
	EnableHints bool `json:"enable_hints"`

	// ShowExplanations shows the poem's explanation after each answer.
	ShowExplanations bool `json:"show_explanations"`

	// TimeLimitSeconds is the per-question limit; 0 means none.
	TimeLimitSeconds int `json:"time_limit_seconds" validate:"min=0,max=600"`
}

// DefaultSettings returns ten beginner upper-to-lower questions with hints
// and explanations on and no time limit.
func DefaultSettings() Settings {
	return Settings{
		Mode:             quiz.UpperToLower,
		Difficulty:       poem.Beginner,
		TotalQuestions:   10,
		EnableHints:      true,
		ShowExplanations: true,
	}
}

// SettingsError lists the fields that failed validation.
type SettingsError struct {
	Fields map[string]string
	Err    error
}

func (e *SettingsError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, f+" "+e.Fields[f])
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

func (e *SettingsError) Unwrap() error {
	return e.Err
}

var settingsValidator = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("quiz_mode", func(fl validator.FieldLevel) bool {
		_, err := quiz.ParseType(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		_, err := poem.ParseDifficulty(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the settings and returns a *SettingsError on failure.
func (s Settings) Validate() error {
	err := settingsValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate settings: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &SettingsError{Fields: fields, Err: err}
}

// normalized maps mode aliases such as "mixed" onto their canonical value.
// It assumes s has passed Validate.
func (s Settings) normalized() Settings {
	if t, err := quiz.ParseType(string(s.Mode)); err == nil {
		s.Mode = t
	}
	return s
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "quiz_mode":
		return fmt.Sprintf("has unknown quiz type %q", fe.Value())
	case "difficulty":
		return fmt.Sprintf("has unknown difficulty %q", fe.Value())
	}
	return "is invalid"
}
