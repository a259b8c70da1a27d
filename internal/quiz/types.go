package quiz

import (
	"fmt"

	"github.com/abhisek/karuta/internal/poem"
)

// Type is the framing of a question: which part of a poem is shown and
// which part the player has to pick.
type Type string

const (
	UpperToLower Type = "upper_to_lower"
	LowerToUpper Type = "lower_to_upper"
	AuthorToPoem Type = "author_to_poem"
	PoemToAuthor Type = "poem_to_author"

	// Mixed is not a question type. As a mode it asks for a random type
	// per question.
	Mixed Type = ""
)

// AllTypes lists the concrete question types.
var AllTypes = []Type{UpperToLower, LowerToUpper, AuthorToPoem, PoemToAuthor}

// ParseType converts a type id into a Type. The empty string and "mixed"
// both map to Mixed.
func ParseType(s string) (Type, error) {
	switch s {
	case "", "mixed":
		return Mixed, nil
	}
	t := Type(s)
	for _, known := range AllTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown quiz type %q", s)
}

// Label returns a short display name such as "Upper → Lower".
func (t Type) Label() string {
	switch t {
	case UpperToLower:
		return "Upper → Lower"
	case LowerToUpper:
		return "Lower → Upper"
	case AuthorToPoem:
		return "Author → Poem"
	case PoemToAuthor:
		return "Poem → Author"
	case Mixed:
		return "Mixed"
	}
	return string(t)
}

// Instruction tells the player what to choose.
func (t Type) Instruction() string {
	switch t {
	case UpperToLower:
		return "Choose the lower verse that completes this poem."
	case LowerToUpper:
		return "Choose the upper verse that opens this poem."
	case AuthorToPoem:
		return "Choose the poem by this author."
	case PoemToAuthor:
		return "Who composed this poem?"
	}
	return ""
}

// Question is a generated multiple-choice question. It is not modified after
// the generator returns it.
type Question struct {
	// PoemNumber identifies the poem the correct answer comes from.
	PoemNumber int

	// Type is the framing used to build Text and Answer.
	Type Type

	// Text is the prompt: a verse, a full poem, or an author line.
	Text string

	// Choices holds up to 4 unique options, one of which equals Answer.
	Choices []string

	// CorrectIndex is the position of Answer in Choices.
	CorrectIndex int

	// Answer is the text of the correct choice.
	Answer string

	// Explanation is shown after the player answers.
	Explanation string

	// Difficulty is the tier the question was drawn from.
	Difficulty poem.Difficulty

	// Poem is the source poem.
	Poem poem.Poem
}

// ID returns the question identity used for no-repeat tracking and in
// answer results, e.g. "17_upper_to_lower".
func (q *Question) ID() string {
	return fmt.Sprintf("%d_%s", q.PoemNumber, q.Type)
}
