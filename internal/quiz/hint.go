package quiz

import "fmt"

// Hint returns a nudge for the question without giving the answer away.
func Hint(q *Question) string {
	switch q.Type {
	case UpperToLower:
		return fmt.Sprintf("The lower verse begins with 「%s」.", firstChar(q.Poem.Lower))
	case LowerToUpper:
		return fmt.Sprintf("The upper verse begins with 「%s」.", firstChar(q.Poem.Upper))
	case AuthorToPoem:
		return fmt.Sprintf("This is poem No. %d.", q.PoemNumber)
	case PoemToAuthor:
		switch {
		case q.PoemNumber <= 20:
			return "The poet lived in the early Heian period."
		case q.PoemNumber <= 50:
			return "The poet lived in the mid Heian period."
		default:
			return "The poet lived in the late Heian period or after."
		}
	}
	return "Take your time and think it through."
}

func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
