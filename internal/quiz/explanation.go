package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/karuta/internal/poem"
)

// Explain builds the explanation text shown after a question is answered.
func Explain(p poem.Poem, t Type) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[No.] %d\n", p.Number)
	fmt.Fprintf(&b, "[Author] %s\n\n", p.Author)
	fmt.Fprintf(&b, "[Poem]\n%s\n\n", p.FullText())

	if p.Reading != "" {
		fmt.Fprintf(&b, "[Reading]\n%s\n\n", p.Reading)
	}
	if p.Translation != "" {
		fmt.Fprintf(&b, "[Translation]\n%s\n\n", p.Translation)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "[Commentary]\n%s\n\n", p.Description)
	}

	var notes []string
	for _, n := range []struct{ label, value string }{
		{"Season", p.Season},
		{"Theme", p.Theme},
		{"Technique", p.Technique},
		{"Source", p.Source},
	} {
		if n.value != "" {
			notes = append(notes, n.label+": "+n.value)
		}
	}
	if len(notes) > 0 {
		fmt.Fprintf(&b, "[Notes]\n%s\n\n", strings.Join(notes, " / "))
	}

	switch t {
	case UpperToLower:
		b.WriteString("This question led from the upper verse to the lower verse.")
	case LowerToUpper:
		b.WriteString("This question led from the lower verse back to the upper verse.")
	case AuthorToPoem:
		fmt.Fprintf(&b, "This poem is by 「%s」.", p.Author)
	case PoemToAuthor:
		fmt.Fprintf(&b, "This poem was composed by 「%s」.", p.Author)
	}

	return b.String()
}
