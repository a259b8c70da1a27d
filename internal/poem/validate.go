package poem

import (
	"fmt"
	"slices"
	"strings"
)

const (
	minNumber = 1
	maxNumber = 100
)

// IssueKind names a class of corpus problem.
type IssueKind string

const (
	IssueDuplicateNumber IssueKind = "duplicate_number"
	IssueOutOfRange      IssueKind = "out_of_range"
	IssueEmptyField      IssueKind = "empty_field"
)

// ValidationIssue is a corpus problem that does not prevent loading.
type ValidationIssue struct {
	Kind    IssueKind `json:"kind"`
	Number  int       `json:"number"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (i ValidationIssue) String() string {
	return i.Message
}

// Validate checks the corpus for duplicate numbers, numbers outside 1-100 and
// empty verse or author fields. An empty result means the corpus is clean.
func (r *Repository) Validate() []ValidationIssue {
	var issues []ValidationIssue

	seen := make(map[int]int, len(r.poems))
	for _, p := range r.poems {
		seen[p.Number]++
	}
	var dups []int
	for n, c := range seen {
		if c > 1 {
			dups = append(dups, n)
		}
	}
	slices.Sort(dups)
	for _, n := range dups {
		issues = append(issues, ValidationIssue{
			Kind:    IssueDuplicateNumber,
			Number:  n,
			Message: fmt.Sprintf("poem number %d appears %d times", n, seen[n]),
		})
	}

	for _, p := range r.poems {
		if p.Number < minNumber || p.Number > maxNumber {
			issues = append(issues, ValidationIssue{
				Kind:    IssueOutOfRange,
				Number:  p.Number,
				Message: fmt.Sprintf("poem number %d is outside %d-%d", p.Number, minNumber, maxNumber),
			})
		}
	}

	for _, p := range r.poems {
		for _, f := range []struct{ name, value string }{
			{"upper", p.Upper},
			{"lower", p.Lower},
			{"author", p.Author},
		} {
			if strings.TrimSpace(f.value) == "" {
				issues = append(issues, ValidationIssue{
					Kind:    IssueEmptyField,
					Number:  p.Number,
					Field:   f.name,
					Message: fmt.Sprintf("poem %d: %s is empty", p.Number, f.name),
				})
			}
		}
	}

	return issues
}
