package poem

import (
	"fmt"
	"slices"
)

// Poem is one entry of the Hyakunin Isshu corpus. Poems are loaded once and
// never mutated afterwards.
type Poem struct {
	// Number is the canonical position in the anthology (1-100).
	Number int `json:"number"`

	// Upper is the kami-no-ku, the 5-7-5 opening verse.
	Upper string `json:"upper"`

	// Lower is the shimo-no-ku, the closing 7-7 verse.
	Lower string `json:"lower"`

	// Author is the poet's name as printed in the anthology.
	Author string `json:"author"`

	Reading     string `json:"reading,omitempty"`
	Translation string `json:"translation,omitempty"`
	Description string `json:"description,omitempty"`
	Season      string `json:"season,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Technique   string `json:"technique,omitempty"`
	Source      string `json:"source,omitempty"`
}

// FullText returns both verses joined by a single space.
func (p Poem) FullText() string {
	return p.Upper + " " + p.Lower
}

// Difficulty selects a fixed subset of the corpus by poem number.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties lists the tiers in increasing order.
var AllDifficulties = []Difficulty{Beginner, Intermediate, Advanced}

// beginnerNumbers are the best-known poems, the ones most players meet first.
var beginnerNumbers = []int{1, 2, 5, 7, 9, 13, 17, 20, 23, 24, 33, 35, 43, 48, 51, 57, 66, 77, 83, 99}

const (
	intermediateFirst = 21
	intermediateLast  = 60
)

// ParseDifficulty converts a string id into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	switch d {
	case Beginner, Intermediate, Advanced:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Includes reports whether the poem with the given number belongs to the tier.
func (d Difficulty) Includes(number int) bool {
	switch d {
	case Beginner:
		return slices.Contains(beginnerNumbers, number)
	case Intermediate:
		return number >= intermediateFirst && number <= intermediateLast
	default:
		return true
	}
}

// Label returns the display name for the tier.
func (d Difficulty) Label() string {
	switch d {
	case Beginner:
		return "Beginner (famous poems)"
	case Intermediate:
		return "Intermediate (No. 21-60)"
	case Advanced:
		return "Advanced (all 100)"
	}
	return string(d)
}
