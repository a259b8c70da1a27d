// Package poemtest builds synthetic corpora for tests.
package poemtest

import (
	"fmt"

	"github.com/abhisek/karuta/internal/poem"
)

// Corpus returns n well-formed poems numbered 1..n, each with its own author.
func Corpus(n int) []poem.Poem {
	poems := make([]poem.Poem, 0, n)
	for i := 1; i <= n; i++ {
		poems = append(poems, Poem(i))
	}
	return poems
}

// Poem returns the synthetic poem with the given number.
func Poem(n int) poem.Poem {
	return poem.Poem{
		Number:      n,
		Upper:       fmt.Sprintf("上の句その%d", n),
		Lower:       fmt.Sprintf("下の句その%d", n),
		Author:      fmt.Sprintf("歌人%d", n),
		Translation: fmt.Sprintf("Translation of poem %d", n),
	}
}

// Repository returns a repository over Corpus(n).
func Repository(n int, opts ...poem.Option) *poem.Repository {
	return poem.NewRepository(Corpus(n), opts...)
}
