package poem_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/poem/poemtest"
)

func numbers(poems []poem.Poem) []int {
	out := make([]int, len(poems))
	for i, p := range poems {
		out[i] = p.Number
	}
	return out
}

func TestByNumber(t *testing.T) {
	repo := poemtest.Repository(100)

	p, err := repo.ByNumber(42)
	require.NoError(t, err)
	assert.Equal(t, 42, p.Number)

	_, err = repo.ByNumber(101)
	if !errors.Is(err, poem.ErrNotFound) {
		t.Errorf("ByNumber(101) err = %v, want ErrNotFound", err)
	}
}

func TestByAuthor_InsertionOrder(t *testing.T) {
	corpus := poemtest.Corpus(5)
	corpus[1].Author = "紫式部"
	corpus[3].Author = "紫式部"
	repo := poem.NewRepository(corpus)

	got := numbers(repo.ByAuthor("紫式部"))
	assert.Equal(t, []int{2, 4}, got)
	assert.Empty(t, repo.ByAuthor("nobody"))
	assert.Len(t, repo.Authors(), 4)
}

func TestSearch(t *testing.T) {
	repo := poemtest.Repository(20)

	got := repo.Search("TRANSLATION OF POEM 1")
	// Poem 1 and 10-19 all contain "poem 1".
	assert.Len(t, got, 11)

	got = repo.Search("下の句その7")
	assert.Equal(t, []int{7}, numbers(got))

	assert.Empty(t, repo.Search(""))
}

func TestRandomSample(t *testing.T) {
	repo := poemtest.Repository(10, poem.WithRand(rand.New(rand.NewPCG(1, 2))))

	got := repo.RandomSample(4, []int{1, 2, 3})
	require.Len(t, got, 4)
	seen := map[int]bool{}
	for _, p := range got {
		assert.Greater(t, p.Number, 3)
		assert.False(t, seen[p.Number], "duplicate %d", p.Number)
		seen[p.Number] = true
	}

	// Fewer available than requested returns all of them.
	got = repo.RandomSample(5, []int{1, 2, 3, 4, 5, 6, 7})
	assert.ElementsMatch(t, []int{8, 9, 10}, numbers(got))
}

func TestByDifficulty(t *testing.T) {
	repo := poemtest.Repository(100)

	beginner := repo.ByDifficulty(poem.Beginner)
	if len(beginner) != 20 {
		t.Errorf("beginner count = %d, want 20", len(beginner))
	}
	for _, p := range beginner {
		assert.True(t, poem.Beginner.Includes(p.Number))
	}

	intermediate := repo.ByDifficulty(poem.Intermediate)
	if len(intermediate) != 40 {
		t.Errorf("intermediate count = %d, want 40", len(intermediate))
	}
	assert.Equal(t, 21, intermediate[0].Number)
	assert.Equal(t, 60, intermediate[len(intermediate)-1].Number)

	assert.Len(t, repo.ByDifficulty(poem.Advanced), 100)
}

func TestParseDifficulty(t *testing.T) {
	d, err := poem.ParseDifficulty("intermediate")
	require.NoError(t, err)
	assert.Equal(t, poem.Intermediate, d)

	_, err = poem.ParseDifficulty("expert")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	repo := poem.NewRepository([]poem.Poem{
		{Number: 1, Upper: "あいう", Lower: "かき", Author: "A"},
		{Number: 2, Upper: "あ", Lower: "かきくけ", Author: "A"},
	})
	s := repo.Stats()
	assert.Equal(t, 2, s.TotalPoems)
	assert.Equal(t, 1, s.UniqueAuthors)
	assert.InDelta(t, 2.0, s.AverageUpperLength, 1e-9)
	assert.InDelta(t, 3.0, s.AverageLowerLength, 1e-9)

	empty := poem.NewRepository(nil).Stats()
	assert.Zero(t, empty.AverageUpperLength)
}

func TestValidate(t *testing.T) {
	clean := poemtest.Repository(100)
	assert.Empty(t, clean.Validate())

	corpus := poemtest.Corpus(3)
	corpus = append(corpus, poem.Poem{Number: 2, Upper: "x", Lower: "y", Author: "z"})
	corpus = append(corpus, poem.Poem{Number: 101, Upper: "x", Lower: " ", Author: "z"})
	repo := poem.NewRepository(corpus)

	kinds := map[poem.IssueKind]int{}
	for _, issue := range repo.Validate() {
		kinds[issue.Kind]++
	}
	assert.Equal(t, 1, kinds[poem.IssueDuplicateNumber])
	assert.Equal(t, 1, kinds[poem.IssueOutOfRange])
	assert.Equal(t, 1, kinds[poem.IssueEmptyField])

	// Duplicates keep the first poem for lookups.
	p, err := repo.ByNumber(2)
	require.NoError(t, err)
	assert.Equal(t, "上の句その2", p.Upper)
}
