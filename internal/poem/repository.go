package poem

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// ErrNotFound is returned when no poem has the requested number.
var ErrNotFound = errors.New("poem not found")

// Repository holds a loaded corpus indexed by number and by author.
// Lookups are safe for concurrent use.
type Repository struct {
	poems    []Poem
	byNumber map[int]Poem
	byAuthor map[string][]Poem
	authors  []string

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Repository.
type Option func(*Repository)

// WithRand sets the random source used by RandomSample.
func WithRand(rng *rand.Rand) Option {
	return func(r *Repository) {
		r.rng = rng
	}
}

// NewRepository indexes the given poems. When two poems share a number the
// first one wins; Validate reports the duplicate.
func NewRepository(poems []Poem, opts ...Option) *Repository {
	r := &Repository{
		poems:    slices.Clone(poems),
		byNumber: make(map[int]Poem, len(poems)),
		byAuthor: make(map[string][]Poem),
	}
	for _, p := range r.poems {
		if _, dup := r.byNumber[p.Number]; !dup {
			r.byNumber[p.Number] = p
		}
		if _, seen := r.byAuthor[p.Author]; !seen {
			r.authors = append(r.authors, p.Author)
		}
		r.byAuthor[p.Author] = append(r.byAuthor[p.Author], p)
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r
}

// Open loads the corpus file at path and builds a Repository from it.
func Open(path string, opts ...Option) (*Repository, error) {
	poems, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRepository(poems, opts...), nil
}

// All returns every poem in corpus order.
func (r *Repository) All() []Poem {
	return slices.Clone(r.poems)
}

// Len returns the number of poems in the corpus.
func (r *Repository) Len() int {
	return len(r.poems)
}

// ByNumber returns the poem with the given number.
func (r *Repository) ByNumber(n int) (Poem, error) {
	p, ok := r.byNumber[n]
	if !ok {
		return Poem{}, ErrNotFound
	}
	return p, nil
}

// ByAuthor returns the author's poems in corpus order. The result may be empty.
func (r *Repository) ByAuthor(name string) []Poem {
	return slices.Clone(r.byAuthor[name])
}

// Authors returns the distinct authors in order of first appearance.
func (r *Repository) Authors() []string {
	return slices.Clone(r.authors)
}

// Search returns poems whose verses, author, reading or translation contain
// keyword, ignoring case. An empty keyword matches nothing.
func (r *Repository) Search(keyword string) []Poem {
	if keyword == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(keyword)

	var out []Poem
	for _, p := range r.poems {
		for _, field := range []string{p.Upper, p.Lower, p.Author, p.Reading, p.Translation} {
			if strings.Contains(fold.String(field), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// RandomSample draws count poems uniformly without replacement, skipping the
// excluded numbers. If fewer are available, all of them are returned.
func (r *Repository) RandomSample(count int, exclude []int) []Poem {
	available := make([]Poem, 0, len(r.poems))
	for _, p := range r.poems {
		if !slices.Contains(exclude, p.Number) {
			available = append(available, p)
		}
	}
	if count < 0 {
		count = 0
	}
	if len(available) <= count {
		return available
	}

	r.mu.Lock()
	r.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	r.mu.Unlock()
	return available[:count]
}

// ByDifficulty returns the poems that belong to the tier, in corpus order.
func (r *Repository) ByDifficulty(d Difficulty) []Poem {
	var out []Poem
	for _, p := range r.poems {
		if d.Includes(p.Number) {
			out = append(out, p)
		}
	}
	return out
}

// Stats summarizes the corpus.
type Stats struct {
	TotalPoems         int     `json:"total_poems"`
	UniqueAuthors      int     `json:"unique_authors"`
	AverageUpperLength float64 `json:"average_upper_length"`
	AverageLowerLength float64 `json:"average_lower_length"`
}

// Stats computes corpus statistics. Verse lengths are counted in characters.
func (r *Repository) Stats() Stats {
	s := Stats{
		TotalPoems:    len(r.poems),
		UniqueAuthors: len(r.authors),
	}
	if len(r.poems) == 0 {
		return s
	}
	var upper, lower int
	for _, p := range r.poems {
		upper += len([]rune(p.Upper))
		lower += len([]rune(p.Lower))
	}
	s.AverageUpperLength = float64(upper) / float64(len(r.poems))
	s.AverageLowerLength = float64(lower) / float64(len(r.poems))
	return s
}
