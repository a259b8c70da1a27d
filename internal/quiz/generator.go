package quiz

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/karuta/internal/poem"
)

// ErrExhausted is returned when no poem is left that satisfies the tier,
// the exclusions and the no-repeat rule. Callers usually end the quiz early.
var ErrExhausted = errors.New("no more questions available")

type usedKey struct {
	number int
	typ    Type
}

// Generator builds multiple-choice questions from a corpus. It remembers
// which (poem, type) pairs it has issued so a session never repeats one.
// A Generator belongs to a single session and is not safe for concurrent use.
type Generator struct {
	poems   []poem.Poem
	tiers   map[poem.Difficulty][]poem.Poem
	authors []string
	config  Config
	used    map[usedKey]struct{}
	rng     *rand.Rand
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(g *Generator) { g.config = cfg }
}

// NewGenerator creates a Generator over the repository's poems.
func NewGenerator(repo *poem.Repository, opts ...Option) *Generator {
	g := &Generator{
		poems:   repo.All(),
		tiers:   make(map[poem.Difficulty][]poem.Poem, len(poem.AllDifficulties)),
		authors: repo.Authors(),
		config:  DefaultConfig(),
		used:    make(map[usedKey]struct{}),
	}
	for _, d := range poem.AllDifficulties {
		g.tiers[d] = repo.ByDifficulty(d)
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Generate produces one question of type t from tier d, skipping poems whose
// numbers are in exclude. With t == Mixed a random type that still has
// candidates is used. Returns ErrExhausted when nothing is left.
func (g *Generator) Generate(t Type, d poem.Difficulty, exclude []int) (*Question, error) {
	if t == Mixed {
		return g.generateMixed(d, exclude)
	}
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	tier, ok := g.tiers[d]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", d)
	}

	candidates := g.candidates(tier, t, exclude)
	if len(candidates) == 0 {
		g.logger.Debug("generation exhausted", "type", t, "difficulty", d, "excluded", len(exclude))
		return nil, ErrExhausted
	}
	src := candidates[g.rng.IntN(len(candidates))]

	q := g.build(src, t, d)
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, fmt.Errorf("generate question %s: %w", q.ID(), verr)
		}
	}

	g.used[usedKey{src.Number, t}] = struct{}{}
	return q, nil
}

func (g *Generator) generateMixed(d poem.Difficulty, exclude []int) (*Question, error) {
	types := slices.Clone(AllTypes)
	g.rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })
	for _, t := range types {
		q, err := g.Generate(t, d, exclude)
		if errors.Is(err, ErrExhausted) {
			continue
		}
		return q, err
	}
	return nil, ErrExhausted
}

func (g *Generator) candidates(tier []poem.Poem, t Type, exclude []int) []poem.Poem {
	var out []poem.Poem
	for _, p := range tier {
		if slices.Contains(exclude, p.Number) {
			continue
		}
		if _, used := g.used[usedKey{p.Number, t}]; used {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (g *Generator) build(src poem.Poem, t Type, d poem.Difficulty) *Question {
	var text, answer string
	switch t {
	case UpperToLower:
		text, answer = src.Upper, src.Lower
	case LowerToUpper:
		text, answer = src.Lower, src.Upper
	case AuthorToPoem:
		text, answer = fmt.Sprintf("Which poem did 「%s」 compose?", src.Author), src.FullText()
	case PoemToAuthor:
		text, answer = src.FullText(), src.Author
	}

	choices := append([]string{answer}, g.distractors(src, t, answer)...)
	g.rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })

	return &Question{
		PoemNumber:   src.Number,
		Type:         t,
		Text:         text,
		Choices:      choices,
		CorrectIndex: slices.Index(choices, answer),
		Answer:       answer,
		Explanation:  Explain(src, t),
		Difficulty:   d,
		Poem:         src,
	}
}

// distractors draws wrong choices from the whole corpus without replacement.
// Poems by the same author may still serve as poem distractors. If the corpus
// runs out, fewer distractors are returned.
func (g *Generator) distractors(src poem.Poem, t Type, answer string) []string {
	want := g.config.Distractors
	var pool []string
	if t == PoemToAuthor {
		pool = g.authors
	} else {
		for _, p := range g.poems {
			if p.Number == src.Number {
				continue
			}
			switch t {
			case UpperToLower:
				pool = append(pool, p.Lower)
			case LowerToUpper:
				pool = append(pool, p.Upper)
			case AuthorToPoem:
				pool = append(pool, p.FullText())
			}
		}
	}

	var out []string
	for _, i := range g.rng.Perm(len(pool)) {
		if len(out) >= want {
			break
		}
		c := pool[i]
		if c == answer || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RandomQuestions generates up to count questions, excluding each poem once
// it has been used. It stops early without error when generation runs out.
func (g *Generator) RandomQuestions(count int, t Type, d poem.Difficulty) []*Question {
	var (
		out     []*Question
		exclude []int
	)
	for len(out) < count {
		q, err := g.Generate(t, d, exclude)
		if err != nil {
			if !errors.Is(err, ErrExhausted) {
				g.logger.Warn("question generation failed", "error", err)
			}
			break
		}
		out = append(out, q)
		exclude = append(exclude, q.PoemNumber)
	}
	return out
}

// IsUsed reports whether the pair has been issued since the last reset.
func (g *Generator) IsUsed(number int, t Type) bool {
	_, ok := g.used[usedKey{number, t}]
	return ok
}

// ResetUsed forgets every issued question.
func (g *Generator) ResetUsed() {
	clear(g.used)
}

// Stats describes the generator's corpus and usage.
type Stats struct {
	TotalPoems    int            `json:"total_poems"`
	TierSizes     map[string]int `json:"tier_sizes"`
	UsedQuestions int            `json:"used_questions"`
	QuizTypes     []Type         `json:"quiz_types"`
}

// Stats returns the current generator statistics.
func (g *Generator) Stats() Stats {
	sizes := make(map[string]int, len(g.tiers))
	for d, ps := range g.tiers {
		sizes[string(d)] = len(ps)
	}
	return Stats{
		TotalPoems:    len(g.poems),
		TierSizes:     sizes,
		UsedQuestions: len(g.used),
		QuizTypes:     slices.Clone(AllTypes),
	}
}
