package data_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/karuta/data"
	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/quiz"
)

func TestCorpus(t *testing.T) {
	poems, err := poem.Load(data.Corpus())
	require.NoError(t, err)

	repo := poem.NewRepository(poems)
	if issues := repo.Validate(); len(issues) != 0 {
		t.Errorf("Validate() = %v, want no issues", issues)
	}
	if repo.Len() != 100 {
		t.Errorf("Len() = %d, want 100", repo.Len())
	}

	tiers := map[poem.Difficulty]int{
		poem.Beginner:     20,
		poem.Intermediate: 40,
		poem.Advanced:     100,
	}
	for d, want := range tiers {
		if got := len(repo.ByDifficulty(d)); got != want {
			t.Errorf("%s poems = %d, want %d", d, got, want)
		}
	}
}

func TestCorpus_DistinctVerses(t *testing.T) {
	poems, err := poem.Load(data.Corpus())
	require.NoError(t, err)

	uppers := make(map[string]int)
	lowers := make(map[string]int)
	for _, p := range poems {
		if prev, ok := uppers[p.Upper]; ok {
			t.Errorf("poems %d and %d share the upper verse", prev, p.Number)
		}
		if prev, ok := lowers[p.Lower]; ok {
			t.Errorf("poems %d and %d share the lower verse", prev, p.Number)
		}
		uppers[p.Upper] = p.Number
		lowers[p.Lower] = p.Number
	}
}

func TestCorpus_Readings(t *testing.T) {
	poems, err := poem.Load(data.Corpus())
	require.NoError(t, err)

	for _, p := range poems {
		if p.Reading == "" {
			t.Errorf("poem %d has no reading", p.Number)
			continue
		}
		if got := len(strings.Fields(p.Reading)); got != 5 {
			t.Errorf("poem %d reading has %d phrases, want 5", p.Number, got)
		}
	}
}

func TestCorpus_ExplanationShowsReading(t *testing.T) {
	poems, err := poem.Load(data.Corpus())
	require.NoError(t, err)

	p, err := poem.NewRepository(poems).ByNumber(17)
	require.NoError(t, err)

	got := quiz.Explain(p, quiz.UpperToLower)
	for _, want := range []string{"[Reading]\nちはやぶる", "[Notes]\nSeason: 秋"} {
		if !strings.Contains(got, want) {
			t.Errorf("explanation missing %q:\n%s", want, got)
		}
	}
}
