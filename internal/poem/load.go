package poem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// LoadErrorKind classifies why a corpus could not be loaded.
type LoadErrorKind string

const (
	KindMissing   LoadErrorKind = "missing"
	KindMalformed LoadErrorKind = "malformed"
	KindSchema    LoadErrorKind = "schema"
)

// LoadError is returned when the corpus file cannot be turned into poems.
// It is fatal to startup and is meant to be shown to the user as is.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "corpus"
	}
	switch e.Kind {
	case KindMissing:
		return fmt.Sprintf("%s: data file not found", where)
	case KindMalformed:
		return fmt.Sprintf("%s: malformed JSON: %v", where, e.Err)
	default:
		return fmt.Sprintf("%s: invalid corpus: %v", where, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// rawPoem mirrors the file format, where the number may be spelled "id".
type rawPoem struct {
	Poem
	Number *int `json:"number"`
	ID     *int `json:"id"`
}

// LoadFile reads a corpus from a JSON file on disk.
func LoadFile(path string) ([]Poem, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Kind: KindMissing, Path: path, Err: err}
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	poems, err := Load(f)
	var le *LoadError
	if errors.As(err, &le) {
		le.Path = path
	}
	return poems, err
}

// Load parses a JSON array of poems. Entries that carry "id" but no "number"
// have the id copied into Number.
func Load(r io.Reader) ([]Poem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Kind: KindMalformed, Err: err}
	}
	if err := validateSchema(doc); err != nil {
		return nil, &LoadError{Kind: KindSchema, Err: err}
	}

	var raws []rawPoem
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &LoadError{Kind: KindMalformed, Err: err}
	}

	poems := make([]Poem, 0, len(raws))
	for _, rp := range raws {
		p := rp.Poem
		switch {
		case rp.Number != nil:
			p.Number = *rp.Number
		case rp.ID != nil:
			p.Number = *rp.ID
		}
		poems = append(poems, p)
	}
	return poems, nil
}
