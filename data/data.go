// Package data embeds the bundled Hyakunin Isshu corpus.
package data

import (
	"bytes"
	_ "embed"
	"io"
)

// CorpusName is the file name of the bundled corpus.
const CorpusName = "hyakunin_isshu.json"

//go:embed hyakunin_isshu.json
var corpus []byte

// Corpus returns a reader over the bundled corpus.
func Corpus() io.Reader {
	return bytes.NewReader(corpus)
}
