package tokenize

import (
	"context"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ZanzyTHEbar/wavemetric/wmetric/batch"
	"github.com/ZanzyTHEbar/wavemetric/wmetric/engine"
)

// Tokenizer converts raw text to token-id sequences for the distance engine.
type Tokenizer interface {
	Tokenize(texts []string) ([][]int64, error)
}

// Words is a whitespace word-level tokenizer with an interned vocabulary:
// equal words always map to equal ids, which is all the edit-distance cost
// function needs. Distances over Words tokens normalized by reference
// length are word error rates.
type Words struct {
	mu        sync.Mutex
	vocab     map[string]int64
	lowercase bool
}

// NewWords creates a word tokenizer. With lowercase set, casing differences
// do not count as edits.
func NewWords(lowercase bool) *Words {
	return &Words{
		vocab:     make(map[string]int64),
		lowercase: lowercase,
	}
}

func (w *Words) Tokenize(texts []string) ([][]int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([][]int64, len(texts))
	for i, text := range texts {
		if w.lowercase {
			text = strings.ToLower(text)
		}
		words := strings.Fields(text)
		ids := make([]int64, len(words))
		for j, word := range words {
			id, ok := w.vocab[word]
			if !ok {
				id = int64(len(w.vocab))
				w.vocab[word] = id
			}
			ids[j] = id
		}
		out[i] = ids
	}
	return out, nil
}

// Runes tokenizes each text into its code points, one token per rune.
// Distances over Runes tokens normalized by reference length are character
// error rates.
type Runes struct{}

func (Runes) Tokenize(texts []string) ([][]int64, error) {
	out := make([][]int64, len(texts))
	for i, text := range texts {
		ids := make([]int64, 0, len(text))
		for _, r := range text {
			ids = append(ids, int64(r))
		}
		out[i] = ids
	}
	return out, nil
}

// Pack flattens ragged token-id sequences into the flat-array-plus-offsets
// shape the engine consumes. The returned descriptor has len(seqs)+1
// monotonically non-decreasing boundaries.
func Pack(seqs [][]int64) ([]int64, batch.Offsets) {
	total := 0
	for _, seq := range seqs {
		total += len(seq)
	}
	flat := make([]int64, 0, total)
	offs := make(batch.Offsets, 0, len(seqs)+1)
	offs = append(offs, 0)
	for _, seq := range seqs {
		flat = append(flat, seq...)
		offs = append(offs, int64(len(flat)))
	}
	return flat, offs
}

// Distances tokenizes the hypothesis and reference texts, packs them, and
// runs the engine over the batch. With a normalizing engine and the Words
// tokenizer this is a word error rate per pair.
func Distances(ctx context.Context, e *engine.Engine, tok Tokenizer, hyps, refs []string) (*mat.VecDense, error) {
	hypSeqs, err := tok.Tokenize(hyps)
	if err != nil {
		return nil, err
	}
	refSeqs, err := tok.Tokenize(refs)
	if err != nil {
		return nil, err
	}
	hypFlat, hypOffs := Pack(hypSeqs)
	refFlat, refOffs := Pack(refSeqs)
	return e.Distances(ctx, hypFlat, hypOffs, refFlat, refOffs)
}
