package tokenize

import (
	"fmt"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
)

// WordPiece wraps a sugarme/tokenizer BERT-style WordPiece model as a
// token-id source for the distance engine. Unlike an embedding pipeline, no
// special tokens are inserted and nothing is padded or truncated; extra
// tokens would show up as spurious edits.
type WordPiece struct {
	t *tk.Tokenizer
}

// NewWordPiece loads vocab.txt and builds a subword tokenizer with BERT
// normalization and pre-tokenization.
func NewWordPiece(vocabPath string) (*WordPiece, error) {
	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, "[UNK]")
	if err != nil {
		return nil, fmt.Errorf("failed to load wordpiece vocab %s: %w", vocabPath, err)
	}

	t := tk.NewTokenizer(wp)
	t.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	t.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())

	return &WordPiece{t: t}, nil
}

func (w *WordPiece) Tokenize(texts []string) ([][]int64, error) {
	out := make([][]int64, len(texts))
	for i, text := range texts {
		enc, err := w.t.Encode(tk.NewSingleEncodeInput(tk.NewInputSequence(text)), false)
		if err != nil {
			return nil, fmt.Errorf("failed to encode text %d: %w", i, err)
		}
		ids := enc.GetIds()
		row := make([]int64, len(ids))
		for j, id := range ids {
			row[j] = int64(id)
		}
		out[i] = row
	}
	return out, nil
}
