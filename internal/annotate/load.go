package annotate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

// ErrInvalidDocument reports an annotated document that violates the
// schema: empty token sequence, out-of-range head index, or bad span
// bounds.
var ErrInvalidDocument = errors.New("invalid annotated document")

// Load reads a pre-annotated JSON document from disk. Used for offline
// runs, batch fixtures, and tests.
func Load(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses an annotated document and normalizes it.
func Decode(r io.Reader) (*model.Document, error) {
	var doc model.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := Normalize(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Normalize repairs and validates a decoded document in place:
//
//   - token indices are rewritten to match sequence position (the position
//     is authoritative; serialized indices may be stale or omitted);
//   - every head index must be in range, or the document is rejected
//     (head cycles are the segmenter's concern, bounds are ours);
//   - entity and noun-phrase spans must have sane bounds; missing span
//     texts are filled from the token range;
//   - the embedding dimension is inferred from the first embedded token
//     when unset, defaulting to 768.
func Normalize(doc *model.Document) error {
	if len(doc.Tokens) == 0 {
		return fmt.Errorf("no tokens: %w", ErrInvalidDocument)
	}

	n := len(doc.Tokens)
	for i := range doc.Tokens {
		doc.Tokens[i].Index = i
		if h := doc.Tokens[i].Head; h < 0 || h >= n {
			return fmt.Errorf("token %d %q: head %d out of range [0,%d): %w",
				i, doc.Tokens[i].Text, h, n, ErrInvalidDocument)
		}
	}

	for i, ent := range doc.Entities {
		if ent.Start < 0 || ent.End > n || ent.Start >= ent.End {
			return fmt.Errorf("entity %d %q: bad span [%d,%d): %w", i, ent.Label, ent.Start, ent.End, ErrInvalidDocument)
		}
		if ent.Text == "" {
			doc.Entities[i].Text = doc.SpanText(ent.Start, ent.End)
		}
	}
	for i, np := range doc.NounPhrases {
		if np.Start < 0 || np.End > n || np.Start >= np.End {
			return fmt.Errorf("noun phrase %d: bad span [%d,%d): %w", i, np.Start, np.End, ErrInvalidDocument)
		}
		if np.Text == "" {
			doc.NounPhrases[i].Text = doc.SpanText(np.Start, np.End)
		}
	}

	if doc.Dim <= 0 {
		doc.Dim = inferDim(doc.Tokens)
	}
	return nil
}

func inferDim(tokens []model.Token) int {
	for _, t := range tokens {
		if len(t.Embedding) > 0 {
			return len(t.Embedding)
		}
	}
	return 768
}
