// Package feature turns annotated documents into numeric clause features:
// per-token stance flags from the eight lexicons, plus assembled vectors
// combining pooled embeddings, lexical counts, and attribution.
package feature

import (
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/lexicon"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

// TokenFlags marks one token's membership in the eight stance lexicons.
// Flags live in a slice parallel to the token sequence; tokens are never
// annotated in place, so a shared document can be tagged concurrently.
type TokenFlags struct {
	Hedge             bool
	AttributionPhrase bool
	AttributionVerb   bool
	CertaintyHigh     bool
	CertaintyLow      bool
	EpistemicVerb     bool
	ModalVerb         bool
	SubjectiveVerb    bool
}

// Tagger flags tokens against a loaded lexicon bundle.
type Tagger struct {
	lex *lexicon.Lexicons
}

// NewTagger creates a tagger over the given lexicons. A nil bundle behaves
// as all-empty lexicons.
func NewTagger(lex *lexicon.Lexicons) *Tagger {
	if lex == nil {
		lex = lexicon.Empty()
	}
	return &Tagger{lex: lex}
}

// Tag returns one TokenFlags per token, indexed by document position.
// Membership is tested on the lowercase surface form.
func (t *Tagger) Tag(doc *model.Document) []TokenFlags {
	flags := make([]TokenFlags, len(doc.Tokens))
	for i, tok := range doc.Tokens {
		w := strings.ToLower(tok.Text)
		flags[i] = TokenFlags{
			Hedge:             t.lex.Hedges.Contains(w),
			AttributionPhrase: t.lex.AttributionPhrases.Contains(w),
			AttributionVerb:   t.lex.AttributionVerbs.Contains(w),
			CertaintyHigh:     t.lex.CertaintyHigh.Contains(w),
			CertaintyLow:      t.lex.CertaintyLow.Contains(w),
			EpistemicVerb:     t.lex.EpistemicVerbs.Contains(w),
			ModalVerb:         t.lex.ModalVerbs.Contains(w),
			SubjectiveVerb:    t.lex.SubjectiveVerbs.Contains(w),
		}
	}
	return flags
}

// CountFlags totals the flags over the given token indices. Out-of-range
// indices are ignored.
func CountFlags(flags []TokenFlags, indices []int) model.LexicalCounts {
	var c model.LexicalCounts
	for _, i := range indices {
		if i < 0 || i >= len(flags) {
			continue
		}
		addFlags(&c, flags[i])
	}
	return c
}

// CountAll totals the flags over the whole document.
func CountAll(flags []TokenFlags) model.LexicalCounts {
	var c model.LexicalCounts
	for _, f := range flags {
		addFlags(&c, f)
	}
	return c
}

func addFlags(c *model.LexicalCounts, f TokenFlags) {
	if f.Hedge {
		c.Hedges++
	}
	if f.AttributionPhrase {
		c.AttributionPhrases++
	}
	if f.AttributionVerb {
		c.AttributionVerbs++
	}
	if f.CertaintyHigh {
		c.CertaintyHigh++
	}
	if f.CertaintyLow {
		c.CertaintyLow++
	}
	if f.EpistemicVerb {
		c.EpistemicVerbs++
	}
	if f.ModalVerb {
		c.ModalVerbs++
	}
	if f.SubjectiveVerb {
		c.SubjectiveVerbs++
	}
}
