package model

import "strings"

// Token is one annotated token of a document, as produced by the external
// annotation service (POS tags and dependency labels follow the Universal
// Dependencies conventions of that service).
type Token struct {
	Index     int       `json:"i"`                   // Position in the document (0-based)
	Text      string    `json:"text"`                // Surface form
	Lemma     string    `json:"lemma,omitempty"`     // Base form
	POS       string    `json:"pos"`                 // Coarse POS tag (VERB, NOUN, ...)
	Dep       string    `json:"dep"`                 // Dependency label (ROOT, nsubj, ...)
	Head      int       `json:"head"`                // Index of the head token; self for sentence roots
	Embedding []float64 `json:"embedding,omitempty"` // Dense vector; nil when the service supplies none
}

// IsRoot reports whether the token is a sentence root (self-headed).
func (t Token) IsRoot() bool {
	return t.Head == t.Index
}

// POS tags the extractors branch on.
const (
	POSVerb  = "VERB"
	POSAux   = "AUX"
	POSNoun  = "NOUN"
	POSPropn = "PROPN"
	POSPron  = "PRON"
	POSAdj   = "ADJ"
	POSAdv   = "ADV"
	POSPunct = "PUNCT"
	POSSpace = "SPACE"
)

// Dependency labels the extractors branch on.
const (
	DepRoot      = "ROOT"
	DepCcomp     = "ccomp"
	DepXcomp     = "xcomp"
	DepAdvcl     = "advcl"
	DepRelcl     = "relcl"
	DepParataxis = "parataxis"
	DepMark      = "mark"
	DepCc        = "cc"
	DepNsubj     = "nsubj"
	DepNsubjpass = "nsubjpass"
	DepAuxpass   = "auxpass"
	DepExpl      = "expl"
)

// EntitySpan is a named-entity mention covering the token range [Start, End).
type EntitySpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`          // Entity type (ORG, PERSON, GPE, ...)
	Text  string `json:"text,omitempty"` // Filled from the token range when the service omits it
}

// Contains reports whether the span covers the token at index i.
func (s EntitySpan) Contains(i int) bool {
	return s.Start <= i && i < s.End
}

// Span is an unlabeled token range; used for noun phrases.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text,omitempty"`
}

// Contains reports whether the span covers the token at index i.
func (s Span) Contains(i int) bool {
	return s.Start <= i && i < s.End
}

// Document is an annotated text: an ordered token sequence whose head
// pointers form one dependency tree per sentence, plus document-level
// entity and noun-phrase spans.
type Document struct {
	Text        string       `json:"text"`
	Dim         int          `json:"dim,omitempty"` // Embedding dimension; 768 when unset
	Tokens      []Token      `json:"tokens"`
	Entities    []EntitySpan `json:"entities,omitempty"`
	NounPhrases []Span       `json:"noun_phrases,omitempty"`
}

// SpanText renders the token range [start, end) joined by single spaces.
// Bounds are clamped to the document.
func (d *Document) SpanText(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.Tokens) {
		end = len(d.Tokens)
	}
	if start >= end {
		return ""
	}
	parts := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		parts = append(parts, d.Tokens[i].Text)
	}
	return strings.Join(parts, " ")
}

// Children builds the dependency adjacency list: children[i] holds the
// indices of tokens headed by token i, in document order. A self-headed
// root is not listed as its own child. Out-of-range heads are skipped;
// the annotation loader rejects them before documents get this far.
func (d *Document) Children() [][]int {
	children := make([][]int, len(d.Tokens))
	for i, t := range d.Tokens {
		if t.Head == i || t.Head < 0 || t.Head >= len(d.Tokens) {
			continue
		}
		children[t.Head] = append(children[t.Head], i)
	}
	return children
}
