package model

// SourceType classifies the attributed origin of a clause's claim.
type SourceType string

const (
	SourceNamedEntity SourceType = "NAMED_ENTITY" // NER-identified: ORG, PERSON, GPE etc.
	SourceNominal     SourceType = "NOMINAL"      // Generic noun phrase: "senior economists"
	SourcePronominal  SourceType = "PRONOMINAL"   // Pronoun subject: "they", "he"
	SourceJournalist  SourceType = "JOURNALIST"   // Authorial voice, no concrete source
	SourcePassive     SourceType = "PASSIVE"      // Passive construction, no overt subject
)

// Attribution records the information source identified for a clause.
// An empty SourceType means classification found nothing to assign.
type Attribution struct {
	SourceText        string     `json:"source_text,omitempty"`
	SourceType        SourceType `json:"source_type,omitempty"`
	SourceLabel       string     `json:"source_ner_label,omitempty"` // Entity label when SourceType is NAMED_ENTITY
	IsAttributionVerb bool       `json:"is_attribution_verb"`
	IsEpistemicVerb   bool       `json:"is_epistemic_verb"`
	Inherited         bool       `json:"inherited"`
}

// Clause is one clause-level unit of a document: the dependency subtree
// claimed by a verbal anchor, minus any tokens claimed by nested clauses.
type Clause struct {
	Tokens   []int  `json:"tokens"`           // Claimed token indices, sorted by position
	Root     int    `json:"root"`             // Anchor token index
	RootText string `json:"root_text"`        // Anchor surface form
	RootDep  string `json:"root_dep"`         // Anchor dependency label (ROOT, ccomp, ...)
	Head     string `json:"head,omitempty"`   // Head token text; empty for ROOT clauses
	Depth    int    `json:"depth"`            // Clause boundaries above the anchor
	Marker   string `json:"marker,omitempty"` // Subordinator introducing the clause ("that", "though")
	Text     string `json:"text"`             // Non-punctuation tokens joined by single spaces

	Attribution
}

// Start returns the document position of the first claimed token.
func (c Clause) Start() int {
	if len(c.Tokens) == 0 {
		return c.Root
	}
	return c.Tokens[0]
}

// End returns one past the position of the last claimed token.
func (c Clause) End() int {
	if len(c.Tokens) == 0 {
		return c.Root + 1
	}
	return c.Tokens[len(c.Tokens)-1] + 1
}

// HasSource reports whether classification or inheritance resolved a
// concrete source text for the clause.
func (c Clause) HasSource() bool {
	return c.SourceText != ""
}
