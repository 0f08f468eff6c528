package feature

import (
	"github.com/hearsay-nlp/hearsay/internal/embedding"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

// One-hot slot order for the source-type block.
var sourceOrder = []model.SourceType{
	model.SourceNamedEntity,
	model.SourceNominal,
	model.SourcePronominal,
	model.SourceJournalist,
	model.SourcePassive,
}

// Assembler concatenates per-clause features into one flat vector:
//
//	[pooled span embedding | 8 lexical counts | 5 one-hot source type |
//	 is_attribution_verb | is_epistemic_verb | inherited]
//
// for a total length of embedding dimension + 16.
type Assembler struct {
	calc *embedding.SpanCalculator
}

// NewAssembler creates an assembler pooling with the given calculator.
func NewAssembler(calc *embedding.SpanCalculator) *Assembler {
	return &Assembler{calc: calc}
}

// VectorSize returns the length of assembled vectors.
func (a *Assembler) VectorSize() int {
	return a.calc.Dim() + 16
}

// Assemble builds the clause's feature vector. The embedding is pooled
// over the clause's own claimed tokens, not its contiguous span, so nested
// clause content is never counted twice.
func (a *Assembler) Assemble(c model.Clause, doc *model.Document, flags []TokenFlags) []float64 {
	vec := make([]float64, 0, a.VectorSize())

	toks := make([]model.Token, 0, len(c.Tokens))
	for _, i := range c.Tokens {
		if i >= 0 && i < len(doc.Tokens) {
			toks = append(toks, doc.Tokens[i])
		}
	}
	vec = append(vec, a.calc.Pool(toks)...)

	counts := CountFlags(flags, c.Tokens)
	vec = append(vec,
		float64(counts.Hedges),
		float64(counts.AttributionPhrases),
		float64(counts.AttributionVerbs),
		float64(counts.CertaintyHigh),
		float64(counts.CertaintyLow),
		float64(counts.EpistemicVerbs),
		float64(counts.ModalVerbs),
		float64(counts.SubjectiveVerbs),
	)

	for _, s := range sourceOrder {
		vec = append(vec, bit(c.SourceType == s))
	}
	vec = append(vec, bit(c.IsAttributionVerb), bit(c.IsEpistemicVerb), bit(c.Inherited))
	return vec
}

// AssembleAll builds the feature vector for every clause, paired with the
// clause's position in the list.
func (a *Assembler) AssembleAll(clauses []model.Clause, doc *model.Document, flags []TokenFlags) []model.ClauseVector {
	out := make([]model.ClauseVector, len(clauses))
	for i, c := range clauses {
		out[i] = model.ClauseVector{Clause: i, Vector: a.Assemble(c, doc, flags)}
	}
	return out
}

func bit(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
