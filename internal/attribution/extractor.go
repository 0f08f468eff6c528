// Package attribution identifies who stands behind each clause's claim: a
// named entity, a plain noun phrase, a pronoun, the authorial voice, or a
// passive construction with no stated source. A second pass propagates
// resolved sources into clauses that could not resolve their own.
package attribution

import (
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/lexicon"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Entity labels accepted as concrete sources.
var sourceLabels = map[string]bool{
	"ORG":    true,
	"PERSON": true,
	"GPE":    true,
	"NORP":   true,
	"FAC":    true,
	"EVENT":  true,
}

// Subjects that mark reporter voice at the top level of a sentence
// ("it appears", "there are signs", "we understand").
var journalistPronouns = map[string]bool{
	"it":    true,
	"there": true,
	"we":    true,
	"our":   true,
}

// Extractor classifies clause sources against two verb lexicons.
type Extractor struct {
	attributionVerbs lexicon.Set
	epistemicVerbs   lexicon.Set
}

// New creates an extractor. Empty lexicons are valid and match nothing.
func New(attributionVerbs, epistemicVerbs lexicon.Set) *Extractor {
	return &Extractor{
		attributionVerbs: attributionVerbs,
		epistemicVerbs:   epistemicVerbs,
	}
}

// Extract classifies a single clause and returns it with the attribution
// record filled in. The subject is the anchor's first child labeled nsubj
// or nsubjpass; entity spans beat noun-phrase spans beat the bare subject
// token. A subjectless clause is PASSIVE when an auxpass child is present
// and JOURNALIST otherwise.
func (e *Extractor) Extract(c model.Clause, doc *model.Document) model.Clause {
	anchor := doc.Tokens[c.Root]
	c.IsAttributionVerb = e.attributionVerbs.Contains(anchor.Lemma)
	c.IsEpistemicVerb = e.epistemicVerbs.Contains(anchor.Lemma)

	subj := subjectOf(doc, c.Root)
	if subj < 0 {
		if hasChildDep(doc, c.Root, model.DepAuxpass) {
			c.SourceType = model.SourcePassive
		} else {
			c.SourceType = model.SourceJournalist
		}
		return c
	}

	s := doc.Tokens[subj]
	if c.Depth == 0 && journalistPronouns[strings.ToLower(s.Text)] &&
		(s.Dep == model.DepNsubj || s.Dep == model.DepExpl) {
		c.SourceType = model.SourceJournalist
		return c
	}

	for _, ent := range doc.Entities {
		if sourceLabels[ent.Label] && ent.Contains(subj) {
			c.SourceText = spanText(doc, ent.Text, ent.Start, ent.End)
			c.SourceType = model.SourceNamedEntity
			c.SourceLabel = ent.Label
			return c
		}
	}

	for _, np := range doc.NounPhrases {
		if np.Contains(subj) {
			c.SourceText = spanText(doc, np.Text, np.Start, np.End)
			if s.POS == model.POSPron {
				c.SourceType = model.SourcePronominal
			} else {
				c.SourceType = model.SourceNominal
			}
			return c
		}
	}

	if s.POS == model.POSPron {
		c.SourceText = s.Text
		c.SourceType = model.SourcePronominal
	}
	return c
}

// ExtractAll classifies every clause, then runs the inheritance pass over
// the full list. The returned slice is the input slice, mutated in place.
func (e *Extractor) ExtractAll(clauses []model.Clause, doc *model.Document) []model.Clause {
	for i := range clauses {
		clauses[i] = e.Extract(clauses[i], doc)
	}
	e.inherit(clauses, doc)
	return clauses
}

// inherit runs one flat pass over the classified clauses. A clause takes
// its parent clause's source when it is reporter-voiced or carries no
// attribution/epistemic verb of its own, and only while its own source
// text is still empty. Records are updated in place, so a clause resolved
// earlier in the list is already visible to later lookups; propagation is
// single-hop, with no extra ordering on top of list order.
func (e *Extractor) inherit(clauses []model.Clause, doc *model.Document) {
	byAnchor := make(map[int]int, len(clauses))
	for i, c := range clauses {
		byAnchor[c.Root] = i
	}

	for i := range clauses {
		c := &clauses[i]
		eligible := c.SourceType == model.SourceJournalist ||
			(!c.IsAttributionVerb && !c.IsEpistemicVerb && c.Head != "")
		if !eligible || c.HasSource() {
			continue
		}

		p, ok := byAnchor[doc.Tokens[c.Root].Head]
		if !ok {
			continue
		}
		parent := clauses[p]
		if parent.SourceText == "" {
			continue
		}

		c.SourceText = parent.SourceText
		c.SourceType = parent.SourceType
		c.SourceLabel = parent.SourceLabel
		c.Inherited = true
	}
}

// subjectOf returns the index of the anchor's first child labeled nsubj or
// nsubjpass, or -1 when the clause has no nominal subject.
func subjectOf(doc *model.Document, anchor int) int {
	for i, t := range doc.Tokens {
		if i == anchor || t.Head != anchor {
			continue
		}
		if t.Dep == model.DepNsubj || t.Dep == model.DepNsubjpass {
			return i
		}
	}
	return -1
}

func hasChildDep(doc *model.Document, anchor int, dep string) bool {
	for i, t := range doc.Tokens {
		if i != anchor && t.Head == anchor && t.Dep == dep {
			return true
		}
	}
	return false
}

// spanText prefers the span text the annotation service supplied and falls
// back to rendering the token range.
func spanText(doc *model.Document, text string, start, end int) string {
	if text != "" {
		return text
	}
	return doc.SpanText(start, end)
}
