package attribution

import (
	"testing"

	"github.com/hearsay-nlp/hearsay/internal/lexicon"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

func tok(text, lemma, pos, dep string, head int) model.Token {
	return model.Token{Text: text, Lemma: lemma, POS: pos, Dep: dep, Head: head}
}

func doc(tokens ...model.Token) *model.Document {
	for i := range tokens {
		tokens[i].Index = i
	}
	return &model.Document{Tokens: tokens}
}

func testExtractor() *Extractor {
	return New(
		lexicon.Set{"say": true, "report": true, "warn": true},
		lexicon.Set{"expect": true, "believe": true},
	)
}

func TestExtract_NamedEntityBeatsNounPhrase(t *testing.T) {
	d := doc(
		tok("Reuters", "Reuters", "PROPN", "nsubj", 1),
		tok("reported", "report", "VERB", "ROOT", 1),
		tok("that", "that", "SCONJ", "mark", 5),
		tok("the", "the", "DET", "det", 4),
		tok("deal", "deal", "NOUN", "nsubj", 5),
		tok("closed", "close", "VERB", "ccomp", 1),
		tok(".", ".", "PUNCT", "punct", 1),
	)
	d.Entities = []model.EntitySpan{{Start: 0, End: 1, Label: "ORG", Text: "Reuters"}}
	// The subject also sits in a noun phrase; the entity span must win.
	d.NounPhrases = []model.Span{{Start: 0, End: 1, Text: "Reuters"}, {Start: 3, End: 5, Text: "the deal"}}

	c := testExtractor().Extract(model.Clause{Root: 1, RootDep: model.DepRoot, Depth: 0}, d)

	if c.SourceType != model.SourceNamedEntity {
		t.Fatalf("source type = %q, want NAMED_ENTITY", c.SourceType)
	}
	if c.SourceText != "Reuters" {
		t.Errorf("source text = %q, want 'Reuters'", c.SourceText)
	}
	if c.SourceLabel != "ORG" {
		t.Errorf("source label = %q, want 'ORG'", c.SourceLabel)
	}
	if !c.IsAttributionVerb {
		t.Error("anchor lemma 'report' should flag as attribution verb")
	}
	if c.IsEpistemicVerb {
		t.Error("anchor lemma 'report' is not an epistemic verb")
	}
}

func TestExtract_PersonEntitySubject(t *testing.T) {
	d := doc(
		tok("Yellen", "Yellen", "PROPN", "nsubj", 1),
		tok("warned", "warn", "VERB", "ROOT", 1),
		tok("of", "of", "ADP", "prep", 1),
		tok("risks", "risk", "NOUN", "pobj", 2),
	)
	d.Entities = []model.EntitySpan{{Start: 0, End: 1, Label: "PERSON", Text: "Yellen"}}

	c := testExtractor().Extract(model.Clause{Root: 1, RootDep: model.DepRoot, Depth: 0}, d)

	if c.SourceType != model.SourceNamedEntity {
		t.Fatalf("source type = %q, want NAMED_ENTITY", c.SourceType)
	}
	if c.SourceText != "Yellen" || c.SourceLabel != "PERSON" {
		t.Errorf("source = %q/%q, want Yellen/PERSON", c.SourceText, c.SourceLabel)
	}
}

func TestExtract_NominalSubject(t *testing.T) {
	d := doc(
		tok("Senior", "senior", "ADJ", "amod", 1),
		tok("economists", "economist", "NOUN", "nsubj", 2),
		tok("warned", "warn", "VERB", "ROOT", 2),
		tok(".", ".", "PUNCT", "punct", 2),
	)
	d.NounPhrases = []model.Span{{Start: 0, End: 2, Text: "Senior economists"}}

	c := testExtractor().Extract(model.Clause{Root: 2, RootDep: model.DepRoot, Depth: 0}, d)

	if c.SourceType != model.SourceNominal {
		t.Fatalf("source type = %q, want NOMINAL", c.SourceType)
	}
	if c.SourceText != "Senior economists" {
		t.Errorf("source text = %q, want the full noun phrase", c.SourceText)
	}
}

func TestExtract_PronominalSubject(t *testing.T) {
	d := doc(
		tok("They", "they", "PRON", "nsubj", 1),
		tok("argued", "argue", "VERB", "ROOT", 1),
		tok(".", ".", "PUNCT", "punct", 1),
	)

	c := testExtractor().Extract(model.Clause{Root: 1, RootDep: model.DepRoot, Depth: 0}, d)

	if c.SourceType != model.SourcePronominal {
		t.Fatalf("source type = %q, want PRONOMINAL", c.SourceType)
	}
	if c.SourceText != "They" {
		t.Errorf("source text = %q, want 'They'", c.SourceText)
	}
}

// "It" or "we" as a top-level subject is the reporter speaking, not a
// source.
func TestExtract_JournalistPronounAtTopLevel(t *testing.T) {
	cases := []struct {
		pronoun, lemma, verb, verbLemma string
	}{
		{"It", "it", "appears", "appear"},
		{"We", "we", "believe", "believe"},
	}
	for _, tc := range cases {
		d := doc(
			tok(tc.pronoun, tc.lemma, "PRON", "nsubj", 1),
			tok(tc.verb, tc.verbLemma, "VERB", "ROOT", 1),
		)

		c := testExtractor().Extract(model.Clause{Root: 1, RootDep: model.DepRoot, Depth: 0}, d)

		if c.SourceType != model.SourceJournalist {
			t.Errorf("%s: source type = %q, want JOURNALIST", tc.pronoun, c.SourceType)
		}
		if c.SourceText != "" {
			t.Errorf("%s: journalist clause should carry no source text, got %q", tc.pronoun, c.SourceText)
		}
	}
}

// The same pronoun inside a nested clause is an ordinary pronominal
// subject.
func TestExtract_JournalistPronounOnlyAtDepthZero(t *testing.T) {
	d := doc(
		tok("it", "it", "PRON", "nsubj", 1),
		tok("failed", "fail", "VERB", "ccomp", 1),
	)

	c := testExtractor().Extract(model.Clause{Root: 1, RootDep: model.DepCcomp, Depth: 1, Head: "said"}, d)

	if c.SourceType != model.SourcePronominal {
		t.Fatalf("source type = %q, want PRONOMINAL at depth 1", c.SourceType)
	}
	if c.SourceText != "it" {
		t.Errorf("source text = %q, want 'it'", c.SourceText)
	}
}

func TestExtract_SubjectlessPassive(t *testing.T) {
	d := doc(
		tok("was", "be", "AUX", "auxpass", 1),
		tok("reported", "report", "VERB", "ROOT", 1),
		tok("earlier", "early", "ADV", "advmod", 1),
	)

	c := testExtractor().Extract(model.Clause{Root: 1, RootDep: model.DepRoot, Depth: 0}, d)

	if c.SourceType != model.SourcePassive {
		t.Fatalf("source type = %q, want PASSIVE", c.SourceType)
	}
	if c.SourceText != "" {
		t.Errorf("passive clause should carry no source text, got %q", c.SourceText)
	}
}

func TestExtract_SubjectlessActiveIsJournalist(t *testing.T) {
	d := doc(
		tok("Consider", "consider", "VERB", "ROOT", 0),
		tok("the", "the", "DET", "det", 2),
		tok("following", "following", "NOUN", "dobj", 0),
	)

	c := testExtractor().Extract(model.Clause{Root: 0, RootDep: model.DepRoot, Depth: 0}, d)

	if c.SourceType != model.SourceJournalist {
		t.Fatalf("source type = %q, want JOURNALIST", c.SourceType)
	}
}

// "Officials declined to comment." The xcomp clause has no subject of its
// own and inherits the parent's source verbatim.
func TestExtractAll_InheritsParentSource(t *testing.T) {
	d := doc(
		tok("Officials", "official", "NOUN", "nsubj", 1),
		tok("declined", "decline", "VERB", "ROOT", 1),
		tok("to", "to", "PART", "aux", 3),
		tok("comment", "comment", "VERB", "xcomp", 1),
		tok(".", ".", "PUNCT", "punct", 1),
	)
	d.NounPhrases = []model.Span{{Start: 0, End: 1, Text: "Officials"}}

	clauses := []model.Clause{
		{Root: 1, RootDep: model.DepRoot, Depth: 0},
		{Root: 3, RootDep: model.DepXcomp, Depth: 1, Head: "declined"},
	}
	clauses = testExtractor().ExtractAll(clauses, d)

	parent, child := clauses[0], clauses[1]
	if parent.SourceText != "Officials" || parent.Inherited {
		t.Fatalf("parent = %q inherited=%v, want own source 'Officials'", parent.SourceText, parent.Inherited)
	}
	if child.SourceText != "Officials" {
		t.Errorf("child source = %q, want inherited 'Officials'", child.SourceText)
	}
	if child.SourceType != model.SourceNominal {
		t.Errorf("child source type = %q, want parent's NOMINAL", child.SourceType)
	}
	if !child.Inherited {
		t.Error("child should be marked inherited")
	}
}

// Inheritance copies the entity label along with the text.
func TestExtractAll_InheritsEntityLabel(t *testing.T) {
	d := doc(
		tok("Reuters", "Reuters", "PROPN", "nsubj", 1),
		tok("declined", "decline", "VERB", "ROOT", 1),
		tok("to", "to", "PART", "aux", 3),
		tok("comment", "comment", "VERB", "xcomp", 1),
	)
	d.Entities = []model.EntitySpan{{Start: 0, End: 1, Label: "ORG", Text: "Reuters"}}

	clauses := []model.Clause{
		{Root: 1, RootDep: model.DepRoot, Depth: 0},
		{Root: 3, RootDep: model.DepXcomp, Depth: 1, Head: "declined"},
	}
	clauses = testExtractor().ExtractAll(clauses, d)

	child := clauses[1]
	if child.SourceType != model.SourceNamedEntity || child.SourceLabel != "ORG" {
		t.Errorf("child = %q/%q, want NAMED_ENTITY/ORG", child.SourceType, child.SourceLabel)
	}
}

// A nested clause that resolved its own source keeps it; inheritance
// never overwrites.
func TestExtractAll_OwnSourceNotOverwritten(t *testing.T) {
	d := doc(
		tok("Reuters", "Reuters", "PROPN", "nsubj", 1),
		tok("reported", "report", "VERB", "ROOT", 1),
		tok("that", "that", "SCONJ", "mark", 4),
		tok("analysts", "analyst", "NOUN", "nsubj", 4),
		tok("disagreed", "disagree", "VERB", "ccomp", 1),
	)
	d.Entities = []model.EntitySpan{{Start: 0, End: 1, Label: "ORG", Text: "Reuters"}}
	d.NounPhrases = []model.Span{{Start: 3, End: 4, Text: "analysts"}}

	clauses := []model.Clause{
		{Root: 1, RootDep: model.DepRoot, Depth: 0},
		{Root: 4, RootDep: model.DepCcomp, Depth: 1, Head: "reported"},
	}
	clauses = testExtractor().ExtractAll(clauses, d)

	child := clauses[1]
	if child.SourceText != "analysts" {
		t.Errorf("child source = %q, want its own 'analysts'", child.SourceText)
	}
	if child.Inherited {
		t.Error("child with its own source must not be marked inherited")
	}
}

// A passive nested clause whose anchor is itself an attribution verb
// states its own sourcing ("as was reported") and must not inherit.
func TestExtractAll_AttributionVerbBlocksInheritance(t *testing.T) {
	d := doc(
		tok("Experts", "expert", "NOUN", "nsubj", 1),
		tok("warned", "warn", "VERB", "ROOT", 1),
		tok("as", "as", "SCONJ", "mark", 4),
		tok("was", "be", "AUX", "auxpass", 4),
		tok("reported", "report", "VERB", "advcl", 1),
	)
	d.NounPhrases = []model.Span{{Start: 0, End: 1, Text: "Experts"}}

	clauses := []model.Clause{
		{Root: 1, RootDep: model.DepRoot, Depth: 0},
		{Root: 4, RootDep: model.DepAdvcl, Depth: 1, Head: "warned"},
	}
	clauses = testExtractor().ExtractAll(clauses, d)

	child := clauses[1]
	if child.SourceType != model.SourcePassive {
		t.Fatalf("child source type = %q, want PASSIVE", child.SourceType)
	}
	if child.SourceText != "" || child.Inherited {
		t.Errorf("attribution-verb clause inherited %q, want no inheritance", child.SourceText)
	}
}

// Propagation is single-hop: the grandchild takes its immediate parent's
// source, not the top-level one.
func TestExtractAll_SingleHopInheritance(t *testing.T) {
	d := doc(
		tok("Officials", "official", "NOUN", "nsubj", 1),
		tok("said", "say", "VERB", "ROOT", 1),
		tok("that", "that", "SCONJ", "mark", 4),
		tok("analysts", "analyst", "NOUN", "nsubj", 4),
		tok("expected", "expect", "VERB", "ccomp", 1),
		tok("to", "to", "PART", "aux", 6),
		tok("win", "win", "VERB", "xcomp", 4),
		tok(".", ".", "PUNCT", "punct", 1),
	)
	d.NounPhrases = []model.Span{
		{Start: 0, End: 1, Text: "Officials"},
		{Start: 3, End: 4, Text: "analysts"},
	}

	clauses := []model.Clause{
		{Root: 1, RootDep: model.DepRoot, Depth: 0},
		{Root: 4, RootDep: model.DepCcomp, Depth: 1, Head: "said"},
		{Root: 6, RootDep: model.DepXcomp, Depth: 2, Head: "expected"},
	}
	clauses = testExtractor().ExtractAll(clauses, d)

	grandchild := clauses[2]
	if grandchild.SourceText != "analysts" {
		t.Errorf("grandchild source = %q, want immediate parent's 'analysts'", grandchild.SourceText)
	}
	if !grandchild.Inherited {
		t.Error("grandchild should be marked inherited")
	}
	if clauses[1].Inherited {
		t.Error("middle clause has its own subject and must not inherit")
	}
}

// A journalist-voiced parent has nothing to pass down.
func TestExtractAll_NoInheritanceFromEmptyParent(t *testing.T) {
	d := doc(
		tok("It", "it", "PRON", "nsubj", 1),
		tok("seems", "seem", "VERB", "ROOT", 1),
		tok("to", "to", "PART", "aux", 3),
		tok("work", "work", "VERB", "xcomp", 1),
	)

	clauses := []model.Clause{
		{Root: 1, RootDep: model.DepRoot, Depth: 0},
		{Root: 3, RootDep: model.DepXcomp, Depth: 1, Head: "seems"},
	}
	clauses = testExtractor().ExtractAll(clauses, d)

	child := clauses[1]
	if child.SourceText != "" || child.Inherited {
		t.Errorf("child inherited %q from sourceless parent", child.SourceText)
	}
	if child.SourceType != model.SourceJournalist {
		t.Errorf("child source type = %q, want JOURNALIST", child.SourceType)
	}
}
