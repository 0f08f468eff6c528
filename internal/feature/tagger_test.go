package feature

import (
	"testing"

	"github.com/hearsay-nlp/hearsay/internal/lexicon"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

func testLexicons() *lexicon.Lexicons {
	return &lexicon.Lexicons{
		Hedges:             lexicon.Set{"reportedly": true},
		AttributionPhrases: lexicon.Set{"according": true},
		AttributionVerbs:   lexicon.Set{"warned": true},
		CertaintyHigh:      lexicon.Set{"certainly": true},
		CertaintyLow:       lexicon.Set{"unconfirmed": true},
		EpistemicVerbs:     lexicon.Set{"believe": true},
		ModalVerbs:         lexicon.Set{"could": true},
		SubjectiveVerbs:    lexicon.Set{"wanted": true},
	}
}

func wordDoc(words ...string) *model.Document {
	doc := &model.Document{Tokens: make([]model.Token, len(words))}
	for i, w := range words {
		doc.Tokens[i] = model.Token{Index: i, Text: w}
	}
	return doc
}

func TestTag_AllCategories(t *testing.T) {
	doc := wordDoc("reportedly", "according", "warned", "certainly",
		"unconfirmed", "believe", "could", "wanted", "the")
	flags := NewTagger(testLexicons()).Tag(doc)

	if len(flags) != len(doc.Tokens) {
		t.Fatalf("flags length = %d, want %d", len(flags), len(doc.Tokens))
	}

	checks := []struct {
		i    int
		name string
		got  bool
	}{
		{0, "Hedge", flags[0].Hedge},
		{1, "AttributionPhrase", flags[1].AttributionPhrase},
		{2, "AttributionVerb", flags[2].AttributionVerb},
		{3, "CertaintyHigh", flags[3].CertaintyHigh},
		{4, "CertaintyLow", flags[4].CertaintyLow},
		{5, "EpistemicVerb", flags[5].EpistemicVerb},
		{6, "ModalVerb", flags[6].ModalVerb},
		{7, "SubjectiveVerb", flags[7].SubjectiveVerb},
	}
	for _, c := range checks {
		if !c.got {
			t.Errorf("token %d: %s flag not set", c.i, c.name)
		}
	}

	if flags[8] != (TokenFlags{}) {
		t.Errorf("token 8 ('the') should carry no flags, got %+v", flags[8])
	}
}

func TestTag_CaseInsensitive(t *testing.T) {
	doc := wordDoc("Reportedly", "WARNED")
	flags := NewTagger(testLexicons()).Tag(doc)

	if !flags[0].Hedge {
		t.Error("'Reportedly' should match the hedge lexicon")
	}
	if !flags[1].AttributionVerb {
		t.Error("'WARNED' should match the attribution verb lexicon")
	}
}

func TestTag_NilLexicons(t *testing.T) {
	doc := wordDoc("reportedly", "warned")
	flags := NewTagger(nil).Tag(doc)

	for i, f := range flags {
		if f != (TokenFlags{}) {
			t.Errorf("token %d: nil lexicons should flag nothing, got %+v", i, f)
		}
	}
}

func TestCountFlags_SubsetAndBounds(t *testing.T) {
	flags := []TokenFlags{
		{Hedge: true},
		{AttributionVerb: true},
		{Hedge: true, ModalVerb: true},
	}

	counts := CountFlags(flags, []int{0, 2, -1, 99})

	if counts.Hedges != 2 {
		t.Errorf("Hedges = %d, want 2", counts.Hedges)
	}
	if counts.ModalVerbs != 1 {
		t.Errorf("ModalVerbs = %d, want 1", counts.ModalVerbs)
	}
	// Token 1 was not in the index set.
	if counts.AttributionVerbs != 0 {
		t.Errorf("AttributionVerbs = %d, want 0", counts.AttributionVerbs)
	}
}

func TestCountAll(t *testing.T) {
	flags := []TokenFlags{
		{Hedge: true, CertaintyLow: true},
		{},
		{Hedge: true},
		{SubjectiveVerb: true},
	}

	counts := CountAll(flags)

	want := model.LexicalCounts{Hedges: 2, CertaintyLow: 1, SubjectiveVerbs: 1}
	if counts != want {
		t.Errorf("CountAll = %+v, want %+v", counts, want)
	}
}
