// Package lexicon loads the static word lists that drive stance tagging.
// Lexicon files are plain text, one lowercase word or phrase per line.
// Sets are read-only after load and safe to share across documents.
package lexicon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Canonical lexicon file names.
const (
	FileHedges             = "hedge_words.txt"
	FileAttributionPhrases = "attribution_phrases.txt"
	FileAttributionVerbs   = "attribution_verbs.txt"
	FileCertaintyHigh      = "certainty_high.txt"
	FileCertaintyLow       = "certainty_low.txt"
	FileEpistemicVerbs     = "epistemic_verbs.txt"
	FileModalVerbs         = "modal_verbs.txt"
	FileSubjectiveVerbs    = "subjective_verbs.txt"
)

// Set is a membership set of lowercase word forms.
type Set map[string]bool

// Contains reports whether the lowercase form of w is in the set.
// Empty sets are valid and match nothing.
func (s Set) Contains(w string) bool {
	if len(s) == 0 {
		return false
	}
	return s[strings.ToLower(w)]
}

// Len returns the number of entries.
func (s Set) Len() int {
	return len(s)
}

// Load reads a lexicon file: one entry per line, trimmed and lowercased,
// blank lines skipped. A missing file yields an empty set, not an error.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	set := make(Set)
	for _, line := range strings.Split(string(data), "\n") {
		entry := strings.ToLower(strings.TrimSpace(line))
		if entry == "" {
			continue
		}
		set[entry] = true
	}
	return set, nil
}

// Lexicons bundles the eight stance word lists.
type Lexicons struct {
	Hedges             Set
	AttributionPhrases Set
	AttributionVerbs   Set
	CertaintyHigh      Set
	CertaintyLow       Set
	EpistemicVerbs     Set
	ModalVerbs         Set
	SubjectiveVerbs    Set
}

// Empty returns all-empty lexicons; every membership test is false.
func Empty() *Lexicons {
	return &Lexicons{
		Hedges:             Set{},
		AttributionPhrases: Set{},
		AttributionVerbs:   Set{},
		CertaintyHigh:      Set{},
		CertaintyLow:       Set{},
		EpistemicVerbs:     Set{},
		ModalVerbs:         Set{},
		SubjectiveVerbs:    Set{},
	}
}

// LoadDir loads the eight canonical lexicon files from dir. Missing files
// load as empty sets; an empty dir argument skips loading entirely.
func LoadDir(dir string) (*Lexicons, error) {
	if dir == "" {
		return Empty(), nil
	}

	lex := &Lexicons{}
	for _, slot := range []struct {
		file string
		dst  *Set
	}{
		{FileHedges, &lex.Hedges},
		{FileAttributionPhrases, &lex.AttributionPhrases},
		{FileAttributionVerbs, &lex.AttributionVerbs},
		{FileCertaintyHigh, &lex.CertaintyHigh},
		{FileCertaintyLow, &lex.CertaintyLow},
		{FileEpistemicVerbs, &lex.EpistemicVerbs},
		{FileModalVerbs, &lex.ModalVerbs},
		{FileSubjectiveVerbs, &lex.SubjectiveVerbs},
	} {
		set, err := Load(filepath.Join(dir, slot.file))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot.file, err)
		}
		*slot.dst = set
	}
	return lex, nil
}

// Categories returns the lexicons keyed by category name, in a stable
// order matching LexicalCounts.
func (l *Lexicons) Categories() []struct {
	Name string
	Set  Set
} {
	return []struct {
		Name string
		Set  Set
	}{
		{"hedges", l.Hedges},
		{"attribution_phrases", l.AttributionPhrases},
		{"attribution_verbs", l.AttributionVerbs},
		{"certainty_high", l.CertaintyHigh},
		{"certainty_low", l.CertaintyLow},
		{"epistemic_verbs", l.EpistemicVerbs},
		{"modal_verbs", l.ModalVerbs},
		{"subjective_verbs", l.SubjectiveVerbs},
	}
}
