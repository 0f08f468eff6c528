package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/feature"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Profiler aggregates extracted clause features into document statistics,
// diagnostic signals, and a 0-100 sourcing index. Everything is plain
// arithmetic over already-extracted features; every score carries the
// inputs and formula that produced it.
type Profiler struct{}

// NewProfiler creates a new profiler.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// concrete reports whether the clause names an actual information source,
// its own or inherited.
func concrete(c model.Clause) bool {
	if c.SourceText == "" {
		return false
	}
	switch c.SourceType {
	case model.SourceNamedEntity, model.SourceNominal, model.SourcePronominal:
		return true
	}
	return false
}

// sourceKey normalizes a source text for dedup.
func sourceKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Profile computes aggregate statistics and the sourcing score for a
// segmented, attributed document.
func (p *Profiler) Profile(clauses []model.Clause, doc *model.Document, flags []feature.TokenFlags) (model.Stats, model.Score) {
	stats := p.stats(clauses, flags)

	var signals []model.Signal

	// 1. Attribution coverage (0-40 points)
	coverageScore, coverageSignal := p.attributionCoverage(clauses)
	signals = append(signals, coverageSignal)

	// 2. Source diversity (0-30 points)
	diversityScore, diversitySignal := p.sourceDiversity(clauses)
	signals = append(signals, diversitySignal)

	// 3. Certainty balance (0-20 points)
	certaintyScore, certaintySignal := p.certaintyBalance(stats.Lexical, len(doc.Tokens))
	signals = append(signals, certaintySignal)

	// 4. Voice (0-10 points)
	voiceScore, voiceSignal := p.voice(clauses)
	signals = append(signals, voiceSignal)

	// 5. Unattributed (journalist-voice) clause density
	signals = append(signals, p.unattributedDensity(clauses))

	// 6. Inherited-source share, when inheritance happened
	if inheritedSignal := p.inheritedShare(clauses); inheritedSignal.Type != "" {
		signals = append(signals, inheritedSignal)
	}

	// 7. Single-source dominance, when one source carries the document
	if dominanceSignal := p.singleSourcing(clauses); dominanceSignal.Type != "" {
		signals = append(signals, dominanceSignal)
	}

	index := coverageScore + diversityScore + certaintyScore + voiceScore

	return stats, model.Score{
		Index:      index,
		Confidence: p.confidence(index, len(clauses)),
		Signals:    signals,
	}
}

// stats aggregates plain counts over the clause list.
func (p *Profiler) stats(clauses []model.Clause, flags []feature.TokenFlags) model.Stats {
	stats := model.Stats{
		Clauses: len(clauses),
		Lexical: feature.CountAll(flags),
	}

	bySource := make(map[model.SourceType]int)
	distinct := make(map[string]bool)
	for _, c := range clauses {
		if c.SourceType != "" {
			bySource[c.SourceType]++
		}
		if c.IsAttributionVerb {
			stats.Attribution++
		}
		if c.IsEpistemicVerb {
			stats.Epistemic++
		}
		if c.Inherited {
			stats.Inherited++
		}
		if concrete(c) {
			distinct[sourceKey(c.SourceText)] = true
		}
	}
	if len(bySource) > 0 {
		stats.BySource = bySource
	}
	stats.Sources = len(distinct)
	return stats
}

// attributionCoverage scores the share of clauses with a concrete source
// (0-40 points).
func (p *Profiler) attributionCoverage(clauses []model.Clause) (int, model.Signal) {
	total := len(clauses)
	if total == 0 {
		return 0, model.Signal{
			Type:        model.SignalAttributionCoverage,
			Severity:    model.SeverityCritical,
			Description: "No clauses segmented",
			Data:        map[string]any{"clauses": 0},
		}
	}

	attributed := 0
	for _, c := range clauses {
		if concrete(c) {
			attributed++
		}
	}

	ratio := float64(attributed) / float64(total)
	score := int(math.Min(ratio*40, 40))

	severity := model.SeverityInfo
	if ratio < 0.25 {
		severity = model.SeverityCritical
	} else if ratio < 0.5 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalAttributionCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("Attributed clauses: %d/%d (%.0f%%)", attributed, total, ratio*100),
		Data: map[string]any{
			"attributed": attributed,
			"clauses":    total,
			"ratio":      ratio,
			"score":      score,
			"formula":    "attributed_clauses / total_clauses * 40",
		},
	}
}

// sourceDiversity scores how many distinct sources the attributed clauses
// cite (0-30 points).
func (p *Profiler) sourceDiversity(clauses []model.Clause) (int, model.Signal) {
	attributed := 0
	distinct := make(map[string]bool)
	for _, c := range clauses {
		if concrete(c) {
			attributed++
			distinct[sourceKey(c.SourceText)] = true
		}
	}

	if attributed == 0 {
		return 0, model.Signal{
			Type:        model.SignalSourceDiversity,
			Severity:    model.SeverityWarning,
			Description: "No attributed clauses to assess diversity",
			Data:        map[string]any{"attributed": 0},
		}
	}

	ratio := float64(len(distinct)) / float64(attributed)
	score := int(math.Min(ratio*30, 30))

	severity := model.SeverityInfo
	if len(distinct) == 1 && attributed >= 3 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalSourceDiversity,
		Severity:    severity,
		Description: fmt.Sprintf("Distinct sources: %d across %d attributed clauses", len(distinct), attributed),
		Data: map[string]any{
			"distinct":   len(distinct),
			"attributed": attributed,
			"ratio":      ratio,
			"score":      score,
			"formula":    "distinct_sources / attributed_clauses * 30",
		},
	}
}

// certaintyBalance scores hedged versus high-certainty wording (0-20
// points). Cautious wording scores higher than confident assertion; a
// document with no certainty markers at all sits in the middle.
func (p *Profiler) certaintyBalance(lex model.LexicalCounts, tokenCount int) (int, model.Signal) {
	hedged := lex.Hedges + lex.CertaintyLow
	confident := lex.CertaintyHigh
	markers := hedged + confident

	if markers == 0 {
		return 10, model.Signal{
			Type:        model.SignalCertaintyBalance,
			Severity:    model.SeverityInfo,
			Description: "No certainty markers found (assuming neutral)",
			Data:        map[string]any{"markers": 0, "score": 10},
		}
	}

	share := float64(hedged) / float64(markers)
	score := int(share * 20)

	var hedgeDensity float64
	if tokenCount > 0 {
		hedgeDensity = float64(lex.Hedges) / float64(tokenCount)
	}

	severity := model.SeverityInfo
	if share < 0.25 && markers >= 4 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalCertaintyBalance,
		Severity:    severity,
		Description: fmt.Sprintf("Certainty markers: %d hedged vs %d confident", hedged, confident),
		Data: map[string]any{
			"hedged":           hedged,
			"confident":        confident,
			"hedged_share":     share,
			"hedges_per_token": hedgeDensity,
			"score":            score,
			"formula":          "(hedges + certainty_low) / (hedges + certainty_low + certainty_high) * 20",
		},
	}
}

// voice scores for active constructions; a high share of subjectless
// passive clauses loses points (0-10).
func (p *Profiler) voice(clauses []model.Clause) (int, model.Signal) {
	total := len(clauses)
	if total == 0 {
		return 0, model.Signal{
			Type:        model.SignalPassiveVoice,
			Severity:    model.SeverityInfo,
			Description: "No clauses to assess voice",
			Data:        map[string]any{"clauses": 0},
		}
	}

	passive := 0
	for _, c := range clauses {
		if c.SourceType == model.SourcePassive {
			passive++
		}
	}

	share := float64(passive) / float64(total)
	score := int((1 - share) * 10)

	severity := model.SeverityInfo
	if share > 0.5 {
		severity = model.SeverityCritical
	} else if share > 0.3 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalPassiveVoice,
		Severity:    severity,
		Description: fmt.Sprintf("Subjectless passive clauses: %d/%d (%.0f%%)", passive, total, share*100),
		Data: map[string]any{
			"passive": passive,
			"clauses": total,
			"share":   share,
			"score":   score,
			"formula": "(1 - passive_clauses / total_clauses) * 10",
		},
	}
}

// unattributedDensity flags how much of the document speaks in the
// journalist's own voice.
func (p *Profiler) unattributedDensity(clauses []model.Clause) model.Signal {
	total := len(clauses)
	if total == 0 {
		return model.Signal{
			Type:        model.SignalUnattributedDensity,
			Severity:    model.SeverityInfo,
			Description: "No clauses",
			Data:        map[string]any{"clauses": 0},
		}
	}

	journalist := 0
	for _, c := range clauses {
		if c.SourceType == model.SourceJournalist {
			journalist++
		}
	}

	share := float64(journalist) / float64(total)
	severity := model.SeverityInfo
	if share > 0.6 {
		severity = model.SeverityCritical
	} else if share > 0.35 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalUnattributedDensity,
		Severity:    severity,
		Description: fmt.Sprintf("Journalist-voice clauses: %d/%d (%.0f%%)", journalist, total, share*100),
		Data: map[string]any{
			"journalist": journalist,
			"clauses":    total,
			"share":      share,
		},
	}
}

// inheritedShare flags reliance on inherited sources. Emitted only when
// inheritance happened.
func (p *Profiler) inheritedShare(clauses []model.Clause) model.Signal {
	total := len(clauses)
	inherited := 0
	for _, c := range clauses {
		if c.Inherited {
			inherited++
		}
	}
	if inherited == 0 {
		return model.Signal{}
	}

	share := float64(inherited) / float64(total)
	severity := model.SeverityInfo
	if share >= 0.5 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalInheritedShare,
		Severity:    severity,
		Description: fmt.Sprintf("Clauses with inherited sources: %d/%d (%.0f%%)", inherited, total, share*100),
		Data: map[string]any{
			"inherited": inherited,
			"clauses":   total,
			"share":     share,
		},
	}
}

// singleSourcing flags documents where one source carries nearly all
// attributed clauses. Emitted only when dominance is detected.
func (p *Profiler) singleSourcing(clauses []model.Clause) model.Signal {
	counts := make(map[string]int)
	var attributed int
	for _, c := range clauses {
		if concrete(c) {
			attributed++
			counts[sourceKey(c.SourceText)]++
		}
	}
	if attributed < 3 {
		return model.Signal{}
	}

	dominant, dominantCount := "", 0
	for source, n := range counts {
		if n > dominantCount {
			dominant, dominantCount = source, n
		}
	}

	share := float64(dominantCount) / float64(attributed)
	if share < 0.75 {
		return model.Signal{}
	}

	return model.Signal{
		Type:        model.SignalSingleSourcing,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("Single source %q carries %d of %d attributed clauses", dominant, dominantCount, attributed),
		Data: map[string]any{
			"source":     dominant,
			"count":      dominantCount,
			"attributed": attributed,
			"share":      share,
		},
	}
}

// confidence grades how much to trust the index itself: short documents
// give the profiler little to work with.
func (p *Profiler) confidence(index, clauseCount int) string {
	if clauseCount < 3 {
		return "low"
	}
	switch {
	case index >= 80:
		return "high"
	case index >= 60:
		return "medium"
	default:
		return "low"
	}
}
