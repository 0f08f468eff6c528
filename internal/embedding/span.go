// Package embedding pools per-token vectors into fixed-length span vectors.
package embedding

import "github.com/hearsay-nlp/hearsay/internal/model"

// DefaultDim is the vector width assumed when the annotation service does
// not report one.
const DefaultDim = 768

// Content-word pooling weights. Verbs and nominals dominate; modifiers
// contribute less.
var posWeights = map[string]float64{
	model.POSVerb:  2.0,
	model.POSNoun:  2.0,
	model.POSPropn: 2.0,
	model.POSAdj:   1.5,
	model.POSAdv:   1.0,
}

// SpanCalculator pools token embeddings over arbitrary spans.
type SpanCalculator struct {
	dim int
}

// NewSpanCalculator creates a calculator producing vectors of the given
// width. Non-positive dim falls back to DefaultDim.
func NewSpanCalculator(dim int) *SpanCalculator {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &SpanCalculator{dim: dim}
}

// Dim returns the output vector width.
func (c *SpanCalculator) Dim() int {
	return c.dim
}

// Pool reduces a span to one vector: the weighted mean over content-word
// embeddings when any exist, otherwise the plain mean over all embedded
// non-punctuation tokens, otherwise a zero vector. Tokens without an
// embedding are skipped; vectors shorter than the configured dimension
// contribute only the dimensions they have.
func (c *SpanCalculator) Pool(tokens []model.Token) []float64 {
	sum := make([]float64, c.dim)

	var weight float64
	for _, t := range tokens {
		w, ok := posWeights[t.POS]
		if !ok || len(t.Embedding) == 0 {
			continue
		}
		add(sum, t.Embedding, w)
		weight += w
	}
	if weight > 0 {
		scale(sum, 1/weight)
		return sum
	}

	var n int
	for _, t := range tokens {
		if len(t.Embedding) == 0 || t.POS == model.POSPunct || t.POS == model.POSSpace {
			continue
		}
		add(sum, t.Embedding, 1)
		n++
	}
	if n > 0 {
		scale(sum, 1/float64(n))
	}
	return sum
}

func add(dst, v []float64, w float64) {
	n := len(v)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] += w * v[i]
	}
}

func scale(v []float64, s float64) {
	for i := range v {
		v[i] *= s
	}
}
