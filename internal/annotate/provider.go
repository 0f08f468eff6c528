// Package annotate obtains annotated documents: tokens with POS tags,
// dependency labels, head links, lemmas, and per-token embeddings, plus
// entity and noun-phrase spans. Annotation itself is an external service
// (a spaCy transformer pipeline behind HTTP); this package is the client
// side plus a loader for documents annotated ahead of time.
package annotate

import (
	"context"
	"fmt"
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/cache"
	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Provider turns raw text into an annotated document.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Annotate sends text for annotation and returns the normalized
	// document.
	Annotate(ctx context.Context, text string) (*model.Document, error)

	// Ping checks that the provider is reachable and configured.
	Ping(ctx context.Context) error
}

// NewProvider creates the configured annotation provider. An empty
// provider name means offline mode (pre-annotated input only) and returns
// nil. The cache may be nil to disable response caching.
func NewProvider(cfg model.AnnotateConfig, store cache.Cache) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "http":
		return NewHTTPProvider(cfg, store)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown annotation provider: %s (supported: http)", cfg.Provider)
	}
}
