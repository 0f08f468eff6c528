// Package clause segments annotated documents into clause-level spans by
// walking the dependency tree: verbal anchors (ROOT, ccomp, xcomp, advcl,
// relcl, parataxis) each claim their subtree, deepest clauses first, so
// nested clauses keep their own tokens.
package clause

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

// ErrMalformedTree reports head pointers that do not form a forest:
// an out-of-range head index or a head cycle.
var ErrMalformedTree = errors.New("malformed dependency tree")

// Dependency labels that anchor a new clause.
var clauseDeps = map[string]bool{
	model.DepRoot:      true,
	model.DepCcomp:     true,
	model.DepXcomp:     true,
	model.DepAdvcl:     true,
	model.DepRelcl:     true,
	model.DepParataxis: true,
}

// Labels that introduce a clause but are not the anchor themselves.
var markerDeps = map[string]bool{
	model.DepMark: true,
	model.DepCc:   true,
}

// isAnchor reports whether the token starts a clause of its own.
func isAnchor(t model.Token) bool {
	return clauseDeps[t.Dep] && (t.POS == model.POSVerb || t.POS == model.POSAux)
}

// Segmenter partitions token sequences into non-overlapping clauses.
type Segmenter struct{}

// NewSegmenter creates a new clause segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment returns the document's clauses ordered by start position. Every
// anchor-rooted subtree is covered exactly once; token sets are pairwise
// disjoint. Returns an error wrapping ErrMalformedTree when the head
// pointers are not a forest.
func (s *Segmenter) Segment(doc *model.Document) ([]model.Clause, error) {
	if err := validateHeads(doc); err != nil {
		return nil, err
	}

	children := doc.Children()
	anchors := findAnchors(doc)

	depths := make(map[int]int, len(anchors))
	for _, a := range anchors {
		depths[a] = anchorDepth(doc, a)
	}

	// Deepest anchors claim their tokens first; ties keep document order.
	sort.SliceStable(anchors, func(i, j int) bool {
		return depths[anchors[i]] > depths[anchors[j]]
	})

	claimed := make(map[int]bool, len(doc.Tokens))
	clauses := make([]model.Clause, 0, len(anchors))

	for _, a := range anchors {
		tokens := collect(doc, children, a, claimed)
		if len(tokens) == 0 {
			continue
		}

		anchor := doc.Tokens[a]
		c := model.Clause{
			Tokens:   tokens,
			Root:     a,
			RootText: anchor.Text,
			RootDep:  anchor.Dep,
			Depth:    depths[a],
			Marker:   marker(doc, children, a),
			Text:     renderText(doc, tokens),
		}
		if anchor.Dep != model.DepRoot {
			c.Head = doc.Tokens[anchor.Head].Text
		}
		clauses = append(clauses, c)
	}

	// Processing order is depth-driven; consumers get positional order.
	sort.Slice(clauses, func(i, j int) bool {
		return clauses[i].Start() < clauses[j].Start()
	})
	return clauses, nil
}

// findAnchors returns the clause anchor token indices in document order.
func findAnchors(doc *model.Document) []int {
	var anchors []int
	for i, t := range doc.Tokens {
		if isAnchor(t) {
			anchors = append(anchors, i)
		}
	}
	return anchors
}

// anchorDepth counts the clause boundaries between a token and its
// sentence root: every token on the head chain whose label is in the
// anchor set, the starting token included, the self-headed root excluded.
// Head chains are already validated, so the walk terminates.
func anchorDepth(doc *model.Document, i int) int {
	depth := 0
	cur := i
	for doc.Tokens[cur].Head != cur {
		if clauseDeps[doc.Tokens[cur].Dep] {
			depth++
		}
		cur = doc.Tokens[cur].Head
	}
	return depth
}

// collect walks the anchor's subtree with an explicit stack, claiming
// unclaimed tokens into the shared claimed set. Tokens that anchor a
// different clause are neither claimed nor descended through; tokens
// claimed by a previously processed (deeper) anchor are skipped.
func collect(doc *model.Document, children [][]int, anchor int, claimed map[int]bool) []int {
	stack := []int{anchor}
	var tokens []int

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if claimed[i] {
			continue
		}
		if i != anchor && isAnchor(doc.Tokens[i]) {
			continue // reserved for its own clause
		}

		claimed[i] = true
		tokens = append(tokens, i)

		kids := children[i]
		for k := len(kids) - 1; k >= 0; k-- {
			stack = append(stack, kids[k])
		}
	}

	sort.Ints(tokens)
	return tokens
}

// marker returns the subordinating conjunction or coordinator introducing
// the clause ("that", "though", "which"), or "" when there is none.
func marker(doc *model.Document, children [][]int, anchor int) string {
	for _, c := range children[anchor] {
		if markerDeps[doc.Tokens[c].Dep] {
			return doc.Tokens[c].Text
		}
	}
	return ""
}

// renderText joins the clause's non-punctuation tokens with single spaces.
func renderText(doc *model.Document, tokens []int) string {
	parts := make([]string, 0, len(tokens))
	for _, i := range tokens {
		if doc.Tokens[i].POS == model.POSPunct {
			continue
		}
		parts = append(parts, doc.Tokens[i].Text)
	}
	return strings.Join(parts, " ")
}

// validateHeads checks that every head index is in range and every head
// chain reaches a self-headed root, in O(tokens) via path memoization.
// The depth and subtree walks rely on this holding.
func validateHeads(doc *model.Document) error {
	const (
		unvisited = iota
		inProgress
		done
	)

	n := len(doc.Tokens)
	state := make([]uint8, n)
	path := make([]int, 0, 16)

	for i := 0; i < n; i++ {
		path = path[:0]
		j := i
		for state[j] == unvisited {
			h := doc.Tokens[j].Head
			if h < 0 || h >= n {
				return fmt.Errorf("token %d %q: head %d out of range: %w", j, doc.Tokens[j].Text, h, ErrMalformedTree)
			}
			state[j] = inProgress
			path = append(path, j)
			if h == j {
				break // sentence root
			}
			j = h
		}
		if state[j] == inProgress && doc.Tokens[j].Head != j {
			return fmt.Errorf("token %d %q: head cycle: %w", j, doc.Tokens[j].Text, ErrMalformedTree)
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}
