// Package filesystem implements the document bridge over the local
// filesystem: finalized order views are rendered as JSON artifacts in
// the documents directory.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/safeprag/internal/ports/secondary"
)

// Generator implements secondary.DocumentGenerator by writing one JSON
// artifact per generated document.
type Generator struct {
	dir   string
	clock secondary.Clock
}

// NewGenerator creates a generator writing into dir. The directory is
// created on first use, not here.
func NewGenerator(dir string, clock secondary.Clock) *Generator {
	return &Generator{dir: dir, clock: clock}
}

// artifact is the on-disk document shape.
type artifact struct {
	Kind        string                        `json:"kind"` // "service_order" or "certificate"
	GeneratedAt string                        `json:"generatedAt"`
	View        *secondary.FinalizedOrderView `json:"view"`
}

// Generate renders the view to a timestamped JSON file and returns its
// path as the artifact reference.
func (g *Generator) Generate(ctx context.Context, view *secondary.FinalizedOrderView) (secondary.ArtifactRef, error) {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create documents directory: %w", err)
	}

	kind := "service_order"
	if view.Certificate != nil {
		kind = "certificate"
	}

	now := g.clock.Now()
	doc := artifact{
		Kind:        kind,
		GeneratedAt: now.Format(time.RFC3339),
		View:        view,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.json", kind, view.OrderNumber, now.Format("20060102-150405"))
	path := filepath.Join(g.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return secondary.ArtifactRef(path), nil
}
