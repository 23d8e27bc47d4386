package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/model"
)

// ProgressWriter reports batch progress as "completed / total competitors
// loaded" lines.
type ProgressWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewProgressWriter returns a ProgressWriter over w.
func NewProgressWriter(w io.Writer) *ProgressWriter {
	return &ProgressWriter{w: w}
}

func (p *ProgressWriter) Loaded(completed, total int, _ model.CompetitorRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "%d / %d competitors loaded\n", completed, total)
}
