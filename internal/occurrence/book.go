package occurrence

import (
	"fmt"
	"sync"

	"github.com/dosewatch/dosewatch/internal/models"
)

// Book holds the current session's occurrence list and its status
// mutations. Statuses are deliberately session-only: every Replace
// discards the previous list wholesale, so taken/skipped marks do not
// survive a data reload. Nothing is written back to the backend.
type Book struct {
	mu   sync.Mutex
	occs []models.Occurrence
	byID map[string]int
}

func NewBook() *Book {
	return &Book{byID: make(map[string]int)}
}

// Replace swaps in a freshly aggregated occurrence list. Prior statuses
// are discarded, never merged.
func (b *Book) Replace(occs []models.Occurrence) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.occs = make([]models.Occurrence, len(occs))
	copy(b.occs, occs)

	b.byID = make(map[string]int, len(occs))
	for i, o := range b.occs {
		b.byID[o.ID] = i
	}
}

// All returns a copy of the current occurrence list in time order.
func (b *Book) All() []models.Occurrence {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Occurrence, len(b.occs))
	copy(out, b.occs)
	return out
}

// Get returns the occurrence with the given id.
func (b *Book) Get(id string) (models.Occurrence, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.byID[id]
	if !ok {
		return models.Occurrence{}, fmt.Errorf("occurrence not found: %s", id)
	}
	return b.occs[i], nil
}

// MarkTaken records that the dose was taken this session.
func (b *Book) MarkTaken(id string) error {
	return b.setStatus(id, models.StatusTaken)
}

// MarkSkipped records that the dose was skipped this session.
func (b *Book) MarkSkipped(id string) error {
	return b.setStatus(id, models.StatusSkipped)
}

func (b *Book) setStatus(id string, status models.OccurrenceStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("occurrence not found: %s", id)
	}
	b.occs[i].Status = status
	return nil
}
