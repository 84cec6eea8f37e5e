package repository

import (
	"sync"

	"github.com/jengzang/checkin-backend-go/internal/models"
)

// MemoryUserDirectory is an in-memory set of known subjects
type MemoryUserDirectory struct {
	mu  sync.RWMutex
	ids map[models.SubjectID]struct{}
}

// NewMemoryUserDirectory creates a directory containing ids
func NewMemoryUserDirectory(ids ...models.SubjectID) *MemoryUserDirectory {
	d := &MemoryUserDirectory{ids: make(map[models.SubjectID]struct{}, len(ids))}
	d.Add(ids...)
	return d
}

// Add registers subjects
func (d *MemoryUserDirectory) Add(ids ...models.SubjectID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		d.ids[id] = struct{}{}
	}
}

// Exists reports whether id is a known subject
func (d *MemoryUserDirectory) Exists(id models.SubjectID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.ids[id]
	return ok
}

// CompanyDirectory is a fixed list of company locations
type CompanyDirectory struct {
	locations []models.CompanyLocation
}

// NewCompanyDirectory creates a directory over locations
func NewCompanyDirectory(locations []models.CompanyLocation) *CompanyDirectory {
	return &CompanyDirectory{locations: append([]models.CompanyLocation(nil), locations...)}
}

// List returns all company locations
func (d *CompanyDirectory) List() []models.CompanyLocation {
	return append([]models.CompanyLocation{}, d.locations...)
}
