package repository

import (
	"sync"

	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/models"
)

// UserDirectory answers whether a subject is a known user
type UserDirectory interface {
	Exists(id models.SubjectID) bool
}

// StatusRegister keeps the current work status of each subject and the
// closed-out records it replaced
type StatusRegister struct {
	mu      sync.RWMutex
	clock   clock.Clock
	users   UserDirectory
	current map[models.SubjectID]models.StatusRecord
	history map[models.SubjectID][]models.StatusRecord
}

// NewStatusRegister creates an empty status register
func NewStatusRegister(clk clock.Clock, users UserDirectory) *StatusRegister {
	return &StatusRegister{
		clock:   clk,
		users:   users,
		current: make(map[models.SubjectID]models.StatusRecord),
		history: make(map[models.SubjectID][]models.StatusRecord),
	}
}

// Current returns the subject's current status record
func (r *StatusRegister) Current(id models.SubjectID) (*models.StatusRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.current[id]
	if !ok {
		return nil, models.ErrNoStatus
	}
	return &rec, nil
}

// Transition closes the current record (if any) into history and installs a
// new current record starting now
func (r *StatusRegister) Transition(id models.SubjectID, status models.WorkStatus) (models.StatusRecord, error) {
	if !r.users.Exists(id) {
		return models.StatusRecord{}, models.ErrUnknownSubject
	}
	if !status.Valid() {
		return models.StatusRecord{}, models.ErrInvalidStatus
	}

	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.current[id]; ok {
		end := now
		prev.EndTime = &end
		r.history[id] = append(r.history[id], prev)
	}

	rec := models.StatusRecord{
		UserID:    id,
		Status:    status,
		StartTime: now,
	}
	r.current[id] = rec
	return rec, nil
}

// History returns the subject's closed status records, oldest first
func (r *StatusRegister) History(id models.SubjectID) []models.StatusRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.StatusRecord{}, r.history[id]...)
}

// Load installs pre-existing current and historical records
func (r *StatusRegister) Load(current []models.StatusRecord, history []models.StatusRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range current {
		r.current[rec.UserID] = rec
	}
	for _, rec := range history {
		r.history[rec.UserID] = append(r.history[rec.UserID], rec)
	}
}
