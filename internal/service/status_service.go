package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/repository"
)

// StatusService handles work status changes
type StatusService struct {
	register *repository.StatusRegister
	journal  Journal
	logger   *zap.Logger
}

// NewStatusService creates a new status service. journal may be nil.
func NewStatusService(register *repository.StatusRegister, journal Journal, logger *zap.Logger) *StatusService {
	return &StatusService{
		register: register,
		journal:  journal,
		logger:   logger,
	}
}

// Transition moves a subject to a new work status
func (s *StatusService) Transition(ctx context.Context, subjectID models.SubjectID, status models.WorkStatus) (models.StatusRecord, error) {
	rec, err := s.register.Transition(subjectID, status)
	if err != nil {
		return rec, err
	}

	if s.journal != nil {
		if err := s.journal.RecordStatus(ctx, rec); err != nil {
			s.logger.Warn("journal status failed", zap.Int64("user_id", int64(subjectID)), zap.Error(err))
		}
	}
	s.logger.Debug("status changed", zap.Int64("user_id", int64(subjectID)), zap.String("status", string(status)))

	return rec, nil
}

// Current returns a subject's current status
func (s *StatusService) Current(subjectID models.SubjectID) (*models.StatusRecord, error) {
	return s.register.Current(subjectID)
}

// History returns a subject's closed status records
func (s *StatusService) History(subjectID models.SubjectID) []models.StatusRecord {
	return s.register.History(subjectID)
}
