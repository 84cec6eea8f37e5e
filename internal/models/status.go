package models

import "time"

// WorkStatus is the work state of a subject
type WorkStatus string

const (
	StatusWorkingOffice WorkStatus = "WORKING_OFFICE"
	StatusWorkingRemote WorkStatus = "WORKING_REMOTE"
	StatusNotWorking    WorkStatus = "NOT_WORKING"
)

// Valid reports whether s is one of the recognized statuses
func (s WorkStatus) Valid() bool {
	switch s {
	case StatusWorkingOffice, StatusWorkingRemote, StatusNotWorking:
		return true
	}
	return false
}

// StatusRecord is a status period. EndTime is nil while the record is current.
type StatusRecord struct {
	UserID    SubjectID  `json:"userId"`
	Status    WorkStatus `json:"status"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}
