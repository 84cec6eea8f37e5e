package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/checkin-backend-go/internal/models"
)

// EventJournal mirrors tracking events and status transitions into SQLite
type EventJournal struct {
	db *sql.DB
}

// NewEventJournal creates a new event journal
func NewEventJournal(db *sql.DB) *EventJournal {
	return &EventJournal{db: db}
}

// RecordTrackingEvent appends a tracking event
func (j *EventJournal) RecordTrackingEvent(ctx context.Context, e models.TrackingEvent) error {
	var network sql.NullString
	if e.NetworkType != nil {
		network = sql.NullString{String: string(*e.NetworkType), Valid: true}
	}
	var battery sql.NullInt64
	if e.BatteryLevel != nil {
		battery = sql.NullInt64{Int64: int64(*e.BatteryLevel), Valid: true}
	}
	var accuracy sql.NullFloat64
	if e.Accuracy != nil {
		accuracy = sql.NullFloat64{Float64: *e.Accuracy, Valid: true}
	}

	_, err := j.db.ExecContext(ctx, `INSERT INTO tracking_events
		(id, user_id, tracking_type, latitude, longitude, timestamp, accuracy, battery_level, network_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, int64(e.UserID), string(e.TrackingType), e.Latitude, e.Longitude,
		e.Timestamp.UTC().Format(time.RFC3339Nano), accuracy, battery, network,
	)
	if err != nil {
		return fmt.Errorf("failed to record tracking event %d: %w", e.ID, err)
	}
	return nil
}

// RecordStatus appends the start of a status period
func (j *EventJournal) RecordStatus(ctx context.Context, rec models.StatusRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO status_records (user_id, status, start_time) VALUES (?, ?, ?)`,
		int64(rec.UserID), string(rec.Status), rec.StartTime.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record status for user %d: %w", rec.UserID, err)
	}
	return nil
}

// TrackingEvents reads back every journaled event in id order
func (j *EventJournal) TrackingEvents(ctx context.Context) ([]models.TrackingEvent, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT id, user_id, tracking_type, latitude, longitude, timestamp,
		accuracy, battery_level, network_type
		FROM tracking_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking events: %w", err)
	}
	defer rows.Close()

	var events []models.TrackingEvent
	for rows.Next() {
		var (
			e        models.TrackingEvent
			userID   int64
			kind, ts string
			accuracy sql.NullFloat64
			battery  sql.NullInt64
			network  sql.NullString
		)
		if err := rows.Scan(&e.ID, &userID, &kind, &e.Latitude, &e.Longitude, &ts, &accuracy, &battery, &network); err != nil {
			return nil, fmt.Errorf("failed to scan tracking event: %w", err)
		}
		e.UserID = models.SubjectID(userID)
		e.TrackingType = models.TrackingType(kind)
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of event %d: %w", e.ID, err)
		}
		if accuracy.Valid {
			v := accuracy.Float64
			e.Accuracy = &v
		}
		if battery.Valid {
			v := int(battery.Int64)
			e.BatteryLevel = &v
		}
		if network.Valid {
			v := models.NetworkType(network.String)
			e.NetworkType = &v
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// StatusRecords rebuilds status periods from the journal. Each subject's last
// record is current; earlier ones end where the next begins.
func (j *EventJournal) StatusRecords(ctx context.Context) (current, history []models.StatusRecord, err error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT user_id, status, start_time FROM status_records ORDER BY seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query status records: %w", err)
	}
	defer rows.Close()

	var order []models.SubjectID
	latest := make(map[models.SubjectID]models.StatusRecord)
	for rows.Next() {
		var (
			userID     int64
			status, ts string
		)
		if err := rows.Scan(&userID, &status, &ts); err != nil {
			return nil, nil, fmt.Errorf("failed to scan status record: %w", err)
		}
		start, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse start time of status for user %d: %w", userID, err)
		}

		rec := models.StatusRecord{UserID: models.SubjectID(userID), Status: models.WorkStatus(status), StartTime: start}
		if prev, ok := latest[rec.UserID]; ok {
			end := start
			prev.EndTime = &end
			history = append(history, prev)
		} else {
			order = append(order, rec.UserID)
		}
		latest[rec.UserID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	for _, id := range order {
		current = append(current, latest[id])
	}
	return current, history, nil
}
