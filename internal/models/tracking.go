package models

import "time"

// TrackingType is the kind of a tracking event
type TrackingType string

const (
	TrackingClockInOffice TrackingType = "CLOCK_IN_OFFICE"
	TrackingClockInRemote TrackingType = "CLOCK_IN_REMOTE"
	TrackingClockOut      TrackingType = "CLOCK_OUT"
	TrackingPoint         TrackingType = "TRACKING_POINT"
)

// Valid reports whether t is one of the recognized kinds
func (t TrackingType) Valid() bool {
	switch t {
	case TrackingClockInOffice, TrackingClockInRemote, TrackingClockOut, TrackingPoint:
		return true
	}
	return false
}

// NetworkType is the connectivity reported by the device
type NetworkType string

const (
	NetworkWiFi     NetworkType = "WIFI"
	NetworkCellular NetworkType = "CELLULAR"
	NetworkUnknown  NetworkType = "unknown"
)

// ParseNetworkType maps anything unrecognized to NetworkUnknown
func ParseNetworkType(s string) NetworkType {
	switch NetworkType(s) {
	case NetworkWiFi, NetworkCellular:
		return NetworkType(s)
	}
	return NetworkUnknown
}

// TrackingEvent is one stored location report
type TrackingEvent struct {
	ID           int64        `json:"id"`
	UserID       SubjectID    `json:"userId"`
	TrackingType TrackingType `json:"trackingType"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Timestamp    time.Time    `json:"timestamp"`
	Accuracy     *float64     `json:"accuracy"`
	BatteryLevel *int         `json:"batteryLevel"`
	NetworkType  *NetworkType `json:"networkType"`
}

// TrackingInput carries the caller-supplied fields of a new event; id and
// timestamp are assigned on append.
type TrackingInput struct {
	TrackingType TrackingType
	Latitude     float64
	Longitude    float64
	Accuracy     *float64
	BatteryLevel *int
	NetworkType  *NetworkType
}

// CurrentLocation is the last known position of a subject
type CurrentLocation struct {
	UserID    SubjectID `json:"userId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy"`
}

// ClampBattery keeps a battery reading within 0-100
func ClampBattery(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
