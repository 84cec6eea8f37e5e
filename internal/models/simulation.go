package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Simulation defaults applied to any option the caller omits or malforms
const (
	DefaultIntervalSeconds = 10
	DefaultAccuracy        = 10
	DefaultBatteryLevel    = 80
	DefaultTrackingType    = TrackingPoint
	DefaultNetworkType     = NetworkWiFi
)

// MaxIntervalSeconds is the longest interval whose duration fits in a time.Duration
const MaxIntervalSeconds = float64(math.MaxInt64 / int64(time.Second))

// SimulationOptions are the resolved settings of a simulation run
type SimulationOptions struct {
	IntervalSeconds float64      `json:"interval"`
	TrackingType    TrackingType `json:"trackingType"`
	Accuracy        float64      `json:"accuracy"`
	BatteryLevel    int          `json:"batteryLevel"`
	NetworkType     NetworkType  `json:"networkType"`
	AutoClockIn     bool         `json:"autoClockIn"`
	AutoClockOut    bool         `json:"autoClockOut"`
}

// DefaultSimulationOptions returns the options used when the caller sends none
func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		IntervalSeconds: DefaultIntervalSeconds,
		TrackingType:    DefaultTrackingType,
		Accuracy:        DefaultAccuracy,
		BatteryLevel:    DefaultBatteryLevel,
		NetworkType:     DefaultNetworkType,
	}
}

// ParseSimulationOptions merges raw client options over the defaults.
// Unknown keys, wrong types and out-of-range values fall back to the default
// for that field; it never fails.
func ParseSimulationOptions(raw json.RawMessage) SimulationOptions {
	opts := DefaultSimulationOptions()
	if len(raw) == 0 {
		return opts
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return opts
	}

	if v, ok := number(fields["interval"]); ok && v > 0 && v <= MaxIntervalSeconds {
		opts.IntervalSeconds = v
	}
	if v, ok := fields["trackingType"].(string); ok && TrackingType(v).Valid() {
		opts.TrackingType = TrackingType(v)
	}
	if v, ok := number(fields["accuracy"]); ok && v >= 0 {
		opts.Accuracy = v
	}
	if v, ok := number(fields["batteryLevel"]); ok {
		opts.BatteryLevel = ClampBattery(int(math.Round(math.Max(-1, math.Min(v, 101)))))
	}
	if v, ok := fields["networkType"].(string); ok {
		if nt := ParseNetworkType(v); nt != NetworkUnknown {
			opts.NetworkType = nt
		}
	}
	if v, ok := fields["autoClockIn"].(bool); ok {
		opts.AutoClockIn = v
	}
	if v, ok := fields["autoClockOut"].(bool); ok {
		opts.AutoClockOut = v
	}
	return opts
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// SimulationStartResult is returned when a run is started
type SimulationStartResult struct {
	RunID             string    `json:"runId"`
	UserID            SubjectID `json:"userId"`
	RouteName         string    `json:"routeName"`
	Status            string    `json:"status"`
	TotalPoints       int       `json:"totalPoints"`
	EstimatedDuration float64   `json:"estimatedDuration"` // seconds
}

// SimulationStopResult is returned when a run is stopped
type SimulationStopResult struct {
	RunID           string    `json:"runId"`
	UserID          SubjectID `json:"userId"`
	RouteName       string    `json:"routeName"`
	Status          string    `json:"status"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	PointsCompleted int       `json:"pointsCompleted"`
}

// ActiveSimulation summarizes a running simulation
type ActiveSimulation struct {
	RunID             string            `json:"runId"`
	UserID            SubjectID         `json:"userId"`
	RouteName         string            `json:"routeName"`
	StartTime         time.Time         `json:"startTime"`
	CurrentPointIndex int               `json:"currentPointIndex"`
	TotalPoints       int               `json:"totalPoints"`
	Options           SimulationOptions `json:"options"`
}
