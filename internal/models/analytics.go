package models

// AnalyticsEvent is one tracked event in the bounded analytics log.
type AnalyticsEvent struct {
	Event     string            `json:"event"`
	Timestamp string            `json:"timestamp"`
	Data      map[string]string `json:"data,omitempty"`
}
