// Package events provides event management functionality.
package events

import (
	"encoding/json"
	"time"
)

// EventType represents different event types
type EventType string

const (
	// SessionChanged is emitted after every successful configurator transition
	SessionChanged EventType = "SESSION_CHANGED"
	// NoticeRaised is emitted when a rejection or warning message is reported
	NoticeRaised EventType = "NOTICE_RAISED"
	// SettingsChanged is emitted when a persisted UI preference changes
	SettingsChanged EventType = "SETTINGS_CHANGED"
	// CatalogReloaded is emitted after the product catalog was swapped
	CatalogReloaded EventType = "CATALOG_RELOADED"
	// QuoteSubmitted is emitted after an order was uploaded as a quote request
	QuoteSubmitted EventType = "QUOTE_SUBMITTED"
	// ErrorOccurred is emitted for failures that have no caller to return to
	ErrorOccurred EventType = "ERROR_OCCURRED"
)

// AllTypes lists every event type, in the order clients usually subscribe
var AllTypes = []EventType{
	SessionChanged,
	NoticeRaised,
	SettingsChanged,
	CatalogReloaded,
	QuoteSubmitted,
	ErrorOccurred,
}

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
	ID        string                 `json:"id"`
}

// GetTypedData converts the Data map back to the typed payload of the event.
// Returns nil when the type is unknown or the map does not fit.
func (e *Event) GetTypedData() EventData {
	if e.Data == nil {
		return nil
	}

	var data EventData
	switch e.Type {
	case SessionChanged:
		data = &SessionChangedData{}
	case NoticeRaised:
		data = &NoticeRaisedData{}
	case SettingsChanged:
		data = &SettingsChangedData{}
	case CatalogReloaded:
		data = &CatalogReloadedData{}
	case QuoteSubmitted:
		data = &QuoteSubmittedData{}
	case ErrorOccurred:
		data = &ErrorEventData{}
	default:
		return nil
	}

	if err := convertMapToStruct(e.Data, data); err != nil {
		return nil
	}
	return data
}

// convertMapToStruct converts a map[string]interface{} to a struct
func convertMapToStruct(m map[string]interface{}, v interface{}) error {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, v)
}

// convertEventDataToMap converts typed EventData to the map carried by Event
func convertEventDataToMap(data EventData) map[string]interface{} {
	if data == nil {
		return nil
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var result map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return nil
	}

	return result
}
