package events

// EventData is implemented by every typed event payload
type EventData interface {
	EventType() EventType
}

// SessionChangedData carries the identity of a new session state.
// Clients refetch the full snapshot; the payload stays small.
type SessionChangedData struct {
	Transition       string `json:"transition"`
	SystemTechnology string `json:"system_technology"`
	PanelType        string `json:"panel_type"`
	Version          uint64 `json:"version"`
	Panels           int    `json:"panels"`
	ActivePanels     int    `json:"active_panels"`
	Receivers        int    `json:"receivers"`
}

// EventType returns the event type for SessionChangedData
func (d *SessionChangedData) EventType() EventType {
	return SessionChanged
}

// NoticeRaisedData is a message shown to the user for a short while
type NoticeRaisedData struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// EventType returns the event type for NoticeRaisedData
func (d *NoticeRaisedData) EventType() EventType {
	return NoticeRaised
}

// SettingsChangedData represents settings changed event data
type SettingsChangedData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EventType returns the event type for SettingsChangedData
func (d *SettingsChangedData) EventType() EventType {
	return SettingsChanged
}

// CatalogReloadedData describes the catalog that became current
type CatalogReloadedData struct {
	Source       string `json:"source"`
	Technologies int    `json:"technologies"`
	Products     int    `json:"products"`
}

// EventType returns the event type for CatalogReloadedData
func (d *CatalogReloadedData) EventType() EventType {
	return CatalogReloaded
}

// QuoteSubmittedData describes an uploaded quote request
type QuoteSubmittedData struct {
	Reference string `json:"reference"`
	TableKey  string `json:"table_key"`
	Lines     int    `json:"lines"`
}

// EventType returns the event type for QuoteSubmittedData
func (d *QuoteSubmittedData) EventType() EventType {
	return QuoteSubmitted
}

// ErrorEventData represents error event data
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}
