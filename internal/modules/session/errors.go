package session

import "errors"

var (
	// ErrNoSystem is returned when a transition needs a selected technology
	ErrNoSystem = errors.New("no system selected")
	// ErrUnknownSystem is returned for a technology or panel type the catalog does not offer
	ErrUnknownSystem = errors.New("unknown system or panel type")
	// ErrMaxPanels is returned when adding a panel beyond the limit
	ErrMaxPanels = errors.New("maximum number of panels reached")
	// ErrMinPanels is returned when removing the last panel
	ErrMinPanels = errors.New("at least one panel is required")
	// ErrPanelNotFound is returned for an unknown panel id
	ErrPanelNotFound = errors.New("panel not found")
	// ErrUnknownModule is returned when a module is not offered for the current system
	ErrUnknownModule = errors.New("module not found")
	// ErrUnknownReceiver is returned when a receiver is not offered for the current system
	ErrUnknownReceiver = errors.New("receiver not found")
	// ErrInvalidInstallation is returned for an unknown installation type
	ErrInvalidInstallation = errors.New("invalid installation type")
	// ErrRejected wraps validation rejections; the message explains the rule
	ErrRejected = errors.New("rejected")
)
