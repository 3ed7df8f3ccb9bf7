package configurator

import (
	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
)

// StartSessionInput contains the product to configure
type StartSessionInput struct {
	ProductID string
}

// StartSessionOutput contains the new session and its empty configuration
type StartSessionOutput struct {
	SessionID string
	Snapshot  *engine.Snapshot
}

// SetContainerInput selects a container; an empty ContainerID clears it
type SetContainerInput struct {
	SessionID   string
	ContainerID string
}

// SetSizeInput selects a size; an empty SizeID clears it
type SetSizeInput struct {
	SessionID string
	SizeID    string
}

// ToggleOptionInput picks or unpicks an option
type ToggleOptionInput struct {
	SessionID string
	GroupID   string
	OptionID  string
}

// ToggleOptionOutput reports what the toggle did
type ToggleOptionOutput struct {
	Outcome  selection.Outcome
	Snapshot *engine.Snapshot
}

// ResetInput clears every selection of a session
type ResetInput struct {
	SessionID string
}

// GetSnapshotInput reads a session's configuration
type GetSnapshotInput struct {
	SessionID string
}

// SnapshotOutput carries the configuration after an operation
type SnapshotOutput struct {
	Snapshot *engine.Snapshot
}

// QuoteLineItemInput prices a session's configuration for checkout
type QuoteLineItemInput struct {
	SessionID string
	Quantity  int
}

// QuoteLineItemOutput contains the checkout line
type QuoteLineItemOutput struct {
	LineItem *LineItem
}

// EndSessionInput discards a session
type EndSessionInput struct {
	SessionID string
}

// EndSessionOutput is empty
type EndSessionOutput struct{}
