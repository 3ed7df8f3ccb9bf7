// Package v1alpha1 handles the configurator gRPC service
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/render"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/orchestrators/configurator"
)

// Request field names
const (
	fieldSessionID   = "session_id"
	fieldProductID   = "product_id"
	fieldContainerID = "container_id"
	fieldSizeID      = "size_id"
	fieldGroupID     = "group_id"
	fieldOptionID    = "option_id"
	fieldQuantity    = "quantity"
)

// HandlerConfig holds dependencies for the configurator handler
type HandlerConfig struct {
	ConfiguratorService configurator.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.ConfiguratorService == nil {
		return errors.InvalidArgument("configurator service is required")
	}
	return nil
}

// Handler implements the configurator gRPC service
type Handler struct {
	service configurator.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		service: cfg.ConfiguratorService,
	}, nil
}

// Ensure Handler implements ConfiguratorServer
var _ ConfiguratorServer = (*Handler)(nil)

// StartSession opens a configuration session for a product
func (h *Handler) StartSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := requiredString(req, fieldProductID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.StartSession(ctx, &configurator.StartSessionInput{ProductID: productID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return snapshotResponse(out.Snapshot, map[string]any{fieldSessionID: out.SessionID})
}

// SetContainer selects or clears the container
func (h *Handler) SetContainer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requiredString(req, fieldSessionID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.SetContainer(ctx, &configurator.SetContainerInput{
		SessionID:   sessionID,
		ContainerID: optionalString(req, fieldContainerID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return snapshotResponse(out.Snapshot, nil)
}

// SetSize selects or clears the size
func (h *Handler) SetSize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requiredString(req, fieldSessionID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.SetSize(ctx, &configurator.SetSizeInput{
		SessionID: sessionID,
		SizeID:    optionalString(req, fieldSizeID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return snapshotResponse(out.Snapshot, nil)
}

// ToggleOption picks or unpicks an option
func (h *Handler) ToggleOption(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	vb := errors.NewValidationBuilder()
	sessionID := optionalString(req, fieldSessionID)
	groupID := optionalString(req, fieldGroupID)
	optionID := optionalString(req, fieldOptionID)
	errors.ValidateRequired(fieldSessionID, sessionID, vb)
	errors.ValidateRequired(fieldGroupID, groupID, vb)
	errors.ValidateRequired(fieldOptionID, optionID, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.ToggleOption(ctx, &configurator.ToggleOptionInput{
		SessionID: sessionID,
		GroupID:   groupID,
		OptionID:  optionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return snapshotResponse(out.Snapshot, map[string]any{"outcome": string(out.Outcome)})
}

// Reset clears every selection
func (h *Handler) Reset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requiredString(req, fieldSessionID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.Reset(ctx, &configurator.ResetInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return snapshotResponse(out.Snapshot, nil)
}

// GetSnapshot returns the current configuration
func (h *Handler) GetSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requiredString(req, fieldSessionID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.GetSnapshot(ctx, &configurator.GetSnapshotInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return snapshotResponse(out.Snapshot, nil)
}

// QuoteLineItem prices the configuration for checkout
func (h *Handler) QuoteLineItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requiredString(req, fieldSessionID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	quantity, err := intField(req, fieldQuantity, 1)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.QuoteLineItem(ctx, &configurator.QuoteLineItemInput{
		SessionID: sessionID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	item, err := toValue(out.LineItem)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return newStruct(map[string]any{"line_item": item})
}

// EndSession discards the session
func (h *Handler) EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requiredString(req, fieldSessionID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.service.EndSession(ctx, &configurator.EndSessionInput{SessionID: sessionID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// snapshotResponse carries the snapshot and its rendered view plus any extra
// top level fields
func snapshotResponse(snap *engine.Snapshot, extra map[string]any) (*structpb.Struct, error) {
	snapValue, err := toValue(snap)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	viewValue, err := toValue(render.Snapshot(snap))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := map[string]any{
		"snapshot": snapValue,
		"view":     viewValue,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return newStruct(fields)
}
