package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type keyService interface {
	CreateKey(ctx context.Context, input dashboard.CreateKeyInput) (dashboard.Key, error)
	UpdateKey(ctx context.Context, id string, input dashboard.UpdateKeyInput) (dashboard.Key, error)
	DeleteKey(ctx context.Context, id, featureID string) error
}

type CreateKeyInput struct {
	dashboard.CreateKeyInput
	Actor
	Result *dashboard.Key `json:"-"`
}

// CreateKeyCommand wraps Service.CreateKey.
type CreateKeyCommand struct {
	service   keyService
	telemetry Telemetry
}

func NewCreateKeyCommand(service keyService, telemetry Telemetry) *CreateKeyCommand {
	return &CreateKeyCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateKeyInput] = (*CreateKeyCommand)(nil)

func (c *CreateKeyCommand) Execute(ctx context.Context, msg CreateKeyInput) error {
	if c.service == nil {
		return errors.New("create key command requires service")
	}
	key, err := c.service.CreateKey(msg.apply(ctx), msg.CreateKeyInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = key
	}
	c.telemetry.Record(ctx, "l10n.command.key.create", map[string]any{
		"key_id":     key.ID,
		"feature_id": msg.FeatureID,
	})
	return nil
}

type UpdateKeyInput struct {
	ID string `json:"id"`
	dashboard.UpdateKeyInput
	Actor
}

// UpdateKeyCommand wraps Service.UpdateKey.
type UpdateKeyCommand struct {
	service   keyService
	telemetry Telemetry
}

func NewUpdateKeyCommand(service keyService, telemetry Telemetry) *UpdateKeyCommand {
	return &UpdateKeyCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateKeyInput] = (*UpdateKeyCommand)(nil)

func (c *UpdateKeyCommand) Execute(ctx context.Context, msg UpdateKeyInput) error {
	if c.service == nil {
		return errors.New("update key command requires service")
	}
	if msg.ID == "" {
		return errors.New("update key command requires key id")
	}
	if _, err := c.service.UpdateKey(msg.apply(ctx), msg.ID, msg.UpdateKeyInput); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.key.update", map[string]any{"key_id": msg.ID})
	return nil
}

// DeleteKeyInput identifies the key to delete. FeatureID narrows the cache
// invalidation to that feature's key list.
type DeleteKeyInput struct {
	ID        string `json:"id"`
	FeatureID string `json:"featureId,omitempty"`
	Actor
}

// DeleteKeyCommand wraps Service.DeleteKey.
type DeleteKeyCommand struct {
	service   keyService
	telemetry Telemetry
}

func NewDeleteKeyCommand(service keyService, telemetry Telemetry) *DeleteKeyCommand {
	return &DeleteKeyCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteKeyInput] = (*DeleteKeyCommand)(nil)

func (c *DeleteKeyCommand) Execute(ctx context.Context, msg DeleteKeyInput) error {
	if c.service == nil {
		return errors.New("delete key command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete key command requires key id")
	}
	if err := c.service.DeleteKey(msg.apply(ctx), msg.ID, msg.FeatureID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.key.delete", map[string]any{"key_id": msg.ID})
	return nil
}
