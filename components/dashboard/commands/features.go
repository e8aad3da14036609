package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type featureService interface {
	CreateFeature(ctx context.Context, input dashboard.CreateFeatureInput) (dashboard.Feature, error)
	UpdateFeature(ctx context.Context, id string, input dashboard.UpdateFeatureInput) (dashboard.Feature, error)
	DeleteFeature(ctx context.Context, id string) error
}

// CreateFeatureInput carries the create-feature dialog.
type CreateFeatureInput struct {
	dashboard.CreateFeatureInput
	Actor
	Result *dashboard.Feature `json:"-"`
}

// CreateFeatureCommand wraps Service.CreateFeature.
type CreateFeatureCommand struct {
	service   featureService
	telemetry Telemetry
}

func NewCreateFeatureCommand(service featureService, telemetry Telemetry) *CreateFeatureCommand {
	return &CreateFeatureCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateFeatureInput] = (*CreateFeatureCommand)(nil)

func (c *CreateFeatureCommand) Execute(ctx context.Context, msg CreateFeatureInput) error {
	if c.service == nil {
		return errors.New("create feature command requires service")
	}
	feature, err := c.service.CreateFeature(msg.apply(ctx), msg.CreateFeatureInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = feature
	}
	c.telemetry.Record(ctx, "l10n.command.feature.create", map[string]any{
		"feature_id": feature.ID,
		"project_id": msg.ProjectID,
	})
	return nil
}

type UpdateFeatureInput struct {
	ID string `json:"id"`
	dashboard.UpdateFeatureInput
	Actor
}

// UpdateFeatureCommand wraps Service.UpdateFeature.
type UpdateFeatureCommand struct {
	service   featureService
	telemetry Telemetry
}

func NewUpdateFeatureCommand(service featureService, telemetry Telemetry) *UpdateFeatureCommand {
	return &UpdateFeatureCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateFeatureInput] = (*UpdateFeatureCommand)(nil)

func (c *UpdateFeatureCommand) Execute(ctx context.Context, msg UpdateFeatureInput) error {
	if c.service == nil {
		return errors.New("update feature command requires service")
	}
	if msg.ID == "" {
		return errors.New("update feature command requires feature id")
	}
	if _, err := c.service.UpdateFeature(msg.apply(ctx), msg.ID, msg.UpdateFeatureInput); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.feature.update", map[string]any{"feature_id": msg.ID})
	return nil
}

type DeleteFeatureInput struct {
	ID string `json:"id"`
	Actor
}

// DeleteFeatureCommand wraps Service.DeleteFeature.
type DeleteFeatureCommand struct {
	service   featureService
	telemetry Telemetry
}

func NewDeleteFeatureCommand(service featureService, telemetry Telemetry) *DeleteFeatureCommand {
	return &DeleteFeatureCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteFeatureInput] = (*DeleteFeatureCommand)(nil)

func (c *DeleteFeatureCommand) Execute(ctx context.Context, msg DeleteFeatureInput) error {
	if c.service == nil {
		return errors.New("delete feature command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete feature command requires feature id")
	}
	if err := c.service.DeleteFeature(msg.apply(ctx), msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.feature.delete", map[string]any{"feature_id": msg.ID})
	return nil
}
