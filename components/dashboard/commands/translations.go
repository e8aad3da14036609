package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type translationService interface {
	CreateTranslation(ctx context.Context, input dashboard.CreateTranslationInput) (dashboard.Translation, error)
	UpdateTranslation(ctx context.Context, id, value string) (dashboard.Translation, error)
	DeleteTranslation(ctx context.Context, id, keyID string) error
	BulkUpsert(ctx context.Context, input dashboard.BulkUpsertInput) ([]dashboard.Translation, error)
}

type CreateTranslationInput struct {
	dashboard.CreateTranslationInput
	Actor
	Result *dashboard.Translation `json:"-"`
}

// CreateTranslationCommand wraps Service.CreateTranslation.
type CreateTranslationCommand struct {
	service   translationService
	telemetry Telemetry
}

func NewCreateTranslationCommand(service translationService, telemetry Telemetry) *CreateTranslationCommand {
	return &CreateTranslationCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateTranslationInput] = (*CreateTranslationCommand)(nil)

func (c *CreateTranslationCommand) Execute(ctx context.Context, msg CreateTranslationInput) error {
	if c.service == nil {
		return errors.New("create translation command requires service")
	}
	translation, err := c.service.CreateTranslation(msg.apply(ctx), msg.CreateTranslationInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = translation
	}
	c.telemetry.Record(ctx, "l10n.command.translation.create", map[string]any{
		"key_id": msg.KeyID,
		"locale": msg.Locale,
	})
	return nil
}

// UpdateTranslationInput replaces the value of one translation.
type UpdateTranslationInput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Actor
}

// UpdateTranslationCommand wraps Service.UpdateTranslation.
type UpdateTranslationCommand struct {
	service   translationService
	telemetry Telemetry
}

func NewUpdateTranslationCommand(service translationService, telemetry Telemetry) *UpdateTranslationCommand {
	return &UpdateTranslationCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateTranslationInput] = (*UpdateTranslationCommand)(nil)

func (c *UpdateTranslationCommand) Execute(ctx context.Context, msg UpdateTranslationInput) error {
	if c.service == nil {
		return errors.New("update translation command requires service")
	}
	if msg.ID == "" {
		return errors.New("update translation command requires translation id")
	}
	if _, err := c.service.UpdateTranslation(msg.apply(ctx), msg.ID, msg.Value); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.translation.update", map[string]any{"translation_id": msg.ID})
	return nil
}

type DeleteTranslationInput struct {
	ID    string `json:"id"`
	KeyID string `json:"keyId,omitempty"`
	Actor
}

// DeleteTranslationCommand wraps Service.DeleteTranslation.
type DeleteTranslationCommand struct {
	service   translationService
	telemetry Telemetry
}

func NewDeleteTranslationCommand(service translationService, telemetry Telemetry) *DeleteTranslationCommand {
	return &DeleteTranslationCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteTranslationInput] = (*DeleteTranslationCommand)(nil)

func (c *DeleteTranslationCommand) Execute(ctx context.Context, msg DeleteTranslationInput) error {
	if c.service == nil {
		return errors.New("delete translation command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete translation command requires translation id")
	}
	if err := c.service.DeleteTranslation(msg.apply(ctx), msg.ID, msg.KeyID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.translation.delete", map[string]any{"translation_id": msg.ID})
	return nil
}

// SaveTranslationsInput is the editor's save: every dirty locale of one key.
type SaveTranslationsInput struct {
	dashboard.BulkUpsertInput
	Actor
	Result *[]dashboard.Translation `json:"-"`
}

// SaveTranslationsCommand wraps Service.BulkUpsert.
type SaveTranslationsCommand struct {
	service   translationService
	telemetry Telemetry
}

func NewSaveTranslationsCommand(service translationService, telemetry Telemetry) *SaveTranslationsCommand {
	return &SaveTranslationsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveTranslationsInput] = (*SaveTranslationsCommand)(nil)

func (c *SaveTranslationsCommand) Execute(ctx context.Context, msg SaveTranslationsInput) error {
	if c.service == nil {
		return errors.New("save translations command requires service")
	}
	if msg.KeyID == "" {
		return errors.New("save translations command requires key id")
	}
	saved, err := c.service.BulkUpsert(msg.apply(ctx), msg.BulkUpsertInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = saved
	}
	c.telemetry.Record(ctx, "l10n.command.translation.save", map[string]any{
		"key_id":  msg.KeyID,
		"locales": len(msg.Translations),
	})
	return nil
}
