package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type languageService interface {
	CreateLanguage(ctx context.Context, input dashboard.CreateLanguageInput) (dashboard.Language, error)
	UpdateLanguage(ctx context.Context, id string, input dashboard.UpdateLanguageInput) (dashboard.Language, error)
	DeleteLanguage(ctx context.Context, id string) error
}

type CreateLanguageInput struct {
	dashboard.CreateLanguageInput
	Actor
	Result *dashboard.Language `json:"-"`
}

// CreateLanguageCommand wraps Service.CreateLanguage.
type CreateLanguageCommand struct {
	service   languageService
	telemetry Telemetry
}

func NewCreateLanguageCommand(service languageService, telemetry Telemetry) *CreateLanguageCommand {
	return &CreateLanguageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateLanguageInput] = (*CreateLanguageCommand)(nil)

func (c *CreateLanguageCommand) Execute(ctx context.Context, msg CreateLanguageInput) error {
	if c.service == nil {
		return errors.New("create language command requires service")
	}
	language, err := c.service.CreateLanguage(msg.apply(ctx), msg.CreateLanguageInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = language
	}
	c.telemetry.Record(ctx, "l10n.command.language.create", map[string]any{"locale": language.Locale})
	return nil
}

// UpdateLanguageInput patches the language with ID; toggling sends only
// IsActive.
type UpdateLanguageInput struct {
	ID string `json:"id"`
	dashboard.UpdateLanguageInput
	Actor
}

// UpdateLanguageCommand wraps Service.UpdateLanguage.
type UpdateLanguageCommand struct {
	service   languageService
	telemetry Telemetry
}

func NewUpdateLanguageCommand(service languageService, telemetry Telemetry) *UpdateLanguageCommand {
	return &UpdateLanguageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateLanguageInput] = (*UpdateLanguageCommand)(nil)

func (c *UpdateLanguageCommand) Execute(ctx context.Context, msg UpdateLanguageInput) error {
	if c.service == nil {
		return errors.New("update language command requires service")
	}
	if msg.ID == "" {
		return errors.New("update language command requires language id")
	}
	if _, err := c.service.UpdateLanguage(msg.apply(ctx), msg.ID, msg.UpdateLanguageInput); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.language.update", map[string]any{"language_id": msg.ID})
	return nil
}

type DeleteLanguageInput struct {
	ID string `json:"id"`
	Actor
}

// DeleteLanguageCommand wraps Service.DeleteLanguage.
type DeleteLanguageCommand struct {
	service   languageService
	telemetry Telemetry
}

func NewDeleteLanguageCommand(service languageService, telemetry Telemetry) *DeleteLanguageCommand {
	return &DeleteLanguageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteLanguageInput] = (*DeleteLanguageCommand)(nil)

func (c *DeleteLanguageCommand) Execute(ctx context.Context, msg DeleteLanguageInput) error {
	if c.service == nil {
		return errors.New("delete language command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete language command requires language id")
	}
	if err := c.service.DeleteLanguage(msg.apply(ctx), msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.language.delete", map[string]any{"language_id": msg.ID})
	return nil
}
