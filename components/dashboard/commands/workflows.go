package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type importService interface {
	ImportCSV(ctx context.Context, req dashboard.ImportRequest) (dashboard.BulkUploadResult, error)
}

// ImportTranslationsInput uploads a prepared import session.
type ImportTranslationsInput struct {
	dashboard.ImportRequest
	Actor
	Result *dashboard.BulkUploadResult `json:"-"`
}

// ImportTranslationsCommand wraps Service.ImportCSV.
type ImportTranslationsCommand struct {
	service   importService
	telemetry Telemetry
}

func NewImportTranslationsCommand(service importService, telemetry Telemetry) *ImportTranslationsCommand {
	return &ImportTranslationsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ImportTranslationsInput] = (*ImportTranslationsCommand)(nil)

func (c *ImportTranslationsCommand) Execute(ctx context.Context, msg ImportTranslationsInput) error {
	if c.service == nil {
		return errors.New("import command requires service")
	}
	result, err := c.service.ImportCSV(msg.apply(ctx), msg.ImportRequest)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	c.telemetry.Record(ctx, "l10n.command.translation.import", map[string]any{
		"feature_id": msg.FeatureID,
		"created":    result.Created,
		"updated":    result.Updated,
	})
	return nil
}

type aiService interface {
	AITranslateKey(ctx context.Context, keyID string, locales []string) (dashboard.AITranslateResult, error)
	AITranslateBatch(ctx context.Context, input dashboard.AITranslateBatchInput) (dashboard.AITranslateBatchResult, error)
}

type AITranslateInput struct {
	dashboard.AITranslateInput
	Actor
	Result *dashboard.AITranslateResult `json:"-"`
}

// AITranslateCommand asks the API to machine-translate one key.
type AITranslateCommand struct {
	service   aiService
	telemetry Telemetry
}

func NewAITranslateCommand(service aiService, telemetry Telemetry) *AITranslateCommand {
	return &AITranslateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AITranslateInput] = (*AITranslateCommand)(nil)

func (c *AITranslateCommand) Execute(ctx context.Context, msg AITranslateInput) error {
	if c.service == nil {
		return errors.New("ai translate command requires service")
	}
	if msg.KeyID == "" {
		return errors.New("ai translate command requires key id")
	}
	result, err := c.service.AITranslateKey(msg.apply(ctx), msg.KeyID, msg.TargetLocales)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	c.telemetry.Record(ctx, "l10n.command.translation.ai", map[string]any{
		"key_id":     msg.KeyID,
		"translated": result.TranslatedCount,
	})
	return nil
}

type AITranslateBatchInput struct {
	dashboard.AITranslateBatchInput
	Actor
	Result *dashboard.AITranslateBatchResult `json:"-"`
}

// AITranslateBatchCommand machine-translates a feature or a whole project.
type AITranslateBatchCommand struct {
	service   aiService
	telemetry Telemetry
}

func NewAITranslateBatchCommand(service aiService, telemetry Telemetry) *AITranslateBatchCommand {
	return &AITranslateBatchCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AITranslateBatchInput] = (*AITranslateBatchCommand)(nil)

func (c *AITranslateBatchCommand) Execute(ctx context.Context, msg AITranslateBatchInput) error {
	if c.service == nil {
		return errors.New("ai batch command requires service")
	}
	result, err := c.service.AITranslateBatch(msg.apply(ctx), msg.AITranslateBatchInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	c.telemetry.Record(ctx, "l10n.command.translation.ai_batch", map[string]any{
		"feature_id": msg.FeatureID,
		"project_id": msg.ProjectID,
		"translated": result.TranslatedCount,
	})
	return nil
}

type focusService interface {
	AdvanceFocus(ctx context.Context, id string, action dashboard.FocusAction, value string) (dashboard.FocusSummary, error)
}

// FocusStepInput submits or skips the current task of a focus session.
type FocusStepInput struct {
	SessionID string                `json:"sessionId"`
	Action    dashboard.FocusAction `json:"action"`
	Value     string                `json:"value,omitempty"`
	Actor
	Result *dashboard.FocusSummary `json:"-"`
}

// FocusStepCommand wraps Service.AdvanceFocus.
type FocusStepCommand struct {
	service   focusService
	telemetry Telemetry
}

func NewFocusStepCommand(service focusService, telemetry Telemetry) *FocusStepCommand {
	return &FocusStepCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[FocusStepInput] = (*FocusStepCommand)(nil)

// Execute fills Result even when the step is rejected so callers can
// re-render the unchanged session.
func (c *FocusStepCommand) Execute(ctx context.Context, msg FocusStepInput) error {
	if c.service == nil {
		return errors.New("focus command requires service")
	}
	if msg.SessionID == "" {
		return errors.New("focus command requires session id")
	}
	action := msg.Action
	if action == "" {
		action = dashboard.FocusSubmit
	}
	summary, err := c.service.AdvanceFocus(msg.apply(ctx), msg.SessionID, action, msg.Value)
	if msg.Result != nil {
		*msg.Result = summary
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.focus."+string(action), map[string]any{
		"session_id": msg.SessionID,
		"streak":     summary.Streak,
	})
	return nil
}

type focusStarter interface {
	StartFocus(ctx context.Context, req dashboard.FocusRequest) (*dashboard.FocusSession, error)
}

// StartFocusInput opens a focus session over the translations missing for
// Locale.
type StartFocusInput struct {
	dashboard.FocusRequest
	Result *dashboard.FocusSummary `json:"-"`
}

// StartFocusCommand wraps Service.StartFocus.
type StartFocusCommand struct {
	service   focusStarter
	telemetry Telemetry
}

func NewStartFocusCommand(service focusStarter, telemetry Telemetry) *StartFocusCommand {
	return &StartFocusCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[StartFocusInput] = (*StartFocusCommand)(nil)

func (c *StartFocusCommand) Execute(ctx context.Context, msg StartFocusInput) error {
	if c.service == nil {
		return errors.New("start focus command requires service")
	}
	session, err := c.service.StartFocus(ctx, msg.FocusRequest)
	if err != nil {
		return err
	}
	summary := session.Summary()
	if msg.Result != nil {
		*msg.Result = summary
	}
	c.telemetry.Record(ctx, "l10n.command.focus.start", map[string]any{
		"session_id": summary.ID,
		"locale":     summary.Locale,
		"tasks":      summary.Total,
	})
	return nil
}
