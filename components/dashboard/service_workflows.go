package dashboard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
)

// UploadFailedMessage is shown when a bulk upload fails without a server
// message.
const UploadFailedMessage = "Upload failed"

// ImportRequest describes one CSV upload.
type ImportRequest struct {
	ProjectID string
	FeatureID string
	Filename  string
	Session   *ImportSession
}

// ImportColumns reports which columns of session survive the upload filter
// for the languages of projectID.
func (s *Service) ImportColumns(ctx context.Context, projectID string, session *ImportSession) ([]ColumnStatus, error) {
	valid, err := s.validColumns(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return session.Columns(valid), nil
}

// ImportCSV filters the session down to the key column and known locales,
// uploads the result and returns the server's counts as reported.
func (s *Service) ImportCSV(ctx context.Context, req ImportRequest) (BulkUploadResult, error) {
	if req.Session == nil {
		return BulkUploadResult{}, ErrCSVEmpty
	}
	if strings.TrimSpace(req.FeatureID) == "" {
		return BulkUploadResult{}, errors.New("dashboard: import requires a feature id")
	}
	if req.ProjectID == "" {
		req.ProjectID = s.SelectedProject()
	}
	valid, err := s.validColumns(ctx, req.ProjectID)
	if err != nil {
		return BulkUploadResult{}, err
	}
	body, err := req.Session.Build(valid)
	if err != nil {
		return BulkUploadResult{}, err
	}
	filename := req.Filename
	if filename == "" {
		filename = "upload.csv"
	}
	return runMutation(ctx, s, mutation{
		kind:       MutationBulkUpload,
		trackID:    req.FeatureID,
		objectType: "feature",
	}, func(ctx context.Context, b Backend) (BulkUploadResult, error) {
		return b.BulkUpload(ctx, req.FeatureID, filename, bytes.NewReader(body))
	}, func(r BulkUploadResult) (MutationScope, map[string]any) {
		return MutationScope{ID: req.FeatureID, FeatureID: req.FeatureID}, map[string]any{
			"filename": filename,
			"created":  r.Created,
			"updated":  r.Updated,
			"skipped":  r.Skipped,
		}
	})
}

func (s *Service) validColumns(ctx context.Context, projectID string) (ValidColumns, error) {
	languages, err := s.Languages(ctx, projectID)
	if err != nil {
		return ValidColumns{}, err
	}
	return ValidColumnsFor(languages, projectID), nil
}

// ExportCSV renders the search results for params as a CSV download limited
// to locales with an active language.
func (s *Service) ExportCSV(ctx context.Context, params SearchParams) (Export, error) {
	params = normalizeSearchParams(params)
	page, err := s.SearchTranslations(ctx, params)
	if err != nil {
		return Export{}, err
	}
	languages, err := s.Languages(ctx, params.ProjectID)
	if err != nil {
		return Export{}, err
	}
	locales := ActiveLocales(UniqueLocales(page.Data), languages)
	prefix := "translations_all"
	if params.Q != "" || params.Locale != "" || params.FeatureID != "" {
		prefix = "translations_filtered"
	}
	content := GenerateCSV(page.Data, locales)
	s.recordTelemetry(ctx, "l10n.translation.export", map[string]any{
		"rows":    len(page.Data),
		"locales": len(locales),
	})
	return Export{
		Filename:    ExportFilename(prefix, s.now()),
		ContentType: CSVContentType,
		Content:     []byte(content),
		Rows:        len(page.Data),
		Locales:     locales,
	}, nil
}

// OpenDraft loads the key and its translations into an editor draft over
// the active languages of projectID.
func (s *Service) OpenDraft(ctx context.Context, projectID, keyID string) (*TranslationDraft, KeyWithFeature, error) {
	key, err := s.Key(ctx, keyID)
	if err != nil {
		return nil, KeyWithFeature{}, err
	}
	if projectID == "" && key.Feature != nil {
		projectID = key.Feature.ProjectID
	}
	translations, err := s.TranslationsForKey(ctx, keyID)
	if err != nil {
		return nil, KeyWithFeature{}, err
	}
	languages, err := s.ActiveLanguages(ctx, projectID)
	if err != nil {
		return nil, KeyWithFeature{}, err
	}
	return NewTranslationDraft(keyID, translations, languages), key, nil
}

// SaveDraft sends the dirty locales of draft as one bulk upsert and rebases
// the draft on the saved values. A clean draft returns ErrNoChanges.
func (s *Service) SaveDraft(ctx context.Context, draft *TranslationDraft) ([]Translation, error) {
	if draft == nil || !draft.HasChanges() {
		return nil, ErrNoChanges
	}
	saved, err := s.BulkUpsert(ctx, draft.Changes())
	if err != nil {
		return nil, err
	}
	draft.Rebase(saved)
	return saved, nil
}

// FocusRequest selects the missing translations a focus session walks.
type FocusRequest struct {
	ProjectID string `json:"projectId,omitempty"`
	FeatureID string `json:"featureId,omitempty"`
	Locale    string `json:"locale"`
}

// StartFocus builds a session over the translations missing for req.Locale
// and registers it so transports can continue it by id.
func (s *Service) StartFocus(ctx context.Context, req FocusRequest) (*FocusSession, error) {
	if strings.TrimSpace(req.Locale) == "" {
		return nil, errors.New("dashboard: focus requires a locale")
	}
	if req.ProjectID == "" {
		req.ProjectID = s.SelectedProject()
	}
	stats, err := s.Statistics(ctx, StatisticsFilter{ProjectID: req.ProjectID, FeatureID: req.FeatureID})
	if err != nil {
		return nil, err
	}
	session := NewFocusSession(req.Locale, BuildFocusQueue(stats, req.Locale))
	s.focus.Add(session)
	s.recordTelemetry(ctx, "l10n.focus.start", map[string]any{
		"locale": req.Locale,
		"tasks":  len(session.Queue),
	})
	return session, nil
}

// SubmitFocus creates the translation of task. It satisfies FocusSubmitter.
func (s *Service) SubmitFocus(ctx context.Context, task FocusTask, value string) (Translation, error) {
	input := CreateTranslationInput{KeyID: task.KeyID, Locale: task.Locale, Value: value}
	return runMutation(ctx, s, mutation{
		kind:       MutationFocusSubmit,
		form:       FormTranslationCreate,
		payload:    input,
		trackID:    task.KeyID + ":" + task.Locale,
		objectType: "translation",
	}, func(ctx context.Context, b Backend) (Translation, error) {
		return b.CreateTranslation(ctx, input)
	}, func(t Translation) (MutationScope, map[string]any) {
		return MutationScope{ID: t.ID, KeyID: task.KeyID}, map[string]any{"locale": task.Locale}
	})
}

var _ FocusSubmitter = (*Service)(nil)

// FocusAction is applied to a registered session.
type FocusAction string

const (
	FocusSubmit FocusAction = "submit"
	FocusSkip   FocusAction = "skip"
)

// AdvanceFocus submits value to, or skips, the current task of the session
// with id and returns the session's new state.
func (s *Service) AdvanceFocus(ctx context.Context, id string, action FocusAction, value string) (FocusSummary, error) {
	var summary FocusSummary
	found, err := s.focus.With(id, func(session *FocusSession) error {
		var err error
		switch action {
		case FocusSkip:
			err = session.Skip()
		default:
			_, err = session.Submit(ctx, s, value)
		}
		summary = session.Summary()
		return err
	})
	if !found {
		return FocusSummary{}, ErrFocusNotFound
	}
	if err != nil {
		s.logger.DebugContext(ctx, "focus step rejected", slog.String("session", id), logError(err))
	}
	return summary, err
}

// FocusState returns the summary of a registered session.
func (s *Service) FocusState(id string) (FocusSummary, error) {
	var summary FocusSummary
	found, _ := s.focus.With(id, func(session *FocusSession) error {
		summary = session.Summary()
		return nil
	})
	if !found {
		return FocusSummary{}, ErrFocusNotFound
	}
	return summary, nil
}

// FocusMemory lists the other-locale translations of the session's current
// key.
func (s *Service) FocusMemory(ctx context.Context, id string) ([]Translation, error) {
	summary, err := s.FocusState(id)
	if err != nil {
		return nil, err
	}
	if summary.Current == nil {
		return []Translation{}, nil
	}
	translations, err := s.TranslationsForKey(ctx, summary.Current.KeyID)
	if err != nil {
		return nil, err
	}
	return TranslationMemory(translations, summary.Locale), nil
}

// EndFocus drops a registered session.
func (s *Service) EndFocus(id string) { s.focus.Remove(id) }
