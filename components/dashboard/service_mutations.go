package dashboard

import (
	"context"
	"errors"
	"strings"
)

func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (Project, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationProjectCreate,
		form:       FormProjectCreate,
		payload:    input,
		objectType: "project",
	}, func(ctx context.Context, b Backend) (Project, error) {
		return b.CreateProject(ctx, input)
	}, func(p Project) (MutationScope, map[string]any) {
		return MutationScope{ID: p.ID}, map[string]any{"name": p.Name}
	})
}

func (s *Service) UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (Project, error) {
	if strings.TrimSpace(id) == "" {
		return Project{}, ErrProjectRequired
	}
	return runMutation(ctx, s, mutation{
		kind:       MutationProjectUpdate,
		form:       FormProjectUpdate,
		payload:    input,
		trackID:    id,
		objectType: "project",
	}, func(ctx context.Context, b Backend) (Project, error) {
		return b.UpdateProject(ctx, id, input)
	}, func(p Project) (MutationScope, map[string]any) {
		return MutationScope{ID: id}, map[string]any{"name": p.Name}
	})
}

// DeleteProject removes the project and clears the selection when it pointed
// at it.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrProjectRequired
	}
	_, err := runMutation(ctx, s, mutation{
		kind:       MutationProjectDelete,
		trackID:    id,
		objectType: "project",
	}, func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.DeleteProject(ctx, id)
	}, func(struct{}) (MutationScope, map[string]any) {
		return MutationScope{ID: id}, nil
	})
	if err != nil {
		return err
	}
	if s.SelectedProject() == id {
		return s.opts.Selection.Clear(ctx)
	}
	return nil
}

func (s *Service) CreateFeature(ctx context.Context, input CreateFeatureInput) (Feature, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationFeatureCreate,
		form:       FormFeatureCreate,
		payload:    input,
		objectType: "feature",
	}, func(ctx context.Context, b Backend) (Feature, error) {
		return b.CreateFeature(ctx, input)
	}, func(f Feature) (MutationScope, map[string]any) {
		return MutationScope{ID: f.ID}, map[string]any{"name": f.Name, "project_id": input.ProjectID}
	})
}

func (s *Service) UpdateFeature(ctx context.Context, id string, input UpdateFeatureInput) (Feature, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationFeatureUpdate,
		form:       FormFeatureUpdate,
		payload:    input,
		trackID:    id,
		objectType: "feature",
	}, func(ctx context.Context, b Backend) (Feature, error) {
		return b.UpdateFeature(ctx, id, input)
	}, func(f Feature) (MutationScope, map[string]any) {
		return MutationScope{ID: id}, map[string]any{"name": f.Name}
	})
}

func (s *Service) DeleteFeature(ctx context.Context, id string) error {
	_, err := runMutation(ctx, s, mutation{
		kind:       MutationFeatureDelete,
		trackID:    id,
		objectType: "feature",
	}, func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.DeleteFeature(ctx, id)
	}, func(struct{}) (MutationScope, map[string]any) {
		return MutationScope{ID: id}, nil
	})
	return err
}

func (s *Service) CreateKey(ctx context.Context, input CreateKeyInput) (Key, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationKeyCreate,
		form:       FormKeyCreate,
		payload:    input,
		objectType: "key",
	}, func(ctx context.Context, b Backend) (Key, error) {
		return b.CreateKey(ctx, input)
	}, func(k Key) (MutationScope, map[string]any) {
		return MutationScope{ID: k.ID, FeatureID: input.FeatureID}, map[string]any{"key": k.Key}
	})
}

func (s *Service) UpdateKey(ctx context.Context, id string, input UpdateKeyInput) (Key, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationKeyUpdate,
		form:       FormKeyUpdate,
		payload:    input,
		trackID:    id,
		objectType: "key",
	}, func(ctx context.Context, b Backend) (Key, error) {
		return b.UpdateKey(ctx, id, input)
	}, func(k Key) (MutationScope, map[string]any) {
		return MutationScope{ID: id, FeatureID: k.FeatureID}, map[string]any{"key": k.Key}
	})
}

// DeleteKey removes a key. featureID narrows the invalidated key lists and
// may be empty.
func (s *Service) DeleteKey(ctx context.Context, id, featureID string) error {
	_, err := runMutation(ctx, s, mutation{
		kind:       MutationKeyDelete,
		trackID:    id,
		objectType: "key",
	}, func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.DeleteKey(ctx, id)
	}, func(struct{}) (MutationScope, map[string]any) {
		return MutationScope{ID: id, FeatureID: featureID}, nil
	})
	return err
}

func (s *Service) CreateLanguage(ctx context.Context, input CreateLanguageInput) (Language, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationLanguageCreate,
		form:       FormLanguageCreate,
		payload:    input,
		objectType: "language",
	}, func(ctx context.Context, b Backend) (Language, error) {
		return b.CreateLanguage(ctx, input)
	}, func(l Language) (MutationScope, map[string]any) {
		return MutationScope{ID: l.ID}, map[string]any{"locale": l.Locale}
	})
}

func (s *Service) UpdateLanguage(ctx context.Context, id string, input UpdateLanguageInput) (Language, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationLanguageUpdate,
		form:       FormLanguageUpdate,
		payload:    input,
		trackID:    id,
		objectType: "language",
	}, func(ctx context.Context, b Backend) (Language, error) {
		return b.UpdateLanguage(ctx, id, input)
	}, func(l Language) (MutationScope, map[string]any) {
		return MutationScope{ID: id}, map[string]any{"locale": l.Locale, "is_active": l.IsActive}
	})
}

// ToggleLanguage flips the active flag of a language.
func (s *Service) ToggleLanguage(ctx context.Context, language Language) (Language, error) {
	active := !language.IsActive
	return s.UpdateLanguage(ctx, language.ID, UpdateLanguageInput{IsActive: &active})
}

func (s *Service) DeleteLanguage(ctx context.Context, id string) error {
	_, err := runMutation(ctx, s, mutation{
		kind:       MutationLanguageDelete,
		trackID:    id,
		objectType: "language",
	}, func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.DeleteLanguage(ctx, id)
	}, func(struct{}) (MutationScope, map[string]any) {
		return MutationScope{ID: id}, nil
	})
	return err
}

func (s *Service) CreateTranslation(ctx context.Context, input CreateTranslationInput) (Translation, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationTranslationCreate,
		form:       FormTranslationCreate,
		payload:    input,
		objectType: "translation",
	}, func(ctx context.Context, b Backend) (Translation, error) {
		return b.CreateTranslation(ctx, input)
	}, func(t Translation) (MutationScope, map[string]any) {
		return MutationScope{ID: t.ID, KeyID: input.KeyID}, map[string]any{"locale": input.Locale}
	})
}

func (s *Service) UpdateTranslation(ctx context.Context, id, value string) (Translation, error) {
	return runMutation(ctx, s, mutation{
		kind:       MutationTranslationUpdate,
		form:       FormTranslationUpdate,
		payload:    map[string]any{"value": value},
		trackID:    id,
		objectType: "translation",
	}, func(ctx context.Context, b Backend) (Translation, error) {
		return b.UpdateTranslation(ctx, id, value)
	}, func(t Translation) (MutationScope, map[string]any) {
		return MutationScope{ID: id, KeyID: t.KeyID}, map[string]any{"locale": t.Locale}
	})
}

// DeleteTranslation removes a translation. keyID narrows the invalidated
// translation lists and may be empty.
func (s *Service) DeleteTranslation(ctx context.Context, id, keyID string) error {
	_, err := runMutation(ctx, s, mutation{
		kind:       MutationTranslationDelete,
		trackID:    id,
		objectType: "translation",
	}, func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.DeleteTranslation(ctx, id)
	}, func(struct{}) (MutationScope, map[string]any) {
		return MutationScope{ID: id, KeyID: keyID}, nil
	})
	return err
}

// BulkUpsert writes several locale values of one key in a single request.
func (s *Service) BulkUpsert(ctx context.Context, input BulkUpsertInput) ([]Translation, error) {
	if len(input.Translations) == 0 {
		return nil, ErrNoChanges
	}
	return runMutation(ctx, s, mutation{
		kind:       MutationBulkUpsert,
		form:       FormBulkUpsert,
		payload:    input,
		trackID:    input.KeyID,
		objectType: "key",
	}, func(ctx context.Context, b Backend) ([]Translation, error) {
		return b.BulkUpsert(ctx, input)
	}, func(saved []Translation) (MutationScope, map[string]any) {
		locales := make([]string, 0, len(input.Translations))
		for _, t := range input.Translations {
			locales = append(locales, t.Locale)
		}
		return MutationScope{ID: input.KeyID, KeyID: input.KeyID}, map[string]any{
			"locales": locales,
			"saved":   len(saved),
		}
	})
}

// AITranslateKey asks the API to machine-translate keyID into locales.
func (s *Service) AITranslateKey(ctx context.Context, keyID string, locales []string) (AITranslateResult, error) {
	input := AITranslateInput{KeyID: keyID, TargetLocales: locales}
	return runMutation(ctx, s, mutation{
		kind:       MutationAITranslate,
		form:       FormAITranslate,
		payload:    input,
		trackID:    keyID,
		objectType: "key",
	}, func(ctx context.Context, b Backend) (AITranslateResult, error) {
		return b.AITranslate(ctx, input)
	}, func(r AITranslateResult) (MutationScope, map[string]any) {
		return MutationScope{ID: keyID, KeyID: keyID}, map[string]any{
			"translated": r.TranslatedCount,
			"skipped":    r.SkippedCount,
		}
	})
}

// AITranslateBatch translates a feature or a whole project. Empty target
// locales resolve to every active language of the project.
func (s *Service) AITranslateBatch(ctx context.Context, input AITranslateBatchInput) (AITranslateBatchResult, error) {
	if input.FeatureID == "" && input.ProjectID == "" {
		input.ProjectID = s.SelectedProject()
	}
	if input.FeatureID == "" && input.ProjectID == "" {
		return AITranslateBatchResult{}, ErrProjectRequired
	}
	if len(input.TargetLocales) == 0 {
		languages, err := s.ActiveLanguages(ctx, input.ProjectID)
		if err != nil {
			return AITranslateBatchResult{}, err
		}
		for _, l := range languages {
			input.TargetLocales = append(input.TargetLocales, l.Locale)
		}
	}
	target, objectType := input.FeatureID, "feature"
	if target == "" {
		target, objectType = input.ProjectID, "project"
	}
	return runMutation(ctx, s, mutation{
		kind:       MutationAITranslateBatch,
		form:       FormAITranslateBatch,
		payload:    input,
		trackID:    target,
		objectType: objectType,
	}, func(ctx context.Context, b Backend) (AITranslateBatchResult, error) {
		return b.AITranslateBatch(ctx, input)
	}, func(r AITranslateBatchResult) (MutationScope, map[string]any) {
		return MutationScope{ID: target}, map[string]any{
			"feature_id": input.FeatureID,
			"project_id": input.ProjectID,
			"locales":    input.TargetLocales,
			"translated": r.TranslatedCount,
		}
	})
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
