package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type catalogService interface {
	Projects(ctx context.Context) ([]dashboard.Project, error)
	Features(ctx context.Context, projectID string) ([]dashboard.Feature, error)
	Keys(ctx context.Context, featureID string) ([]dashboard.Key, error)
	Key(ctx context.Context, id string) (dashboard.KeyWithFeature, error)
	Languages(ctx context.Context, projectID string) ([]dashboard.Language, error)
	ActiveLanguages(ctx context.Context, projectID string) ([]dashboard.Language, error)
	TranslationsForKey(ctx context.Context, keyID string) ([]dashboard.Translation, error)
}

// ProjectsInput has no fields; every project is listed.
type ProjectsInput struct{}

// ProjectsQuery lists projects.
type ProjectsQuery struct {
	service catalogService
}

func NewProjectsQuery(service catalogService) *ProjectsQuery {
	return &ProjectsQuery{service: service}
}

var _ gocommand.Querier[ProjectsInput, []dashboard.Project] = (*ProjectsQuery)(nil)

func (q *ProjectsQuery) Query(ctx context.Context, _ ProjectsInput) ([]dashboard.Project, error) {
	return q.service.Projects(ctx)
}

// FeaturesInput scopes features to a project; empty lists all.
type FeaturesInput struct {
	ProjectID string `json:"projectId,omitempty"`
}

// FeaturesQuery lists features.
type FeaturesQuery struct {
	service catalogService
}

func NewFeaturesQuery(service catalogService) *FeaturesQuery {
	return &FeaturesQuery{service: service}
}

var _ gocommand.Querier[FeaturesInput, []dashboard.Feature] = (*FeaturesQuery)(nil)

func (q *FeaturesQuery) Query(ctx context.Context, input FeaturesInput) ([]dashboard.Feature, error) {
	return q.service.Features(ctx, input.ProjectID)
}

type KeysInput struct {
	FeatureID string `json:"featureId"`
}

// KeysQuery lists the keys of one feature.
type KeysQuery struct {
	service catalogService
}

func NewKeysQuery(service catalogService) *KeysQuery {
	return &KeysQuery{service: service}
}

var _ gocommand.Querier[KeysInput, []dashboard.Key] = (*KeysQuery)(nil)

func (q *KeysQuery) Query(ctx context.Context, input KeysInput) ([]dashboard.Key, error) {
	return q.service.Keys(ctx, input.FeatureID)
}

type KeyInput struct {
	ID string `json:"id"`
}

// KeyQuery fetches one key with its feature.
type KeyQuery struct {
	service catalogService
}

func NewKeyQuery(service catalogService) *KeyQuery {
	return &KeyQuery{service: service}
}

var _ gocommand.Querier[KeyInput, dashboard.KeyWithFeature] = (*KeyQuery)(nil)

func (q *KeyQuery) Query(ctx context.Context, input KeyInput) (dashboard.KeyWithFeature, error) {
	return q.service.Key(ctx, input.ID)
}

// LanguagesInput scopes languages to a project. ActiveOnly drops inactive
// languages.
type LanguagesInput struct {
	ProjectID  string `json:"projectId,omitempty"`
	ActiveOnly bool   `json:"activeOnly,omitempty"`
}

// LanguagesQuery lists languages.
type LanguagesQuery struct {
	service catalogService
}

func NewLanguagesQuery(service catalogService) *LanguagesQuery {
	return &LanguagesQuery{service: service}
}

var _ gocommand.Querier[LanguagesInput, []dashboard.Language] = (*LanguagesQuery)(nil)

func (q *LanguagesQuery) Query(ctx context.Context, input LanguagesInput) ([]dashboard.Language, error) {
	if input.ActiveOnly {
		return q.service.ActiveLanguages(ctx, input.ProjectID)
	}
	return q.service.Languages(ctx, input.ProjectID)
}

type TranslationsInput struct {
	KeyID string `json:"keyId"`
}

// TranslationsQuery lists the translations of one key.
type TranslationsQuery struct {
	service catalogService
}

func NewTranslationsQuery(service catalogService) *TranslationsQuery {
	return &TranslationsQuery{service: service}
}

var _ gocommand.Querier[TranslationsInput, []dashboard.Translation] = (*TranslationsQuery)(nil)

func (q *TranslationsQuery) Query(ctx context.Context, input TranslationsInput) ([]dashboard.Translation, error) {
	return q.service.TranslationsForKey(ctx, input.KeyID)
}
