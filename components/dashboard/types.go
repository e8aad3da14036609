package dashboard

import (
	"context"
	"io"
	"time"
)

// Project is the top-level container for features and languages.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Feature groups keys within a project.
type Feature struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId"`
	// TotalKeys is a denormalized count maintained by the API.
	TotalKeys *int `json:"totalKeys,omitempty"`
}

// Key is a named placeholder for translatable text scoped to one feature.
type Key struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	FeatureID   string `json:"featureId"`
}

// KeyWithFeature is the detail payload for a single key.
type KeyWithFeature struct {
	Key
	Feature *Feature `json:"feature,omitempty"`
}

// Language declares a locale eligible for translation within a project.
type Language struct {
	ID        string `json:"id"`
	Locale    string `json:"locale"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	ProjectID string `json:"projectId,omitempty"`
}

// Translation is the value of one key for one locale. The API keeps at most
// one translation per (KeyID, Locale).
type Translation struct {
	ID     string `json:"id"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
	KeyID  string `json:"keyId"`
}

// TranslationListItem is the flattened row returned by translation search.
type TranslationListItem struct {
	ID          string    `json:"id"`
	KeyID       string    `json:"keyId"`
	KeyName     string    `json:"keyName"`
	FeatureID   string    `json:"featureId"`
	FeatureName string    `json:"featureName"`
	Locale      string    `json:"locale"`
	Value       string    `json:"value"`
	IsReviewed  bool      `json:"isReviewed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PaginationMeta describes the page returned by a paginated endpoint.
type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Page is a generic paginated response.
type Page[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// SortOrder is the direction applied to SearchParams.SortBy.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchParams filters the translation search endpoint. Zero values are
// omitted from the request.
type SearchParams struct {
	Q         string    `json:"q,omitempty"`
	Locale    string    `json:"locale,omitempty"`
	FeatureID string    `json:"featureId,omitempty"`
	ProjectID string    `json:"projectId,omitempty"`
	Page      int       `json:"page,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
}

// MissingTranslation lists the locales a key still lacks.
type MissingTranslation struct {
	KeyID          string   `json:"keyId"`
	KeyName        string   `json:"keyName"`
	FeatureID      string   `json:"featureId"`
	FeatureName    string   `json:"featureName"`
	ProjectID      string   `json:"projectId"`
	ProjectName    string   `json:"projectName"`
	MissingLocales []string `json:"missingLocales"`
	FilledLocales  []string `json:"filledLocales"`
}

// LocaleCompletion is the completion ratio for one locale.
type LocaleCompletion struct {
	Locale     string  `json:"locale"`
	Total      int     `json:"total"`
	Filled     int     `json:"filled"`
	Percentage float64 `json:"percentage"`
}

// FeatureCompletion is the completion ratio for one feature.
type FeatureCompletion struct {
	FeatureID   string  `json:"featureId"`
	FeatureName string  `json:"featureName"`
	Total       int     `json:"total"`
	Filled      int     `json:"filled"`
	Percentage  float64 `json:"percentage"`
}

// RecentTranslation is an entry of the recent activity feed.
type RecentTranslation struct {
	KeyID     string    `json:"keyId"`
	KeyName   string    `json:"keyName"`
	Locale    string    `json:"locale"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActiveFeature ranks features by translation volume.
type ActiveFeature struct {
	FeatureID        string `json:"featureId"`
	FeatureName      string `json:"featureName"`
	TranslationCount int    `json:"translationCount"`
}

// FeatureRef is a lightweight feature reference.
type FeatureRef struct {
	FeatureID   string `json:"featureId"`
	FeatureName string `json:"featureName"`
}

// DuplicateKey is a key name declared in more than one feature.
type DuplicateKey struct {
	KeyName  string       `json:"keyName"`
	Features []FeatureRef `json:"features"`
}

// Statistics is the aggregate snapshot computed by the API. It is display
// data only and never mutated locally.
type Statistics struct {
	MissingTranslations                   []MissingTranslation `json:"missingTranslations"`
	OverallCompletionPercentage           float64              `json:"overallCompletionPercentage"`
	CompletionByLocale                    []LocaleCompletion   `json:"completionByLocale"`
	CompletionByFeature                   []FeatureCompletion  `json:"completionByFeature"`
	EmptyValueCount                       int                  `json:"emptyValueCount"`
	RecentlyUpdated                       []RecentTranslation  `json:"recentlyUpdated"`
	TotalTranslations                     int                  `json:"totalTranslations"`
	MostActiveFeatures                    []ActiveFeature      `json:"mostActiveFeatures"`
	OrphanedKeysCount                     int                  `json:"orphanedKeysCount"`
	DuplicateKeys                         []DuplicateKey       `json:"duplicateKeys"`
	ActiveFeaturesWithMissingTranslations int                  `json:"activeFeaturesWithMissingTranslations"`
}

// StatisticsFilter narrows the statistics aggregate.
type StatisticsFilter struct {
	FeatureID string `json:"featureId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

// BulkUploadResult is reported by the bulk upload endpoint and trusted as-is.
type BulkUploadResult struct {
	Created int    `json:"created,omitempty"`
	Updated int    `json:"updated,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
	Message string `json:"message,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

// AITranslateResult is returned when translating a single key.
type AITranslateResult struct {
	Success         bool          `json:"success"`
	TranslatedCount int           `json:"translatedCount"`
	SkippedCount    int           `json:"skippedCount"`
	Errors          []string      `json:"errors"`
	Translations    []Translation `json:"translations"`
}

// AIBatchStatistics summarizes a batch translation job.
type AIBatchStatistics struct {
	TotalKeys            int     `json:"totalKeys"`
	ProcessedKeys        int     `json:"processedKeys"`
	EstimatedTimeSeconds float64 `json:"estimatedTimeSeconds"`
}

// AITranslateBatchResult is returned when translating a feature or project.
type AITranslateBatchResult struct {
	Success         bool              `json:"success"`
	TranslatedCount int               `json:"translatedCount"`
	SkippedCount    int               `json:"skippedCount"`
	Errors          []string          `json:"errors"`
	Statistics      AIBatchStatistics `json:"statistics"`
}

// CreateProjectInput is the project create dialog payload.
type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectInput carries only the fields being changed.
type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateFeatureInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId"`
}

type UpdateFeatureInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateKeyInput struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	FeatureID   string `json:"featureId"`
}

type UpdateKeyInput struct {
	Key         *string `json:"key,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateLanguageInput struct {
	Locale    string `json:"locale"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	ProjectID string `json:"projectId,omitempty"`
}

type UpdateLanguageInput struct {
	Locale   *string `json:"locale,omitempty"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type CreateTranslationInput struct {
	KeyID  string `json:"keyId"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

// LocaleValue is one locale write inside a bulk upsert.
type LocaleValue struct {
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

// BulkUpsertInput applies several locale values for one key in one request.
type BulkUpsertInput struct {
	KeyID        string        `json:"keyId"`
	Translations []LocaleValue `json:"translations"`
}

type AITranslateInput struct {
	KeyID         string   `json:"keyId"`
	TargetLocales []string `json:"targetLocales"`
}

// AITranslateBatchInput targets a feature or a whole project. An empty
// TargetLocales means every active language.
type AITranslateBatchInput struct {
	FeatureID     string   `json:"featureId,omitempty"`
	ProjectID     string   `json:"projectId,omitempty"`
	TargetLocales []string `json:"targetLocales,omitempty"`
}

// ProjectClient covers the projects resource.
type ProjectClient interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id string) (Project, error)
	CreateProject(ctx context.Context, input CreateProjectInput) (Project, error)
	UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// FeatureClient covers the features resource.
type FeatureClient interface {
	ListFeatures(ctx context.Context, projectID string) ([]Feature, error)
	GetFeature(ctx context.Context, id string) (Feature, error)
	CreateFeature(ctx context.Context, input CreateFeatureInput) (Feature, error)
	UpdateFeature(ctx context.Context, id string, input UpdateFeatureInput) (Feature, error)
	DeleteFeature(ctx context.Context, id string) error
}

// KeyClient covers the keys resource.
type KeyClient interface {
	ListKeys(ctx context.Context, featureID string) ([]Key, error)
	GetKey(ctx context.Context, id string) (KeyWithFeature, error)
	CreateKey(ctx context.Context, input CreateKeyInput) (Key, error)
	UpdateKey(ctx context.Context, id string, input UpdateKeyInput) (Key, error)
	DeleteKey(ctx context.Context, id string) error
}

// LanguageClient covers the languages resource.
type LanguageClient interface {
	ListLanguages(ctx context.Context, projectID string) ([]Language, error)
	CreateLanguage(ctx context.Context, input CreateLanguageInput) (Language, error)
	UpdateLanguage(ctx context.Context, id string, input UpdateLanguageInput) (Language, error)
	DeleteLanguage(ctx context.Context, id string) error
}

// TranslationClient covers translations, including bulk endpoints.
type TranslationClient interface {
	ListTranslations(ctx context.Context, keyID string) ([]Translation, error)
	SearchTranslations(ctx context.Context, params SearchParams) (Page[TranslationListItem], error)
	CreateTranslation(ctx context.Context, input CreateTranslationInput) (Translation, error)
	UpdateTranslation(ctx context.Context, id, value string) (Translation, error)
	DeleteTranslation(ctx context.Context, id string) error
	BulkUpsert(ctx context.Context, input BulkUpsertInput) ([]Translation, error)
	BulkUpload(ctx context.Context, featureID, filename string, file io.Reader) (BulkUploadResult, error)
}

// StatisticsClient fetches the statistics aggregate.
type StatisticsClient interface {
	Statistics(ctx context.Context, filter StatisticsFilter) (Statistics, error)
}

// AITranslateClient triggers server-side machine translation jobs.
type AITranslateClient interface {
	AITranslate(ctx context.Context, input AITranslateInput) (AITranslateResult, error)
	AITranslateBatch(ctx context.Context, input AITranslateBatchInput) (AITranslateBatchResult, error)
}

// Backend is the union of every resource client the dashboard consumes.
type Backend interface {
	ProjectClient
	FeatureClient
	KeyClient
	LanguageClient
	TranslationClient
	StatisticsClient
	AITranslateClient
}

// RefreshHook is notified after cached reads were invalidated.
type RefreshHook interface {
	Invalidated(ctx context.Context, event InvalidationEvent) error
}

type noopRefreshHook struct{}

func (noopRefreshHook) Invalidated(context.Context, InvalidationEvent) error { return nil }

// InvalidationEvent describes which cached reads a mutation discarded.
type InvalidationEvent struct {
	Reason     string       `json:"reason"`
	ObjectID   string       `json:"objectId,omitempty"`
	Patterns   []KeyPattern `json:"patterns"`
	OccurredAt time.Time    `json:"occurredAt"`
}
