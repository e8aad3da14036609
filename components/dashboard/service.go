package dashboard

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/goliatone/go-l10n-dashboard/pkg/activity"
)

// DefaultCacheTTL is how long cached reads stay fresh.
const DefaultCacheTTL = 30 * time.Second

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap the REST client, stores and hooks.
type Options struct {
	Backend        Backend
	Cache          *QueryCache
	CacheTTL       time.Duration
	Selection      *ProjectSelection
	Validator      FormValidator
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	Logger         *slog.Logger
	Now            func() time.Time
}

// Service orchestrates reads, mutations and the derived workflows of the
// localization dashboard on top of the remote API.
type Service struct {
	opts     Options
	cache    *QueryCache
	activity *activity.Emitter
	tracker  *MutationTracker
	focus    *FocusSessions
	logger   *slog.Logger
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Cache == nil {
		opts.Cache = NewQueryCache(opts.CacheTTL)
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Selection == nil {
		opts.Selection = &ProjectSelection{store: NewMemoryKVStore(), key: SelectionStorageKey}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:     opts,
		cache:    opts.Cache,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
		tracker:  NewMutationTracker(),
		focus:    NewFocusSessions(),
		logger:   opts.Logger,
	}
}

// Cache exposes the read cache, mainly for transports that report its size.
func (s *Service) Cache() *QueryCache { return s.cache }

// Tracker exposes per-entity mutation status.
func (s *Service) Tracker() *MutationTracker { return s.tracker }

// Selection returns the persisted project selection.
func (s *Service) Selection() *ProjectSelection { return s.opts.Selection }

// SelectedProject returns the selected project id, empty when none.
func (s *Service) SelectedProject() string { return s.opts.Selection.Selected() }

// SelectProject persists id as the selected project. An empty id clears it.
func (s *Service) SelectProject(ctx context.Context, id string) error {
	if err := s.opts.Selection.Select(ctx, id); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "l10n.project.select", map[string]any{"project_id": id})
	return nil
}

func (s *Service) backend() (Backend, error) {
	if s.opts.Backend == nil {
		return nil, ErrMissingBackend
	}
	return s.opts.Backend, nil
}

func (s *Service) now() time.Time { return s.opts.Now() }

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) emitActivity(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	meta := ActivityFrom(ctx)
	err := s.activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "activity hook failed", slog.String("verb", verb), logError(err))
	}
}

// Invalidate discards cached reads for m and publishes the refresh event. It
// is called after every successful mutation and is exported for transports
// that learn about writes made elsewhere.
func (s *Service) Invalidate(ctx context.Context, m Mutation, scope MutationScope) InvalidationEvent {
	patterns := InvalidationsFor(m, scope)
	removed := s.cache.Invalidate(patterns...)
	event := InvalidationEvent{
		Reason:     string(m),
		ObjectID:   scope.ID,
		Patterns:   patterns,
		OccurredAt: s.now(),
	}
	if err := s.opts.RefreshHook.Invalidated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "refresh hook failed", slog.String("mutation", string(m)), logError(err))
	}
	s.logger.DebugContext(ctx, "cache invalidated",
		slog.String("mutation", string(m)),
		slog.Int("entries", removed),
	)
	return event
}

// mutation describes one write for runMutation.
type mutation struct {
	kind       Mutation
	form       string
	payload    any
	trackID    string
	objectType string
}

// runMutation validates the payload, calls the backend and, on success,
// invalidates, records telemetry and emits activity. Failures are returned
// untouched so dialogs can show the server message.
func runMutation[T any](
	ctx context.Context,
	s *Service,
	m mutation,
	call func(context.Context, Backend) (T, error),
	describe func(T) (MutationScope, map[string]any),
) (T, error) {
	var zero T
	backend, err := s.backend()
	if err != nil {
		return zero, err
	}
	if m.form != "" {
		if err := s.opts.Validator.Validate(m.form, m.payload); err != nil {
			return zero, err
		}
	}
	trackID := m.trackID
	if trackID == "" {
		trackID = string(m.kind)
	}
	s.tracker.Begin(trackID)
	result, err := call(ctx, backend)
	if err != nil {
		s.tracker.Fail(trackID, err)
		s.logger.WarnContext(ctx, "mutation failed",
			slog.String("mutation", string(m.kind)),
			slog.String("object_id", trackID),
			logError(err),
		)
		return zero, err
	}
	s.tracker.Succeed(trackID)

	scope, metadata := describe(result)
	s.Invalidate(ctx, m.kind, scope)

	payload := map[string]any{"object_id": scope.ID}
	maps.Copy(payload, metadata)
	s.recordTelemetry(ctx, "l10n."+string(m.kind), payload)
	s.emitActivity(ctx, string(m.kind), m.objectType, scope.ID, metadata)
	return result, nil
}

// Projects lists every project.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	backend, err := s.backend()
	if err != nil {
		return nil, err
	}
	return Query(ctx, s.cache, ProjectsKey(), backend.ListProjects)
}

func (s *Service) Project(ctx context.Context, id string) (Project, error) {
	backend, err := s.backend()
	if err != nil {
		return Project{}, err
	}
	return Query(ctx, s.cache, ProjectKey(id), func(ctx context.Context) (Project, error) {
		return backend.GetProject(ctx, id)
	})
}

// Features lists the features of projectID, or every feature when empty.
func (s *Service) Features(ctx context.Context, projectID string) ([]Feature, error) {
	backend, err := s.backend()
	if err != nil {
		return nil, err
	}
	return Query(ctx, s.cache, FeaturesKey(projectID), func(ctx context.Context) ([]Feature, error) {
		return backend.ListFeatures(ctx, projectID)
	})
}

func (s *Service) Feature(ctx context.Context, id string) (Feature, error) {
	backend, err := s.backend()
	if err != nil {
		return Feature{}, err
	}
	return Query(ctx, s.cache, FeatureKey(id), func(ctx context.Context) (Feature, error) {
		return backend.GetFeature(ctx, id)
	})
}

func (s *Service) Keys(ctx context.Context, featureID string) ([]Key, error) {
	backend, err := s.backend()
	if err != nil {
		return nil, err
	}
	return Query(ctx, s.cache, KeysKey(featureID), func(ctx context.Context) ([]Key, error) {
		return backend.ListKeys(ctx, featureID)
	})
}

func (s *Service) Key(ctx context.Context, id string) (KeyWithFeature, error) {
	backend, err := s.backend()
	if err != nil {
		return KeyWithFeature{}, err
	}
	return Query(ctx, s.cache, KeyKey(id), func(ctx context.Context) (KeyWithFeature, error) {
		return backend.GetKey(ctx, id)
	})
}

// Languages lists the languages of projectID, or every language when empty.
func (s *Service) Languages(ctx context.Context, projectID string) ([]Language, error) {
	backend, err := s.backend()
	if err != nil {
		return nil, err
	}
	return Query(ctx, s.cache, LanguagesKey(projectID), func(ctx context.Context) ([]Language, error) {
		return backend.ListLanguages(ctx, projectID)
	})
}

// ActiveLanguages keeps the languages currently accepting translations.
func (s *Service) ActiveLanguages(ctx context.Context, projectID string) ([]Language, error) {
	languages, err := s.Languages(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(slices.Clone(languages), func(l Language) bool { return !l.IsActive }), nil
}

// TranslationsForKey lists every translation of keyID.
func (s *Service) TranslationsForKey(ctx context.Context, keyID string) ([]Translation, error) {
	backend, err := s.backend()
	if err != nil {
		return nil, err
	}
	return Query(ctx, s.cache, TranslationsKey(keyID), func(ctx context.Context) ([]Translation, error) {
		return backend.ListTranslations(ctx, keyID)
	})
}

// AvailableLocales lists the active languages keyID has no translation for,
// the choices of the create-translation dialog.
func (s *Service) AvailableLocales(ctx context.Context, projectID, keyID string) ([]Language, error) {
	languages, err := s.ActiveLanguages(ctx, projectID)
	if err != nil {
		return nil, err
	}
	translations, err := s.TranslationsForKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(translations))
	for _, t := range translations {
		taken[t.Locale] = true
	}
	return slices.DeleteFunc(languages, func(l Language) bool { return taken[l.Locale] }), nil
}

// SearchTranslations runs one translation search. Missing pagination and sort
// fall back to page 1, 25 rows, newest first.
func (s *Service) SearchTranslations(ctx context.Context, params SearchParams) (Page[TranslationListItem], error) {
	backend, err := s.backend()
	if err != nil {
		return Page[TranslationListItem]{}, err
	}
	params = normalizeSearchParams(params)
	return Query(ctx, s.cache, SearchKey(params), func(ctx context.Context) (Page[TranslationListItem], error) {
		return backend.SearchTranslations(ctx, params)
	})
}

// RunSearch issues the current parameters of state and delivers the response
// unless a newer search was issued meanwhile. The bool reports whether the
// response was accepted.
func (s *Service) RunSearch(ctx context.Context, state *SearchState) (Page[TranslationListItem], bool, error) {
	ticket := state.Issue()
	page, err := s.SearchTranslations(ctx, ticket.Params)
	if err != nil {
		return Page[TranslationListItem]{}, state.Accept(ticket), err
	}
	return page, state.Deliver(ticket, page), nil
}

// Statistics fetches the aggregate for filter.
func (s *Service) Statistics(ctx context.Context, filter StatisticsFilter) (Statistics, error) {
	backend, err := s.backend()
	if err != nil {
		return Statistics{}, err
	}
	return Query(ctx, s.cache, StatisticsKey(filter), func(ctx context.Context) (Statistics, error) {
		return backend.Statistics(ctx, filter)
	})
}

func normalizeSearchParams(p SearchParams) SearchParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
	if p.Locale == AllFilter {
		p.Locale = ""
	}
	if p.FeatureID == AllFilter {
		p.FeatureID = ""
	}
	return p
}
