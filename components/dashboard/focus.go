package dashboard

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FocusTask is one missing translation in a focus session.
type FocusTask struct {
	KeyID       string `json:"keyId"`
	KeyName     string `json:"keyName"`
	FeatureName string `json:"featureName"`
	Locale      string `json:"locale"`
}

// BuildFocusQueue lists the missing translations that lack locale, in the
// order statistics reported them.
func BuildFocusQueue(stats Statistics, locale string) []FocusTask {
	queue := make([]FocusTask, 0)
	for _, item := range stats.MissingTranslations {
		if !slices.Contains(item.MissingLocales, locale) {
			continue
		}
		queue = append(queue, FocusTask{
			KeyID:       item.KeyID,
			KeyName:     item.KeyName,
			FeatureName: item.FeatureName,
			Locale:      locale,
		})
	}
	return queue
}

// FocusSubmitter persists a focus session answer.
type FocusSubmitter interface {
	SubmitFocus(ctx context.Context, task FocusTask, value string) (Translation, error)
}

// StreakThreshold is the streak above which the session is "on fire".
const StreakThreshold = 2

// FocusSession walks a queue of missing translations one at a time. Its
// methods are not safe for concurrent use; FocusSessions.With serializes
// access for sessions shared through a server.
type FocusSession struct {
	ID     string      `json:"id"`
	Locale string      `json:"locale"`
	Queue  []FocusTask `json:"queue"`

	mu        sync.Mutex
	index     int
	streak    int
	submitted int
	skipped   int
}

// NewFocusSession starts a session over queue.
func NewFocusSession(locale string, queue []FocusTask) *FocusSession {
	return &FocusSession{
		ID:     uuid.NewString(),
		Locale: locale,
		Queue:  queue,
	}
}

// Current returns the task awaiting an answer.
func (s *FocusSession) Current() (FocusTask, bool) {
	if s.Done() {
		return FocusTask{}, false
	}
	return s.Queue[s.index], true
}

// Done reports whether every task was answered or skipped.
func (s *FocusSession) Done() bool { return s.index >= len(s.Queue) }

// Submit saves value for the current task and advances. Blank values are
// rejected with ErrEmptyValue and leave the session unchanged; failed saves
// do not advance.
func (s *FocusSession) Submit(ctx context.Context, submitter FocusSubmitter, value string) (Translation, error) {
	task, ok := s.Current()
	if !ok {
		return Translation{}, ErrQueueFinished
	}
	if strings.TrimSpace(value) == "" {
		return Translation{}, ErrEmptyValue
	}
	t, err := submitter.SubmitFocus(ctx, task, value)
	if err != nil {
		return Translation{}, err
	}
	s.streak++
	s.submitted++
	s.index++
	return t, nil
}

// Skip advances without saving and resets the streak.
func (s *FocusSession) Skip() error {
	if s.Done() {
		return ErrQueueFinished
	}
	s.streak = 0
	s.skipped++
	s.index++
	return nil
}

func (s *FocusSession) Streak() int { return s.streak }

// OnFire reports a streak above StreakThreshold.
func (s *FocusSession) OnFire() bool { return s.streak > StreakThreshold }

// Position returns the zero-based index of the current task and the queue
// length.
func (s *FocusSession) Position() (int, int) { return s.index, len(s.Queue) }

// Progress is the percentage of tasks already handled.
func (s *FocusSession) Progress() float64 {
	if len(s.Queue) == 0 {
		return 100
	}
	return float64(s.index) / float64(len(s.Queue)) * 100
}

// FocusSummary is the serializable state of a session.
type FocusSummary struct {
	ID        string     `json:"id"`
	Locale    string     `json:"locale"`
	Current   *FocusTask `json:"current,omitempty"`
	Index     int        `json:"index"`
	Total     int        `json:"total"`
	Streak    int        `json:"streak"`
	OnFire    bool       `json:"onFire"`
	Submitted int        `json:"submitted"`
	Skipped   int        `json:"skipped"`
	Progress  float64    `json:"progress"`
	Done      bool       `json:"done"`
}

func (s *FocusSession) Summary() FocusSummary {
	summary := FocusSummary{
		ID:        s.ID,
		Locale:    s.Locale,
		Index:     s.index,
		Total:     len(s.Queue),
		Streak:    s.streak,
		OnFire:    s.OnFire(),
		Submitted: s.submitted,
		Skipped:   s.skipped,
		Progress:  s.Progress(),
		Done:      s.Done(),
	}
	if task, ok := s.Current(); ok {
		summary.Current = &task
	}
	return summary
}

// TranslationMemory returns the key's other-locale translations shown as
// context next to the focus input.
func TranslationMemory(translations []Translation, currentLocale string) []Translation {
	out := make([]Translation, 0, len(translations))
	for _, t := range translations {
		if currentLocale != "" && t.Locale == currentLocale {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FocusSessions keeps the sessions of a server process by id.
type FocusSessions struct {
	mu       sync.Mutex
	sessions map[string]*FocusSession
}

func NewFocusSessions() *FocusSessions {
	return &FocusSessions{sessions: make(map[string]*FocusSession)}
}

// Add registers s and returns its id.
func (r *FocusSessions) Add(s *FocusSession) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s.ID
}

// With runs fn on the session with id while holding that session's lock.
func (r *FocusSessions) With(id string, fn func(*FocusSession) error) (bool, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return true, fn(s)
}

// Remove ends the session with id.
func (r *FocusSessions) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
