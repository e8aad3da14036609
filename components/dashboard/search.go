package dashboard

import (
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPageSize       = 25
	DefaultSortBy         = "updatedAt"
	DefaultSortOrder      = SortDesc
	DefaultSearchDebounce = 300 * time.Millisecond
	// AllFilter is the select value meaning "no filter".
	AllFilter = "all"
)

// SearchTicket identifies one issued search. Only the response to the most
// recent ticket is accepted.
type SearchTicket struct {
	Seq    uint64
	Params SearchParams
}

// SearchOptions configures a SearchState.
type SearchOptions struct {
	Debounce time.Duration
	PageSize int
	// OnSettle is called from the debounce timer once typing settles.
	OnSettle func(SearchTicket)
}

// SearchState holds the filters of the translation table. Typed queries are
// debounced; every change resets pagination to the first page.
type SearchState struct {
	mu        sync.Mutex
	opts      SearchOptions
	input     string
	query     string
	locale    string
	featureID string
	projectID string
	page      int
	pageSize  int
	sortBy    string
	sortOrder SortOrder
	seq       uint64
	timer     *time.Timer

	result   Page[TranslationListItem]
	resultOK bool
}

func NewSearchState(opts SearchOptions) *SearchState {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultSearchDebounce
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &SearchState{
		opts:      opts,
		locale:    AllFilter,
		featureID: AllFilter,
		page:      1,
		pageSize:  opts.PageSize,
		sortBy:    DefaultSortBy,
		sortOrder: DefaultSortOrder,
	}
}

// Type records raw input. The query applies once no further input arrives
// within the debounce window.
func (s *SearchState) Type(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = q
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.Debounce, s.settle)
}

func (s *SearchState) settle() {
	s.mu.Lock()
	s.query = s.input
	s.page = 1
	s.timer = nil
	ticket := s.issueLocked()
	onSettle := s.opts.OnSettle
	s.mu.Unlock()
	if onSettle != nil {
		onSettle(ticket)
	}
}

// SetQuery applies q immediately, bypassing the debounce.
func (s *SearchState) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.input = q
	s.query = q
	s.page = 1
}

func (s *SearchState) SetLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = filterValue(locale)
	s.page = 1
}

func (s *SearchState) SetFeature(featureID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featureID = filterValue(featureID)
	s.page = 1
}

// SetProject scopes the search to a project. It is not an operator filter.
func (s *SearchState) SetProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID = strings.TrimSpace(projectID)
	s.page = 1
}

func (s *SearchState) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = max(page, 1)
}

func (s *SearchState) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		size = s.opts.PageSize
	}
	s.pageSize = size
	s.page = 1
}

// ToggleSort flips the order when column is already sorted, otherwise sorts
// column descending.
func (s *SearchState) ToggleSort(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortBy == column {
		if s.sortOrder == SortAsc {
			s.sortOrder = SortDesc
		} else {
			s.sortOrder = SortAsc
		}
		return
	}
	s.sortBy = column
	s.sortOrder = SortDesc
}

// ClearFilters resets the query, locale and feature filters.
func (s *SearchState) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.input = ""
	s.query = ""
	s.locale = AllFilter
	s.featureID = AllFilter
	s.page = 1
}

// HasActiveFilters reports whether the query, locale or feature filter is set.
func (s *SearchState) HasActiveFilters() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query != "" || s.locale != AllFilter || s.featureID != AllFilter
}

// Params converts the state into request parameters.
func (s *SearchState) Params() SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paramsLocked()
}

func (s *SearchState) paramsLocked() SearchParams {
	p := SearchParams{
		Q:         s.query,
		ProjectID: s.projectID,
		Page:      s.page,
		Limit:     s.pageSize,
		SortBy:    s.sortBy,
		SortOrder: s.sortOrder,
	}
	if s.locale != AllFilter {
		p.Locale = s.locale
	}
	if s.featureID != AllFilter {
		p.FeatureID = s.featureID
	}
	return p
}

// Issue starts a new search and supersedes every earlier ticket.
func (s *SearchState) Issue() SearchTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked()
}

func (s *SearchState) issueLocked() SearchTicket {
	s.seq++
	return SearchTicket{Seq: s.seq, Params: s.paramsLocked()}
}

// Accept reports whether ticket is still the latest issued search.
func (s *SearchState) Accept(ticket SearchTicket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket.Seq == s.seq
}

// Deliver stores result when ticket is still current. Stale responses are
// dropped and Deliver returns false.
func (s *SearchState) Deliver(ticket SearchTicket, result Page[TranslationListItem]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket.Seq != s.seq {
		return false
	}
	s.result = result
	s.resultOK = true
	return true
}

// Result returns the last accepted response.
func (s *SearchState) Result() (Page[TranslationListItem], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.resultOK
}

// Stop cancels a pending debounce.
func (s *SearchState) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// SearchStateFromQuery builds a state from URL query values (q, locale,
// featureId, projectId, page, limit, sortBy, sortOrder).
func SearchStateFromQuery(values url.Values) *SearchState {
	s := NewSearchState(SearchOptions{})
	if q := values.Get("q"); q != "" {
		s.SetQuery(q)
	}
	s.SetLocale(values.Get("locale"))
	s.SetFeature(values.Get("featureId"))
	s.SetProject(values.Get("projectId"))
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil {
		s.SetPageSize(limit)
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		s.SetPage(page)
	}
	if sortBy := strings.TrimSpace(values.Get("sortBy")); sortBy != "" {
		s.mu.Lock()
		s.sortBy = sortBy
		s.sortOrder = SortDesc
		if SortOrder(values.Get("sortOrder")) == SortAsc {
			s.sortOrder = SortAsc
		}
		s.mu.Unlock()
	} else if SortOrder(values.Get("sortOrder")) == SortAsc {
		s.mu.Lock()
		s.sortOrder = SortAsc
		s.mu.Unlock()
	}
	return s
}

// Query encodes params back into URL values, omitting defaults.
func (p SearchParams) Query() url.Values {
	values := url.Values{}
	set := func(k, v string) {
		if v != "" {
			values.Set(k, v)
		}
	}
	set("q", p.Q)
	set("locale", p.Locale)
	set("featureId", p.FeatureID)
	set("projectId", p.ProjectID)
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	set("sortBy", p.SortBy)
	set("sortOrder", string(p.SortOrder))
	return values
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return AllFilter
	}
	return v
}
