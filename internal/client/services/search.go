package services

import (
	"context"
	"sync"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
	"github.com/rodion-stepanov/vaiti-web/internal/logging"
)

// User-facing store messages. Structured API errors are surfaced verbatim;
// these are the operation-specific fallbacks.
const (
	msgSelectResumeSearch = "Пожалуйста, выберите резюме для поиска."
	msgSelectResume       = "Пожалуйста, выберите резюме."
	msgVacanciesFailed    = "Не удалось загрузить вакансии."
	msgFilterFailed       = "Не удалось отфильтровать вакансии."
	msgApplyFailed        = "Произошла ошибка при отправке откликов."
	msgApplySuccess       = "Отклики успешно отправлены!"

	msgSchedulersFailed      = "Не удалось загрузить автоотклики."
	msgSchedulerCreateFailed = "Не удалось создать автоотклик."
	msgSchedulerToggleFailed = "Не удалось изменить статус автоотклика."
	msgSchedulerDeleteFailed = "Не удалось удалить автоотклик."
)

// Batch sizes the web client uses for search and bulk apply.
const (
	searchCount = 50
	applyCount  = 100
)

// SearchSnapshot is a point-in-time copy of the store state for the
// presentation layer. Schedulers are exposed separately through
// Search.Schedulers() because of the optimistic overlay.
type SearchSnapshot struct {
	Filters          models.Filters
	Resumes          []models.Resume
	SelectedResumeID string
	Vacancies        []models.Vacancy
	FilteredCount    *int

	IsLoading           bool
	IsFetchingResumes   bool
	IsFiltering         bool
	IsApplying          bool
	IsLoadingSchedulers bool

	Error               string
	ApplySuccessMessage string
	SchedulerError      string
}

// Search owns the search filter state, fetched postings, linked resumes,
// apply operations and the auto-apply scheduler collection.
//
// Each network-backed operation owns an independent busy flag and clears the
// shared error/success channel at its start, so distinct operation kinds in
// flight simultaneously do not stomp each other's indicator. Same-kind
// re-entrancy is prevented by the presentation layer (disabled-while-busy).
type Search struct {
	client api.Client
	log    logging.Logger

	mu               sync.Mutex
	filters          models.Filters
	resumes          []models.Resume
	selectedResumeID string
	vacancies        []models.Vacancy
	filteredCount    *int

	isLoading           bool
	isFetchingResumes   bool
	isFiltering         bool
	isApplying          bool
	isLoadingSchedulers bool

	errMsg       string
	successMsg   string
	schedulerErr string

	// Committed scheduler list plus the transient per-item toggle overrides.
	// Only confirmed server responses ever touch the committed list; the
	// overrides exist solely for the Schedulers() projection.
	schedulers     []models.Scheduler
	pendingToggles map[int64]struct{}
}

// NewSearch constructs the search store.
func NewSearch(client api.Client, log logging.Logger) *Search {
	return &Search{
		client:         client,
		log:            log.With("service", "search"),
		filters:        models.DefaultFilters(),
		pendingToggles: make(map[int64]struct{}),
	}
}

// clearDerived resets everything derived from the previous criteria. Must be
// called with the lock held on every filter or resume-selection mutation so
// stale results are never shown against new criteria.
func (s *Search) clearDerived() {
	s.filteredCount = nil
	s.errMsg = ""
	s.successMsg = ""
}

// SetFilters replaces the filter set and clears derived state.
func (s *Search) SetFilters(f models.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.clearDerived()
}

// UpdateFilters mutates the filters in place and clears derived state.
func (s *Search) UpdateFilters(mutate func(*models.Filters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.filters)
	s.clearDerived()
}

// SelectResume changes the selected resume and clears derived state.
func (s *Search) SelectResume(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedResumeID = id
	s.clearDerived()
}

// FetchResumes refreshes the linked resume list. Best effort: failures are
// logged and leave the prior list and selection untouched. When nothing is
// selected yet and the result is non-empty, the first resume is selected.
func (s *Search) FetchResumes(ctx context.Context) {
	s.mu.Lock()
	s.isFetchingResumes = true
	s.mu.Unlock()

	resumes, err := s.client.Resumes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isFetchingResumes = false
	if err != nil {
		s.log.Warn(ctx, "failed to fetch resumes", "error", err)
		return
	}

	s.resumes = resumes
	if s.selectedResumeID == "" && len(resumes) > 0 {
		s.selectedResumeID = resumes[0].ID
	}
}

// FetchVacancies loads all postings matching the current filters.
func (s *Search) FetchVacancies(ctx context.Context) {
	s.mu.Lock()
	if s.selectedResumeID == "" {
		s.errMsg = msgSelectResumeSearch
		s.mu.Unlock()
		return
	}
	payload := s.filters.SearchPayload(s.selectedResumeID, searchCount)
	s.isLoading = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	vacancies, err := s.client.SearchVacancies(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.errMsg = api.ErrorMessage(err, msgVacanciesFailed)
		s.vacancies = nil
		return
	}
	s.vacancies = vacancies
}

// FetchFilteredCount previews how many postings the current filters match.
func (s *Search) FetchFilteredCount(ctx context.Context) {
	s.mu.Lock()
	if s.selectedResumeID == "" {
		s.errMsg = msgSelectResume
		s.mu.Unlock()
		return
	}
	payload := s.filters.CountPayload(s.selectedResumeID)
	s.isFiltering = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	count, err := s.client.FilteredCount(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isFiltering = false
	if err != nil {
		s.errMsg = api.ErrorMessage(err, msgFilterFailed)
		return
	}
	s.filteredCount = &count
}

// Apply submits a bulk application for the previewed batch. Success consumes
// the preview (filteredCount drops to zero) and sets the success message;
// failure leaves the preview untouched.
func (s *Search) Apply(ctx context.Context) {
	s.mu.Lock()
	if s.selectedResumeID == "" {
		s.errMsg = msgSelectResume
		s.mu.Unlock()
		return
	}
	payload := s.filters.ApplyPayload(s.selectedResumeID, applyCount)
	s.isApplying = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	err := s.client.Apply(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isApplying = false
	if err != nil {
		s.errMsg = api.ErrorMessage(err, msgApplyFailed)
		return
	}
	s.successMsg = msgApplySuccess
	zero := 0
	s.filteredCount = &zero
}

// Snapshot returns a copy of the store state for rendering.
func (s *Search) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SearchSnapshot{
		Filters:             s.filters,
		Resumes:             append([]models.Resume(nil), s.resumes...),
		SelectedResumeID:    s.selectedResumeID,
		Vacancies:           append([]models.Vacancy(nil), s.vacancies...),
		IsLoading:           s.isLoading,
		IsFetchingResumes:   s.isFetchingResumes,
		IsFiltering:         s.isFiltering,
		IsApplying:          s.isApplying,
		IsLoadingSchedulers: s.isLoadingSchedulers,
		Error:               s.errMsg,
		ApplySuccessMessage: s.successMsg,
		SchedulerError:      s.schedulerErr,
	}
	if s.filteredCount != nil {
		count := *s.filteredCount
		snap.FilteredCount = &count
	}
	return snap
}
