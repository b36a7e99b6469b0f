package services

import (
	"context"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
)

// FetchSchedulers replaces the committed scheduler list with the server's.
func (s *Search) FetchSchedulers(ctx context.Context) {
	s.mu.Lock()
	s.isLoadingSchedulers = true
	s.schedulerErr = ""
	s.mu.Unlock()

	schedulers, err := s.client.Schedulers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoadingSchedulers = false
	if err != nil {
		s.schedulerErr = api.ErrorMessage(err, msgSchedulersFailed)
		return
	}
	s.schedulers = schedulers
}

// GetScheduler fetches a single rule for display. Returns nil on failure
// (the error lands in the scheduler error channel).
func (s *Search) GetScheduler(ctx context.Context, id int64) *models.Scheduler {
	scheduler, err := s.client.Scheduler(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.schedulerErr = api.ErrorMessage(err, msgSchedulersFailed)
		s.mu.Unlock()
		return nil
	}
	return scheduler
}

// CreateScheduler persists the current filters and selected resume as a new
// named auto-apply rule, then refreshes the list.
func (s *Search) CreateScheduler(ctx context.Context, name string) {
	s.mu.Lock()
	if s.selectedResumeID == "" {
		s.schedulerErr = msgSelectResume
		s.mu.Unlock()
		return
	}
	payload := s.filters.CreatePayload(name, s.selectedResumeID)
	s.schedulerErr = ""
	s.mu.Unlock()

	if _, err := s.client.UpsertScheduler(ctx, payload); err != nil {
		s.mu.Lock()
		s.schedulerErr = api.ErrorMessage(err, msgSchedulerCreateFailed)
		s.mu.Unlock()
		return
	}

	s.FetchSchedulers(ctx)
}

// ToggleScheduler flips a rule's enabled flag through a full upsert.
//
// The flip is optimistic: a transient override makes Schedulers() show the
// inverted flag immediately, while the committed list is only touched by the
// confirmed server object. The override is discarded when the request
// settles either way, so a rejected call visually reverts on its own.
func (s *Search) ToggleScheduler(ctx context.Context, id int64) {
	s.mu.Lock()
	var target *models.Scheduler
	for i := range s.schedulers {
		if s.schedulers[i].ID == id {
			target = &s.schedulers[i]
			break
		}
	}
	if target == nil {
		s.schedulerErr = msgSchedulerToggleFailed
		s.mu.Unlock()
		return
	}
	payload := target.TogglePayload()
	s.pendingToggles[id] = struct{}{}
	s.schedulerErr = ""
	s.mu.Unlock()

	updated, err := s.client.UpsertScheduler(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingToggles, id)
	if err != nil {
		s.schedulerErr = api.ErrorMessage(err, msgSchedulerToggleFailed)
		return
	}
	for i := range s.schedulers {
		if s.schedulers[i].ID == id {
			s.schedulers[i] = *updated
			break
		}
	}
}

// DeleteScheduler removes a rule pessimistically: the local collection only
// changes after the server confirms.
func (s *Search) DeleteScheduler(ctx context.Context, id int64) {
	s.mu.Lock()
	s.schedulerErr = ""
	s.mu.Unlock()

	if err := s.client.DeleteScheduler(ctx, id); err != nil {
		s.mu.Lock()
		s.schedulerErr = api.ErrorMessage(err, msgSchedulerDeleteFailed)
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.schedulers[:0]
	for _, scheduler := range s.schedulers {
		if scheduler.ID != id {
			kept = append(kept, scheduler)
		}
	}
	s.schedulers = kept
	delete(s.pendingToggles, id)
}

// Schedulers is the presentation projection: the committed list with any
// pending toggle overrides applied on top.
func (s *Search) Schedulers() []models.Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]models.Scheduler(nil), s.schedulers...)
	for i := range out {
		if _, pending := s.pendingToggles[out[i].ID]; pending {
			out[i].Enabled = !out[i].Enabled
		}
	}
	return out
}
