package models

import "time"

// SchedulerParams is the filter subset persisted with an auto-apply rule.
// The cover letter is transient and never stored by the backend.
type SchedulerParams struct {
	Text              string   `json:"text,omitempty"`
	SearchField       string   `json:"search_field,omitempty"`
	Area              string   `json:"area,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	OnlyWithSalary    bool     `json:"only_with_salary"`
	Salary            string   `json:"salary,omitempty"`
	Employment        string   `json:"employment,omitempty"`
	Schedule          string   `json:"schedule,omitempty"`
	OrderBy           string   `json:"order_by,omitempty"`
	KeywordsToExclude []string `json:"keywordsToExclude,omitempty"`
}

// Scheduler is a persisted, named, enable/disable-able recurring auto-apply
// rule (GET /scheduler/all).
type Scheduler struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Enabled   bool            `json:"enabled"`
	CreatedAt time.Time       `json:"createdAt"`
	Params    SchedulerParams `json:"params"`
}

// SchedulerRequest is the upsert payload for POST /scheduler/auto. Creation
// sends the current filters plus a name and resume; toggling re-sends the
// stored params with the enabled flag inverted.
type SchedulerRequest struct {
	NameRequest       string   `json:"nameRequest,omitempty"`
	ResumeID          string   `json:"resume_id,omitempty"`
	Enabled           *bool    `json:"enabled,omitempty"`
	EnabledSchedule   bool     `json:"enabledSchedule"`
	Text              string   `json:"text,omitempty"`
	SearchField       string   `json:"search_field,omitempty"`
	Area              string   `json:"area,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	OnlyWithSalary    bool     `json:"only_with_salary"`
	Salary            string   `json:"salary,omitempty"`
	Employment        string   `json:"employment,omitempty"`
	Schedule          string   `json:"schedule,omitempty"`
	OrderBy           string   `json:"order_by,omitempty"`
	CoverLetter       string   `json:"coverLetter,omitempty"`
	KeywordsToExclude []string `json:"keywordsToExclude"`
}

// CreatePayload builds a scheduler creation request from the current filters.
func (f Filters) CreatePayload(name, resumeID string) SchedulerRequest {
	return SchedulerRequest{
		NameRequest:       name,
		ResumeID:          resumeID,
		EnabledSchedule:   true,
		Text:              f.Text,
		SearchField:       f.SearchField,
		Area:              f.Area,
		Experience:        f.Experience,
		OnlyWithSalary:    f.OnlyWithSalary,
		Salary:            f.Salary,
		Employment:        f.Employment,
		Schedule:          f.Schedule,
		OrderBy:           f.OrderBy,
		CoverLetter:       f.CoverLetter,
		KeywordsToExclude: SplitKeywords(f.KeywordsToExclude),
	}
}

// TogglePayload re-sends a scheduler's stored params with the enabled flag
// inverted. The backend treats the call as a full upsert.
func (s Scheduler) TogglePayload() SchedulerRequest {
	enabled := !s.Enabled
	return SchedulerRequest{
		Enabled:           &enabled,
		EnabledSchedule:   enabled,
		Text:              s.Params.Text,
		SearchField:       s.Params.SearchField,
		Area:              s.Params.Area,
		Experience:        s.Params.Experience,
		OnlyWithSalary:    s.Params.OnlyWithSalary,
		Salary:            s.Params.Salary,
		Employment:        s.Params.Employment,
		Schedule:          s.Params.Schedule,
		OrderBy:           s.Params.OrderBy,
		KeywordsToExclude: s.Params.KeywordsToExclude,
	}
}
