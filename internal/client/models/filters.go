package models

import "strings"

// Experience buckets accepted by the backend.
const (
	ExperienceNone        = "noExperience"
	ExperienceBetween1And3 = "between1And3"
	ExperienceBetween3And6 = "between3And6"
	ExperienceMoreThan6    = "moreThan6"
)

// Sort orders accepted by the backend.
const (
	OrderByPublicationTime = "publication_time"
	OrderByRelevance       = "relevance"
	OrderBySalaryDesc      = "salary_desc"
	OrderBySalaryAsc       = "salary_asc"
)

// Filters is the mutable search criteria held by the search store.
//
// KeywordsToExclude is kept as the raw comma-joined string the user typed;
// it is normalized to a list of trimmed non-empty tokens only when an
// outbound payload is built (see SplitKeywords).
type Filters struct {
	Text           string `validate:"omitempty"`
	SearchField    string `validate:"omitempty,oneof=name company_name description"`
	Area           string
	Experience     string `validate:"omitempty,oneof=noExperience between1And3 between3And6 moreThan6"`
	OnlyWithSalary bool
	Salary         string `validate:"omitempty,numeric"`
	Employment     string
	Schedule       string
	OrderBy        string `validate:"omitempty,oneof=publication_time relevance salary_desc salary_asc"`
	CoverLetter    string
	KeywordsToExclude string
}

// DefaultFilters returns the initial filter set shown on a fresh page.
func DefaultFilters() Filters {
	return Filters{
		Experience: ExperienceNone,
	}
}

// SplitKeywords normalizes a comma-joined exclusion string: split on comma,
// trim whitespace, drop empty entries. Empty/whitespace-only entries are
// never sent to the backend.
func SplitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keywords = append(keywords, p)
	}
	return keywords
}

// VacancyRequest is the outbound payload shared by the search, filtered-count
// and bulk-apply endpoints. Fields not applicable to a given endpoint are
// simply left at their zero value and omitted.
type VacancyRequest struct {
	Text              string   `json:"text,omitempty"`
	SearchField       string   `json:"search_field,omitempty"`
	Area              string   `json:"area,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	OnlyWithSalary    bool     `json:"only_with_salary"`
	Salary            string   `json:"salary,omitempty"`
	Employment        string   `json:"employment,omitempty"`
	Schedule          string   `json:"schedule,omitempty"`
	CoverLetter       string   `json:"coverLetter,omitempty"`
	KeywordsToExclude []string `json:"keywordsToExclude"`
	ResumeID          string   `json:"resumeId"`
	Count             int      `json:"count,omitempty"`
	OrderBy           string   `json:"order_by,omitempty"`
	IsSimilarSearch   bool     `json:"isSimilarSearch,omitempty"`
}

// SearchPayload builds the request body for POST /hh/vacancies/all.
func (f Filters) SearchPayload(resumeID string, count int) VacancyRequest {
	return VacancyRequest{
		Text:              f.Text,
		SearchField:       f.SearchField,
		Area:              f.Area,
		Experience:        f.Experience,
		OnlyWithSalary:    f.OnlyWithSalary,
		Salary:            f.Salary,
		Employment:        f.Employment,
		Schedule:          f.Schedule,
		CoverLetter:       f.CoverLetter,
		KeywordsToExclude: SplitKeywords(f.KeywordsToExclude),
		ResumeID:          resumeID,
		Count:             count,
		OrderBy:           f.OrderBy,
	}
}

// CountPayload builds the request body for POST /hh/vacancies/all_filter.
func (f Filters) CountPayload(resumeID string) VacancyRequest {
	p := f.SearchPayload(resumeID, 0)
	return p
}

// ApplyPayload builds the request body for POST /hh/vacancies/apply-to-vacancies.
// Sort order and search field fall back to the backend defaults used by the
// web client when the user has not picked them explicitly.
func (f Filters) ApplyPayload(resumeID string, count int) VacancyRequest {
	p := f.SearchPayload(resumeID, count)
	p.IsSimilarSearch = true
	if p.OrderBy == "" {
		p.OrderBy = OrderByPublicationTime
	}
	if p.SearchField == "" {
		p.SearchField = "name"
	}
	return p
}
