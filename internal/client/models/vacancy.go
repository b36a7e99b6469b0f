package models

// Employer is the employer block of a vacancy.
type Employer struct {
	Name     string            `json:"name"`
	LogoURLs map[string]string `json:"logo_urls,omitempty"`
}

// SalaryRange is an optional salary fork. Any bound may be absent.
type SalaryRange struct {
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Snippet carries the highlighted requirement/responsibility fragments
// returned by the search engine.
type Snippet struct {
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
}

// Vacancy is a single job posting as returned by POST /hh/vacancies/all.
// It is a read-only projection of backend search results and is never
// mutated locally.
type Vacancy struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Employer Employer `json:"employer"`
	SalaryRange *SalaryRange `json:"salary_range,omitempty"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Snippet      Snippet `json:"snippet"`
	AlternateURL string  `json:"alternate_url"`
}

// Area is a node of the hh.ru location tree (GET /hh/vacancies/area).
type Area struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Areas []Area `json:"areas,omitempty"`
}
