package models

// Resume is a resume linked from the user's hh.ru account.
// The list is immutable once fetched and replaced wholesale on refetch.
type Resume struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
