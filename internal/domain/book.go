package domain

// BookRecord is an immutable catalog entry. Records are defined when the
// catalog is loaded and never mutated afterwards; Available is a capacity
// flag set by the catalog itself, independent of any single member's loans.
type BookRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Category      string `json:"category"`
	Available     bool   `json:"available"`
	CoverURL      string `json:"cover_url"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
}
