package domain

// Month identifies one scraped month in the dataset header.
type Month struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// Dataset is the persisted artifact produced by a full scrape run.
type Dataset struct {
	LastUpdated string    `json:"last_updated"`
	Months      []Month   `json:"months"`
	Releases    []Release `json:"releases"`
	Theatrical  []Release `json:"theatrical"`
}
