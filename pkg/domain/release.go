package domain

// Kind values for Release.Kind.
const (
	KindStreaming  = "streaming"
	KindTheatrical = "theatrical"
)

// Release represents one scheduled media release extracted from a calendar
// page or the TMDB theatrical feed.
//
// Title, Date, Platform, Synopsis and Kind are set at extraction time. The
// remaining fields are enrichment added later by the Letterboxd/TMDB lookups;
// they are pointers so an absent lookup serializes as null, matching the
// dataset shape consumers already read.
type Release struct {
	Title    string `bson:"title" json:"title"`
	Date     string `bson:"date" json:"date"` // always ISO YYYY-MM-DD
	Platform string `bson:"platform" json:"platform"`
	Synopsis string `bson:"synopsis" json:"synopsis"`
	Kind     string `bson:"kind" json:"type"`

	TMDBID           int      `bson:"tmdb_id,omitempty" json:"tmdb_id,omitempty"`
	LetterboxdRating *float64 `bson:"letterboxd_rating" json:"letterboxd_rating"`
	LetterboxdURL    *string  `bson:"letterboxd_url" json:"letterboxd_url"`
	Poster           *string  `bson:"poster" json:"poster"`
}

// Year returns the four-digit year portion of the release date, or "" when
// the date is missing or malformed. Used to disambiguate external lookups.
func (r Release) Year() string {
	if len(r.Date) < 4 {
		return ""
	}
	return r.Date[:4]
}
