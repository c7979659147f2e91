package domain

import "time"

// DashboardOverview holds the headline entity counts.
type DashboardOverview struct {
	TotalOccupations int `json:"totalOccupations"`
	TotalSynonyms    int `json:"totalSynonyms"`
}

// SynonymExtreme is the occupation with the most (or fewest non-zero)
// linked synonyms.
type SynonymExtreme struct {
	OccupationID     int64  `json:"occupationId"`
	PreferredLabelEn string `json:"preferredLabelEn"`
	SynonymCount     int    `json:"synonymCount"`
}

// RecentOccupation is one row of the last-added occupations panel.
type RecentOccupation struct {
	ID               int64     `json:"id"`
	PreferredLabelEn string    `json:"preferredLabelEn"`
	ESCOCode         *string   `json:"escoCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RecentSynonym is one row of the last-added synonyms panel.
type RecentSynonym struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}
