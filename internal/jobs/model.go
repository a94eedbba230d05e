package jobs

import "time"

// Job is a role suggestion surfaced to the user.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Skills      []string   `json:"skills"`
	URL         string     `json:"url,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
