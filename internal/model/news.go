package model

import "time"

// News represents a news item. It mirrors BlogPost but carries a short
// summary instead of an excerpt and is listed separately on the site.
type News struct {
	ID          string     `json:"id"`
	Site        string     `json:"site"`
	Language    string     `json:"language"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	Category    string     `json:"category"`
	Image       string     `json:"image,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished returns true if the news item is published.
func (n *News) IsPublished() bool {
	return n.Status == StatusPublished
}

// NewsInput holds the caller-supplied fields for creating a news item.
type NewsInput struct {
	Site     string
	Language string
	Title    string
	Summary  string
	Body     string
	Category string
	Image    string
	Status   string
}

// NewsPatch lists the news fields eligible for update.
type NewsPatch struct {
	Title    *string
	Summary  *string
	Body     *string
	Category *string
	Image    *string
	Status   *string
}

// Apply merges the set fields of the patch into n.
func (p NewsPatch) Apply(n *News) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Summary != nil {
		n.Summary = *p.Summary
	}
	if p.Body != nil {
		n.Body = *p.Body
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Image != nil {
		n.Image = *p.Image
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
}
