package model

import "time"

// Content statuses shared by blog posts, news, gallery items and products.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// BlogPost represents a blog article.
type BlogPost struct {
	ID          string     `json:"id"`
	Site        string     `json:"site"`
	Language    string     `json:"language"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	Category    string     `json:"category"`
	Image       string     `json:"image,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is published.
func (b *BlogPost) IsPublished() bool {
	return b.Status == StatusPublished
}

// BlogPostInput holds the caller-supplied fields for creating a blog post.
type BlogPostInput struct {
	Site     string
	Language string
	Title    string
	Excerpt  string
	Body     string
	Category string
	Image    string
	Status   string
}

// BlogPostPatch lists the blog post fields eligible for update.
// ID, Slug and CreatedAt are immutable; PublishedAt is managed by the
// storage layer on status transitions, never patched directly.
type BlogPostPatch struct {
	Title    *string
	Excerpt  *string
	Body     *string
	Category *string
	Image    *string
	Status   *string
}

// Apply merges the set fields of the patch into b.
func (p BlogPostPatch) Apply(b *BlogPost) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Excerpt != nil {
		b.Excerpt = *p.Excerpt
	}
	if p.Body != nil {
		b.Body = *p.Body
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
}
