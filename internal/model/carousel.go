package model

import "time"

// Carousel represents a homepage carousel slide. Position controls display
// priority; slides with equal Position are ordered by creation time.
type Carousel struct {
	ID          string    `json:"id"`
	Site        string    `json:"site"`
	Language    string    `json:"language"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Link        string    `json:"link,omitempty"`
	ButtonText  string    `json:"button_text,omitempty"`
	Position    int64     `json:"position"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CarouselInput holds the caller-supplied fields for creating a slide.
type CarouselInput struct {
	Site        string
	Language    string
	Title       string
	Subtitle    string
	Description string
	Image       string
	Link        string
	ButtonText  string
	Position    int64
	Active      bool
}

// CarouselPatch lists the slide fields eligible for update.
type CarouselPatch struct {
	Title       *string
	Subtitle    *string
	Description *string
	Image       *string
	Link        *string
	ButtonText  *string
	Position    *int64
	Active      *bool
}

// Apply merges the set fields of the patch into c.
func (p CarouselPatch) Apply(c *Carousel) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Subtitle != nil {
		c.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.Link != nil {
		c.Link = *p.Link
	}
	if p.ButtonText != nil {
		c.ButtonText = *p.ButtonText
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
}
