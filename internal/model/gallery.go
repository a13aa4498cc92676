package model

import "time"

// GalleryItem represents an image in the site gallery.
type GalleryItem struct {
	ID          string    `json:"id"`
	Site        string    `json:"site"`
	Language    string    `json:"language"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GalleryItemInput holds the caller-supplied fields for creating a gallery item.
type GalleryItemInput struct {
	Site        string
	Language    string
	Title       string
	Description string
	Image       string
	Thumbnail   string
	Category    string
	Tags        []string
	Status      string
}

// GalleryItemPatch lists the gallery item fields eligible for update.
type GalleryItemPatch struct {
	Title       *string
	Description *string
	Image       *string
	Thumbnail   *string
	Category    *string
	Tags        *[]string
	Status      *string
}

// Apply merges the set fields of the patch into g.
func (p GalleryItemPatch) Apply(g *GalleryItem) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Image != nil {
		g.Image = *p.Image
	}
	if p.Thumbnail != nil {
		g.Thumbnail = *p.Thumbnail
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Tags != nil {
		g.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
}
