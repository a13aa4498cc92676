package model

import "time"

// Newsletter represents a newsletter subscription.
type Newsletter struct {
	ID           string    `json:"id"`
	Site         string    `json:"site"`
	Language     string    `json:"language"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Category     string    `json:"category,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewsletterInput holds the caller-supplied fields for creating a subscription.
type NewsletterInput struct {
	Site     string
	Language string
	Email    string
	Name     string
	Category string
}

// NewsletterPatch lists the subscription fields eligible for update.
type NewsletterPatch struct {
	Email    *string
	Name     *string
	Category *string
}

// Apply merges the set fields of the patch into n.
func (p NewsletterPatch) Apply(n *Newsletter) {
	if p.Email != nil {
		n.Email = *p.Email
	}
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
}
