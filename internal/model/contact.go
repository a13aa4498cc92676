package model

import "time"

// Contact represents a contact-form submission. Contacts are immutable after
// creation: the only lifecycle operation besides reading is deletion.
type Contact struct {
	ID        string    `json:"id"`
	Site      string    `json:"site"`
	Language  string    `json:"language"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactInput holds the caller-supplied fields for creating a contact.
type ContactInput struct {
	Site     string
	Language string
	Name     string
	Email    string
	Phone    string
	Subject  string
	Message  string
}
