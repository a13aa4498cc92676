package store

import (
	"context"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertContact stores a new contact-form submission.
func (q *Queries) InsertContact(ctx context.Context, c model.Contact) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO contacts (id, site, language, name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Site, c.Language, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.CreatedAt)
	return err
}

// GetContact fetches a contact by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetContact(ctx context.Context, id string) (model.Contact, error) {
	var c model.Contact
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, name, email, phone, subject, message, created_at
		FROM contacts WHERE id = ?`, id).
		Scan(&c.ID, &c.Site, &c.Language, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt)
	return c, err
}

// ListContacts returns a page of contacts in insertion order.
func (q *Queries) ListContacts(ctx context.Context, arg ListParams) ([]model.Contact, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, name, email, phone, subject, message, created_at
		FROM contacts
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Site, &c.Language, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountContacts counts contacts for a site, optionally filtered by language.
func (q *Queries) CountContacts(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "contacts", "created_at", site, language, nil)
}

// CountContactsSince counts contacts created at or after the given instant.
func (q *Queries) CountContactsSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "contacts", "created_at", site, "", &since)
}

// DeleteContact removes a contact and reports the number of rows affected.
func (q *Queries) DeleteContact(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
