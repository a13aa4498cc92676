package memstore

import (
	"sync"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/seed"
)

// Store holds one in-memory collection per entity kind. A Store is an
// explicit instance: callers construct as many as they need, and tests get
// isolation for free.
type Store struct {
	site     string
	language string

	Users        *Collection[model.User]
	Sessions     *Collection[model.Session]
	Contacts     *Collection[model.Contact]
	Newsletters  *Collection[model.Newsletter]
	BlogPosts    *Collection[model.BlogPost]
	News         *Collection[model.News]
	GalleryItems *Collection[model.GalleryItem]
	Products     *Collection[model.Product]
	Carousels    *Collection[model.Carousel]
	Events       *Collection[model.Event]

	mu     sync.Mutex
	seeded bool
}

// NewEmpty returns a store with no records. Mostly useful in tests that need
// full control over content.
func NewEmpty(site, language string) *Store {
	return &Store{
		site:         site,
		language:     language,
		Users:        NewCollection[model.User](),
		Sessions:     NewCollection[model.Session](),
		Contacts:     NewCollection[model.Contact](),
		Newsletters:  NewCollection[model.Newsletter](),
		BlogPosts:    NewCollection[model.BlogPost](),
		News:         NewCollection[model.News](),
		GalleryItems: NewCollection[model.GalleryItem](),
		Products:     NewCollection[model.Product](),
		Carousels:    NewCollection[model.Carousel](),
		Events:       NewCollection[model.Event](),
	}
}

// New returns a store populated with the default admin account and sample
// content for the given site.
func New(site, language string) (*Store, error) {
	s := NewEmpty(site, language)
	if err := s.Seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// Site reports the site the store was built for.
func (s *Store) Site() string { return s.site }

// Language reports the store's default language.
func (s *Store) Language() string { return s.language }

// Seed loads the deterministic sample record set. Repeated calls are no-ops:
// record IDs are stable, so even a concurrent double seed cannot duplicate
// content, but the guard also skips the hashing work.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return nil
	}

	data, err := seed.Records(s.site, s.language)
	if err != nil {
		return err
	}

	for _, u := range data.Users {
		s.Users.Put(u.ID, u)
	}
	for _, c := range data.Contacts {
		s.Contacts.Put(c.ID, c)
	}
	for _, n := range data.Newsletters {
		s.Newsletters.Put(n.ID, n)
	}
	for _, p := range data.BlogPosts {
		s.BlogPosts.Put(p.ID, p)
	}
	for _, n := range data.News {
		s.News.Put(n.ID, n)
	}
	for _, g := range data.GalleryItems {
		s.GalleryItems.Put(g.ID, g)
	}
	for _, p := range data.Products {
		s.Products.Put(p.ID, p)
	}
	for _, c := range data.Carousels {
		s.Carousels.Put(c.ID, c)
	}

	s.seeded = true
	return nil
}

// Reset drops every record and reloads the seeded baseline.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.Users.Clear()
	s.Sessions.Clear()
	s.Contacts.Clear()
	s.Newsletters.Clear()
	s.BlogPosts.Clear()
	s.News.Clear()
	s.GalleryItems.Clear()
	s.Products.Clear()
	s.Carousels.Clear()
	s.Events.Clear()
	s.seeded = false
	s.mu.Unlock()
	return s.Seed()
}

// UserByUsername finds a user by username.
func (s *Store) UserByUsername(username string) (model.User, bool) {
	return s.Users.Find(func(u model.User) bool { return u.Username == username })
}
