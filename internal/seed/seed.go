// Package seed defines the deterministic sample content used to bootstrap
// both the in-memory store and a freshly migrated durable store. Record IDs
// are name-derived UUIDs so repeated seeding always produces the same set.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/auth"
	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/util"
)

// Default admin credentials. The password is stored hashed; it is printed at
// startup so operators can log in once and change it.
const (
	AdminUsername = "admin"
	AdminPassword = "1111"
)

// baseTime anchors all seeded timestamps. Using a fixed instant keeps seed
// output identical across runs and keeps seeded records out of "today"
// dashboard counters.
var baseTime = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

// Data holds one deterministic record set for every entity kind.
type Data struct {
	Users        []model.User
	Contacts     []model.Contact
	Newsletters  []model.Newsletter
	BlogPosts    []model.BlogPost
	News         []model.News
	GalleryItems []model.GalleryItem
	Products     []model.Product
	Carousels    []model.Carousel
}

// id derives a stable UUID from a seed record name.
func id(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mkcms/seed/"+name)).String()
}

// at returns the base time shifted by a fixed number of minutes.
func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}

// Records builds the sample record set for a site. The admin password is
// hashed on every call; everything else is fixed.
func Records(site, language string) (Data, error) {
	adminHash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return Data{}, fmt.Errorf("hashing admin password: %w", err)
	}

	d := Data{
		Users: []model.User{
			{
				ID: id("user/admin"), Site: site, Username: AdminUsername,
				PasswordHash: adminHash, Role: model.RoleAdmin, Active: true,
				CreatedAt: at(0), UpdatedAt: at(0),
			},
		},
		Contacts: []model.Contact{
			{
				ID: id("contact/1"), Site: site, Language: language,
				Name: "Jane Cooper", Email: "jane.cooper@example.com",
				Subject: "Partnership inquiry",
				Message: "Hello, we would like to discuss a partnership opportunity.",
				CreatedAt: at(10),
			},
			{
				ID: id("contact/2"), Site: site, Language: language,
				Name: "Tom Aldridge", Email: "tom.aldridge@example.com", Phone: "+1 555 0134",
				Subject: "Product question",
				Message: "Is the ceramic collection available for wholesale orders?",
				CreatedAt: at(11),
			},
		},
		Newsletters: []model.Newsletter{
			{
				ID: id("newsletter/1"), Site: site, Language: language,
				Email: "subscriber.one@example.com", Name: "Subscriber One", Category: "general",
				SubscribedAt: at(20), CreatedAt: at(20), UpdatedAt: at(20),
			},
			{
				ID: id("newsletter/2"), Site: site, Language: language,
				Email: "subscriber.two@example.com", Category: "products",
				SubscribedAt: at(21), CreatedAt: at(21), UpdatedAt: at(21),
			},
		},
		GalleryItems: []model.GalleryItem{
			{
				ID: id("gallery/1"), Site: site, Language: language,
				Title: "Showroom opening", Description: "Photos from the showroom opening night.",
				Image: "/uploads/gallery/showroom.jpg", Thumbnail: "/uploads/gallery/showroom_thumb.jpg",
				Category: "events", Tags: []string{"showroom", "opening"},
				Status: model.StatusPublished, CreatedAt: at(40), UpdatedAt: at(40),
			},
			{
				ID: id("gallery/2"), Site: site, Language: language,
				Title: "Workshop series", Description: "Behind the scenes at the spring workshop.",
				Image: "/uploads/gallery/workshop.jpg", Thumbnail: "/uploads/gallery/workshop_thumb.jpg",
				Category: "workshops", Tags: []string{"workshop"},
				Status: model.StatusPublished, CreatedAt: at(41), UpdatedAt: at(41),
			},
			{
				ID: id("gallery/3"), Site: site, Language: language,
				Title: "Product close-ups", Image: "/uploads/gallery/closeups.jpg",
				Category: "products", Status: model.StatusPublished,
				CreatedAt: at(42), UpdatedAt: at(42),
			},
		},
		Products: []model.Product{
			{
				ID: id("product/1"), Site: site, Language: language,
				Name: "Ceramic vase", Description: "Hand-thrown ceramic vase, matte glaze.",
				Price: 4900, Stock: 12, SKU: "CER-VASE-01", Weight: "1.2kg", Dimensions: "18x18x30cm",
				Tags: []string{"ceramic", "home"}, Status: model.StatusPublished,
				CreatedAt: at(50), UpdatedAt: at(50),
			},
			{
				ID: id("product/2"), Site: site, Language: language,
				Name: "Walnut serving board", Description: "Solid walnut board, oiled finish.",
				Price: 6500, Stock: 8, SKU: "WAL-BRD-02", Weight: "0.9kg", Dimensions: "40x20x2cm",
				Tags: []string{"wood", "kitchen"}, Status: model.StatusPublished,
				CreatedAt: at(51), UpdatedAt: at(51),
			},
			{
				ID: id("product/3"), Site: site, Language: language,
				Name: "Linen table runner", Description: "Stonewashed linen, natural dye.",
				Price: 3200, Stock: 20, SKU: "LIN-RUN-03",
				Tags: []string{"textile"}, Status: model.StatusDraft,
				CreatedAt: at(52), UpdatedAt: at(52),
			},
		},
		Carousels: []model.Carousel{
			{
				ID: id("carousel/1"), Site: site, Language: language,
				Title: "Spring collection", Subtitle: "New arrivals",
				Description: "Discover the spring collection.",
				Image: "/uploads/carousel/spring.jpg", Link: "/products", ButtonText: "Shop now",
				Position: 1, Active: true, CreatedAt: at(60), UpdatedAt: at(60),
			},
			{
				ID: id("carousel/2"), Site: site, Language: language,
				Title: "Workshops", Subtitle: "Learn with us",
				Image: "/uploads/carousel/workshops.jpg", Link: "/blog", ButtonText: "Read more",
				Position: 2, Active: true, CreatedAt: at(61), UpdatedAt: at(61),
			},
			// Same position as carousel/2: display order falls back to creation time.
			{
				ID: id("carousel/3"), Site: site, Language: language,
				Title: "Visit the showroom",
				Image: "/uploads/carousel/showroom.jpg", Link: "/contact", ButtonText: "Plan a visit",
				Position: 2, Active: false, CreatedAt: at(62), UpdatedAt: at(62),
			},
		},
	}

	d.BlogPosts = sampleBlogPosts(site, language)
	d.News = sampleNews(site, language)
	return d, nil
}

func sampleBlogPosts(site, language string) []model.BlogPost {
	posts := []struct {
		name     string
		title    string
		excerpt  string
		body     string
		category string
		status   string
		minute   int
	}{
		{"blog/1", "Welcome to the studio", "A short introduction to who we are.",
			"We opened the studio in 2019 with a simple idea: honest materials, honest prices.",
			"studio", model.StatusPublished, 30},
		{"blog/2", "How our ceramics are made", "From clay to kiln in five steps.",
			"Every piece starts as a lump of local clay and passes through five hands before firing.",
			"process", model.StatusPublished, 31},
		{"blog/3", "Upcoming summer workshops", "Dates and details for the summer series.",
			"This summer we are hosting six hands-on workshops covering throwing and glazing.",
			"workshops", model.StatusDraft, 32},
	}

	var out []model.BlogPost
	for _, p := range posts {
		post := model.BlogPost{
			ID: id(p.name), Site: site, Language: language,
			Title: p.title, Slug: util.Slugify(p.title),
			Excerpt: p.excerpt, Body: p.body, Category: p.category,
			Status:    p.status,
			CreatedAt: at(p.minute), UpdatedAt: at(p.minute),
		}
		if post.Status == model.StatusPublished {
			t := at(p.minute)
			post.PublishedAt = &t
		}
		out = append(out, post)
	}
	return out
}

func sampleNews(site, language string) []model.News {
	items := []struct {
		name    string
		title   string
		summary string
		body    string
		minute  int
	}{
		{"news/1", "Showroom open on Saturdays", "New opening hours starting this month.",
			"The showroom is now open every Saturday from 10:00 to 16:00.", 35},
		{"news/2", "Featured in Craft Quarterly", "Our ceramics line made the spring issue.",
			"Craft Quarterly featured the studio in a six-page spread on regional makers.", 36},
	}

	var out []model.News
	for _, n := range items {
		t := at(n.minute)
		out = append(out, model.News{
			ID: id(n.name), Site: site, Language: language,
			Title: n.title, Slug: util.Slugify(n.title),
			Summary: n.summary, Body: n.body, Category: "announcements",
			Status: model.StatusPublished, PublishedAt: &t,
			CreatedAt: t, UpdatedAt: t,
		})
	}
	return out
}
