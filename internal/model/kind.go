package model

// Kind identifies an entity kind for cross-cutting operations such as the
// admin dashboard counters.
type Kind string

// Entity kinds
const (
	KindContact     Kind = "contacts"
	KindNewsletter  Kind = "newsletters"
	KindBlogPost    Kind = "blog_posts"
	KindNews        Kind = "news"
	KindGalleryItem Kind = "gallery_items"
	KindProduct     Kind = "products"
	KindCarousel    Kind = "carousels"
)

// ContentKinds lists the entity kinds shown on the admin overview, in
// dashboard display order.
var ContentKinds = []Kind{
	KindContact,
	KindNewsletter,
	KindBlogPost,
	KindNews,
	KindGalleryItem,
	KindProduct,
	KindCarousel,
}
