package models

// Raw shapes returned by the WordPress REST API (wp-json/wp/v2) when posts are
// requested with _embed=1. Owned by the remote source; read-only here. Fields
// the site never consumes are omitted on purpose.

// WPRendered wraps WordPress "rendered" string fields.
type WPRendered struct {
	Rendered string `json:"rendered"`
}

// WPTerm is an embedded taxonomy term (category or tag).
type WPTerm struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

// WPMedia is an embedded featured-media object.
type WPMedia struct {
	SourceURL string `json:"source_url"`
}

// WPEmbedded carries the _embedded expansions requested via _embed=1.
type WPEmbedded struct {
	Terms         [][]WPTerm `json:"wp:term"`
	FeaturedMedia []WPMedia  `json:"wp:featuredmedia"`
}

// WPPost is one raw post record from the remote content source.
type WPPost struct {
	ID       int        `json:"id"`
	Date     string     `json:"date"`
	Title    WPRendered `json:"title"`
	Content  WPRendered `json:"content"`
	Excerpt  WPRendered `json:"excerpt"`
	Embedded WPEmbedded `json:"_embedded"`
}

// Categories returns the post's embedded category terms. WordPress groups
// embedded terms by taxonomy; only the "category" groups are relevant.
func (p WPPost) Categories() []WPTerm {
	var categories []WPTerm
	for _, group := range p.Embedded.Terms {
		for _, term := range group {
			if term.Taxonomy == "category" {
				categories = append(categories, term)
			}
		}
	}
	return categories
}

// FeaturedImageURL returns the source URL of the post's featured media,
// or an empty string when no media is embedded.
func (p WPPost) FeaturedImageURL() string {
	if len(p.Embedded.FeaturedMedia) > 0 {
		return p.Embedded.FeaturedMedia[0].SourceURL
	}
	return ""
}
