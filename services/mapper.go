package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phdonas/site/models"
)

// PlaceholderImageURL is served whenever a post carries no featured media and
// its body contains no image.
const PlaceholderImageURL = "https://placehold.co/800x450/1d1d1f/ffffff?text=PH+Donassolo"

// defaultCategory is the display category for posts without embedded terms.
const defaultCategory = "Geral"

// excerptLimit is the maximum number of characters kept from a raw excerpt.
const excerptLimit = 160

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// videoHosts are the embed domains that mark a post as a video even without
// an explicit iframe tag.
var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com", "wistia"}

// MapToArticle transforms one raw WordPress post into the site's Article
// shape. Title and body HTML are passed through verbatim: the source is the
// site's own WordPress, so its rendered HTML is trusted for display and no
// sanitization happens here. Mapping is defensive about missing fields and
// never fails on partial data.
func MapToArticle(post models.WPPost) models.Article {
	categories := post.Categories()

	category := defaultCategory
	if len(categories) > 0 {
		category = categories[0].Name
	}

	var labels []string
	for _, term := range categories {
		labels = append(labels, term.Name, term.Slug)
	}

	return models.Article{
		ID:       strconv.Itoa(post.ID),
		Title:    post.Title.Rendered,
		PillarID: ClassifyPillar(labels),
		Category: category,
		Excerpt:  shortenExcerpt(post.Excerpt.Rendered),
		Content:  post.Content.Rendered,
		Date:     post.Date,
		ImageURL: resolveImageURL(post),
	}
}

// MapToVideo transforms a raw post whose body embeds a player into the site's
// Video shape. Callers are expected to have checked IsVideoPost first.
func MapToVideo(post models.WPPost) models.Video {
	return models.Video{
		ID:      strconv.Itoa(post.ID),
		Title:   post.Title.Rendered,
		Content: post.Content.Rendered,
		Thumb:   resolveImageURL(post),
	}
}

// IsVideoPost reports whether the post body contains an embeddable player:
// an iframe tag or a known video-host domain. This test is the single source
// of truth for the article/video partition and is applied identically by the
// listing and by-id paths.
func IsVideoPost(html string) bool {
	lowered := strings.ToLower(html)
	if strings.Contains(lowered, "<iframe") {
		return true
	}
	for _, host := range videoHosts {
		if strings.Contains(lowered, host) {
			return true
		}
	}
	return false
}

// shortenExcerpt strips HTML tags from the raw excerpt and truncates it to
// excerptLimit characters. The trailing ellipsis is appended unconditionally,
// even for excerpts already shorter than the limit; the original site behaved
// this way and the frontend relies on it.
func shortenExcerpt(raw string) string {
	text := strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))
	runes := []rune(text)
	if len(runes) > excerptLimit {
		runes = runes[:excerptLimit]
	}
	return string(runes) + "..."
}

// resolveImageURL picks the post's display image: the embedded featured media
// if present, otherwise the first <img src> found in the body, otherwise the
// fixed placeholder.
func resolveImageURL(post models.WPPost) string {
	if url := post.FeaturedImageURL(); url != "" {
		return url
	}
	if url := firstImageSrc(post.Content.Rendered); url != "" {
		return url
	}
	return PlaceholderImageURL
}

// firstImageSrc scans the body HTML for its first image source.
func firstImageSrc(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
