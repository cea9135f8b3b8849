package services

import (
	"strings"
	"testing"

	"github.com/phdonas/site/models"

	"github.com/stretchr/testify/assert"
)

func samplePost() models.WPPost {
	post := models.WPPost{
		ID:   42,
		Date: "2024-01-01T00:00:00Z",
	}
	post.Title.Rendered = "X"
	post.Content.Rendered = "<p>hi</p>"
	post.Excerpt.Rendered = "short"
	post.Embedded.Terms = [][]models.WPTerm{
		{{ID: 7, Name: "Consultor Imobiliário", Slug: "consultor-imobiliario", Taxonomy: "category"}},
	}
	return post
}

func TestMapToArticle(t *testing.T) {
	t.Run("Maps a full post end to end", func(t *testing.T) {
		article := MapToArticle(samplePost())

		assert.Equal(t, "42", article.ID)
		assert.Equal(t, "X", article.Title)
		assert.Equal(t, models.PillarConsultoria, article.PillarID)
		assert.Equal(t, "Consultor Imobiliário", article.Category)
		assert.Equal(t, "short...", article.Excerpt)
		assert.Equal(t, "<p>hi</p>", article.Content)
		assert.Equal(t, "2024-01-01T00:00:00Z", article.Date)
		assert.Equal(t, PlaceholderImageURL, article.ImageURL)
	})

	t.Run("Mapping is deterministic", func(t *testing.T) {
		first := MapToArticle(samplePost())
		second := MapToArticle(samplePost())
		assert.Equal(t, first, second)
	})

	t.Run("Post without categories gets default pillar and category", func(t *testing.T) {
		post := samplePost()
		post.Embedded.Terms = nil

		article := MapToArticle(post)
		assert.Equal(t, models.PillarProfPaulo, article.PillarID)
		assert.Equal(t, "Geral", article.Category)
	})

	t.Run("Tags are ignored when picking the category", func(t *testing.T) {
		post := samplePost()
		post.Embedded.Terms = [][]models.WPTerm{
			{{Name: "alguma-tag", Slug: "alguma-tag", Taxonomy: "post_tag"}},
			{{Name: "Academia do Gás", Slug: "academia-do-gas", Taxonomy: "category"}},
		}

		article := MapToArticle(post)
		assert.Equal(t, models.PillarAcademiaGas, article.PillarID)
		assert.Equal(t, "Academia do Gás", article.Category)
	})

	t.Run("Featured media wins over body images", func(t *testing.T) {
		post := samplePost()
		post.Embedded.FeaturedMedia = []models.WPMedia{{SourceURL: "https://cdn.example.com/capa.jpg"}}
		post.Content.Rendered = `<p><img src="https://cdn.example.com/corpo.jpg"></p>`

		assert.Equal(t, "https://cdn.example.com/capa.jpg", MapToArticle(post).ImageURL)
	})

	t.Run("First body image is used when no featured media exists", func(t *testing.T) {
		post := samplePost()
		post.Content.Rendered = `<p>texto</p><img src="https://cdn.example.com/a.jpg"><img src="https://cdn.example.com/b.jpg">`

		assert.Equal(t, "https://cdn.example.com/a.jpg", MapToArticle(post).ImageURL)
	})
}

func TestShortenExcerpt(t *testing.T) {
	t.Run("Strips tags and appends ellipsis unconditionally", func(t *testing.T) {
		assert.Equal(t, "short...", shortenExcerpt("<p>short</p>"))
		assert.Equal(t, "...", shortenExcerpt(""))
	})

	t.Run("Never exceeds 163 characters and always ends with ellipsis", func(t *testing.T) {
		inputs := []string{
			"short",
			strings.Repeat("a", 159),
			strings.Repeat("a", 160),
			strings.Repeat("a", 161),
			strings.Repeat("é", 500),
			"<p>" + strings.Repeat("palavra ", 100) + "</p>",
		}
		for _, input := range inputs {
			excerpt := shortenExcerpt(input)
			assert.LessOrEqual(t, len([]rune(excerpt)), 163)
			assert.True(t, strings.HasSuffix(excerpt, "..."))
		}
	})

	t.Run("Exactly 160 characters survive intact", func(t *testing.T) {
		input := strings.Repeat("a", 160)
		assert.Equal(t, input+"...", shortenExcerpt(input))
	})
}

func TestIsVideoPost(t *testing.T) {
	t.Run("Iframe tag marks a video", func(t *testing.T) {
		assert.True(t, IsVideoPost(`<iframe src="https://player.example.com/1"></iframe>`))
		assert.True(t, IsVideoPost(`<IFRAME src="x"></IFRAME>`))
	})

	t.Run("Known video hosts mark a video", func(t *testing.T) {
		assert.True(t, IsVideoPost(`<p>assista em https://youtube.com/watch?v=abc</p>`))
		assert.True(t, IsVideoPost(`<a href="https://youtu.be/abc">link</a>`))
		assert.True(t, IsVideoPost(`<p>vimeo.com/123</p>`))
	})

	t.Run("Plain articles are not videos", func(t *testing.T) {
		assert.False(t, IsVideoPost(`<p>hi</p>`))
		assert.False(t, IsVideoPost(""))
	})

	t.Run("Partition test is stable for the same body", func(t *testing.T) {
		bodies := []string{`<p>hi</p>`, `<iframe></iframe>`, `<p>youtu.be/x</p>`}
		for _, body := range bodies {
			assert.Equal(t, IsVideoPost(body), IsVideoPost(body))
		}
	})
}

func TestMapToVideo(t *testing.T) {
	post := samplePost()
	post.Content.Rendered = `<iframe src="https://www.youtube.com/embed/abc"></iframe>`
	post.Embedded.FeaturedMedia = []models.WPMedia{{SourceURL: "https://cdn.example.com/thumb.jpg"}}

	video := MapToVideo(post)
	assert.Equal(t, "42", video.ID)
	assert.Equal(t, "X", video.Title)
	assert.Equal(t, post.Content.Rendered, video.Content)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", video.Thumb)
}
