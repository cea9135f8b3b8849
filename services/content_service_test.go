package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/phdonas/site/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock type for the ContentFetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// fakeCache is an in-memory stand-in for the persisted key-value store.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(key string) (string, bool, error) {
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *fakeCache) Put(key string, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

// listingPayload builds a bulk listing with two articles and one video post.
func listingPayload(t *testing.T) json.RawMessage {
	t.Helper()

	makePost := func(id int, title, content, categoryName, categorySlug string) models.WPPost {
		var post models.WPPost
		post.ID = id
		post.Date = fmt.Sprintf("2024-03-%02dT10:00:00", id)
		post.Title.Rendered = title
		post.Content.Rendered = content
		post.Excerpt.Rendered = "<p>resumo</p>"
		post.Embedded.Terms = [][]models.WPTerm{
			{{ID: 1, Name: categoryName, Slug: categorySlug, Taxonomy: "category"}},
		}
		return post
	}

	posts := []models.WPPost{
		makePost(1, "Artigo Imobiliário", "<p>texto</p>", "Consultor Imobiliário", "consultor-imobiliario"),
		makePost(2, "Aula no YouTube", `<iframe src="https://www.youtube.com/embed/x"></iframe>`, "Prof. Paulo", "prof-paulo"),
		makePost(3, "Artigo de Longevidade", "<p>texto</p>", "Longevidade", "longevidade"),
	}

	payload, err := json.Marshal(posts)
	assert.NoError(t, err)
	return payload
}

func TestContentService_GetArticles(t *testing.T) {
	ctx := context.Background()

	t.Run("Live fetch maps, partitions and persists both snapshots", func(t *testing.T) {
		fetcher := new(MockFetcher)
		cache := newFakeCache()
		service := NewContentService(cache, fetcher)

		fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()

		articles, source := service.GetArticles(ctx, 0)
		assert.Equal(t, SourceLive, source)
		assert.Len(t, articles, 2) // the iframe post is a video, not an article
		assert.Equal(t, "1", articles[0].ID)
		assert.Equal(t, models.PillarConsultoria, articles[0].PillarID)
		assert.Equal(t, "3", articles[1].ID)
		assert.Equal(t, models.Pillar4050OuMais, articles[1].PillarID)

		// Both snapshots were persisted under version-tagged keys.
		_, articlesCached, _ := cache.Get("phd_articles_cache_v1")
		_, videosCached, _ := cache.Get("phd_videos_cache_v1")
		assert.True(t, articlesCached)
		assert.True(t, videosCached)

		fetcher.AssertExpectations(t)
	})

	t.Run("Non-empty snapshot is served without any network call", func(t *testing.T) {
		fetcher := new(MockFetcher)
		cache := newFakeCache()
		service := NewContentService(cache, fetcher)

		fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()

		service.GetArticles(ctx, 0) // populates the snapshot
		articles, source := service.GetArticles(ctx, 0)

		assert.Equal(t, SourceCache, source)
		assert.Len(t, articles, 2)
		fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	})

	t.Run("Clear-cache round trip forces a fresh fetch", func(t *testing.T) {
		fetcher := new(MockFetcher)
		cache := newFakeCache()
		service := NewContentService(cache, fetcher)

		fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil)

		service.GetArticles(ctx, 0)
		assert.NoError(t, service.ClearCache())
		_, source := service.GetArticles(ctx, 0)

		assert.Equal(t, SourceLive, source)
		fetcher.AssertNumberOfCalls(t, "Fetch", 2)
	})

	t.Run("Total retrieval failure without snapshot degrades to placeholders", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		fetcher.On("Fetch", mock.Anything).Return(nil, ErrAllStrategiesFailed)

		articles, source := service.GetArticles(ctx, 0)
		assert.Equal(t, SourceFallback, source)
		assert.NotEmpty(t, articles)
		assert.Equal(t, "O Futuro da Educação Híbrida", articles[0].Title)
	})

	t.Run("Limit truncates the listing", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()

		articles, _ := service.GetArticles(ctx, 1)
		assert.Len(t, articles, 1)
	})
}

func TestContentService_GetVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("Videos come from the same bulk refresh", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()

		videos, source := service.GetVideos(ctx, 0)
		assert.Equal(t, SourceLive, source)
		assert.Len(t, videos, 1)
		assert.Equal(t, "2", videos[0].ID)
		assert.Equal(t, "Aula no YouTube", videos[0].Title)
	})

	t.Run("Failure degrades to the placeholder video", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		fetcher.On("Fetch", mock.Anything).Return(nil, ErrAllStrategiesFailed)

		videos, source := service.GetVideos(ctx, 0)
		assert.Equal(t, SourceFallback, source)
		assert.NotEmpty(t, videos)
	})
}

func TestContentService_GetArticleByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves from the snapshot without a network call", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()
		service.GetArticles(ctx, 0)

		article, err := service.GetArticleByID(ctx, "3")
		assert.NoError(t, err)
		assert.Equal(t, "Artigo de Longevidade", article.Title)
		fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	})

	t.Run("Snapshot miss triggers a single-item fetch", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		var post models.WPPost
		post.ID = 99
		post.Date = "2024-06-01T08:00:00"
		post.Title.Rendered = "Artigo Avulso"
		post.Content.Rendered = "<p>texto</p>"
		payload, _ := json.Marshal(post)

		fetcher.On("Fetch", "/posts/99?_embed=1").Return(json.RawMessage(payload), nil).Once()

		article, err := service.GetArticleByID(ctx, "99")
		assert.NoError(t, err)
		assert.Equal(t, "99", article.ID)
		assert.Equal(t, "Artigo Avulso", article.Title)
		fetcher.AssertExpectations(t)
	})

	t.Run("A video post is not an article, even by id", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		var post models.WPPost
		post.ID = 55
		post.Title.Rendered = "Aula"
		post.Content.Rendered = `<iframe src="https://vimeo.com/55"></iframe>`
		payload, _ := json.Marshal(post)

		fetcher.On("Fetch", "/posts/55?_embed=1").Return(json.RawMessage(payload), nil).Once()

		article, err := service.GetArticleByID(ctx, "55")
		assert.Nil(t, article)
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})

	t.Run("Unknown id reports not found", func(t *testing.T) {
		fetcher := new(MockFetcher)
		service := NewContentService(newFakeCache(), fetcher)

		fetcher.On("Fetch", "/posts/404?_embed=1").Return(nil, ErrAllStrategiesFailed).Once()

		article, err := service.GetArticleByID(ctx, "404")
		assert.Nil(t, article)
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})
}

func TestContentService_GetArticlesByPillar(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockFetcher)
	service := NewContentService(newFakeCache(), fetcher)

	fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()

	articles, _ := service.GetArticlesByPillar(ctx, models.PillarConsultoria, 0)
	assert.Len(t, articles, 1)
	assert.Equal(t, "Artigo Imobiliário", articles[0].Title)

	// The filter runs over the full listing; no extra remote query.
	service.GetArticlesByPillar(ctx, models.Pillar4050OuMais, 0)
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestContentService_StaticCatalog(t *testing.T) {
	service := NewContentService(newFakeCache(), new(MockFetcher))

	assert.Len(t, service.GetPillars(), 4)
	assert.NotEmpty(t, service.GetCourses())
	assert.NotEmpty(t, service.GetBooks())
	assert.NotEmpty(t, service.GetResources())

	course, err := service.GetCourseByID("c1")
	assert.NoError(t, err)
	assert.Equal(t, "Master em Investimento Imobiliário", course.Name)

	_, err = service.GetCourseByID("nope")
	assert.Error(t, err)
}

func TestContentService_CorruptSnapshotIsAMiss(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockFetcher)
	cache := newFakeCache()
	service := NewContentService(cache, fetcher)

	assert.NoError(t, cache.Put("phd_articles_cache_v1", "{not json"))
	fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(listingPayload(t), nil).Once()

	_, source := service.GetArticles(ctx, 0)
	assert.Equal(t, SourceLive, source)
}

func TestContentService_FetchErrorVariants(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockFetcher)
	service := NewContentService(newFakeCache(), fetcher)

	// A malformed bulk payload degrades the same way as a failed fetch.
	fetcher.On("Fetch", "/posts?_embed=1&per_page=50").Return(json.RawMessage(`"not-a-listing"`), nil).Once()

	_, source := service.GetArticles(ctx, 0)
	assert.Equal(t, SourceFallback, source)
}
