package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/phdonas/site/config"
	"github.com/phdonas/site/models"
	"github.com/phdonas/site/repository"

	"github.com/samber/lo"
)

// Source reports where a content read was answered from, so callers and tests
// can distinguish cache hits, live fetches and the placeholder fallback
// without scraping logs.
type Source string

const (
	SourceCache    Source = "cache"
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// ErrArticleNotFound is returned when an article cannot be resolved either
// from the snapshot or from a single-item fetch.
var ErrArticleNotFound = errors.New("article not found")

// ContentService orchestrates the fetch pipeline and the mapper to serve the
// site's content. Remote listings are cached as versioned whole-array
// snapshots; bumping the cache version at deploy time implicitly invalidates
// old entries. Reads degrade cache-then-placeholder, never with an error
// reaching the presentation layer.
type ContentService interface {
	GetArticles(ctx context.Context, limit int) ([]models.Article, Source)
	GetArticleByID(ctx context.Context, id string) (*models.Article, error)
	GetVideos(ctx context.Context, limit int) ([]models.Video, Source)
	GetArticlesByPillar(ctx context.Context, pillarID models.PillarID, limit int) ([]models.Article, Source)
	GetPillars() []models.Pillar
	GetCourses() []models.Course
	GetCourseByID(id string) (*models.Course, error)
	GetBooks() []models.Book
	GetResources() []models.Resource
	ClearCache() error
}

type contentService struct {
	cache   repository.CacheRepository
	fetcher ContentFetcher
	version string
	perPage int
}

// NewContentService creates the content store over the given cache repository
// and fetch pipeline. Cache version and page size come from the application
// config.
func NewContentService(cache repository.CacheRepository, fetcher ContentFetcher) ContentService {
	version := config.AppConfig.WordPress.CacheVersion
	if version == "" {
		version = "v1"
	}
	perPage := config.AppConfig.WordPress.PerPage
	if perPage <= 0 {
		perPage = 50
	}
	return &contentService{
		cache:   cache,
		fetcher: fetcher,
		version: version,
		perPage: perPage,
	}
}

func (s *contentService) articlesKey() string { return "phd_articles_cache_" + s.version }
func (s *contentService) videosKey() string   { return "phd_videos_cache_" + s.version }

// GetArticles returns the article listing. A non-empty snapshot under the
// current version key is served without any network call; otherwise one bulk
// fetch populates both the article and video snapshots. Total retrieval
// failure with no snapshot degrades to the built-in placeholder dataset so
// pages never render empty.
func (s *contentService) GetArticles(ctx context.Context, limit int) ([]models.Article, Source) {
	var cached []models.Article
	if s.readSnapshot(s.articlesKey(), &cached) && len(cached) > 0 {
		return truncate(cached, limit), SourceCache
	}

	articles, _, err := s.refresh(ctx)
	if err != nil {
		log.Printf("WARN: [ContentService] Refresh failed, serving placeholder articles: %v", err)
		return truncate(fallbackArticles(), limit), SourceFallback
	}
	return truncate(articles, limit), SourceLive
}

// GetVideos returns the video listing, with the same cache-then-refresh
// behavior as GetArticles.
func (s *contentService) GetVideos(ctx context.Context, limit int) ([]models.Video, Source) {
	var cached []models.Video
	if s.readSnapshot(s.videosKey(), &cached) && len(cached) > 0 {
		return truncate(cached, limit), SourceCache
	}

	_, videos, err := s.refresh(ctx)
	if err != nil {
		log.Printf("WARN: [ContentService] Refresh failed, serving placeholder videos: %v", err)
		return truncate(fallbackVideos(), limit), SourceFallback
	}
	return truncate(videos, limit), SourceLive
}

// GetArticleByID scans the cached snapshot first and falls back to a
// single-item fetch. Single-item lookups are not written back into the bulk
// snapshot.
func (s *contentService) GetArticleByID(ctx context.Context, id string) (*models.Article, error) {
	var cached []models.Article
	if s.readSnapshot(s.articlesKey(), &cached) {
		for i := range cached {
			if cached[i].ID == id {
				return &cached[i], nil
			}
		}
	}

	payload, err := s.fetcher.Fetch(ctx, fmt.Sprintf("/posts/%s?_embed=1", id))
	if err != nil {
		for _, article := range fallbackArticles() {
			if article.ID == id {
				return &article, nil
			}
		}
		return nil, ErrArticleNotFound
	}

	var post models.WPPost
	if err := json.Unmarshal(payload, &post); err != nil {
		log.Printf("WARN: [ContentService] Single-item payload for id '%s' is malformed: %v", id, err)
		return nil, ErrArticleNotFound
	}

	// The article/video partition applies to single-item lookups too.
	if IsVideoPost(post.Content.Rendered) {
		return nil, ErrArticleNotFound
	}

	article := MapToArticle(post)
	return &article, nil
}

// GetArticlesByPillar is a client-side filter over the full listing, not a
// separate remote query.
func (s *contentService) GetArticlesByPillar(ctx context.Context, pillarID models.PillarID, limit int) ([]models.Article, Source) {
	articles, source := s.GetArticles(ctx, 0)
	filtered := lo.Filter(articles, func(article models.Article, _ int) bool {
		return article.PillarID == pillarID
	})
	return truncate(filtered, limit), source
}

func (s *contentService) GetPillars() []models.Pillar { return models.Pillars }

func (s *contentService) GetCourses() []models.Course { return models.Courses }

func (s *contentService) GetCourseByID(id string) (*models.Course, error) {
	if course, ok := models.CourseByID(id); ok {
		return course, nil
	}
	return nil, fmt.Errorf("course '%s' not found", id)
}

func (s *contentService) GetBooks() []models.Book { return models.Books }

func (s *contentService) GetResources() []models.Resource { return models.Resources }

// ClearCache deletes both snapshot keys; the next read triggers a fresh fetch.
func (s *contentService) ClearCache() error {
	log.Println("INFO: [ContentService] Clearing content cache.")
	return s.cache.Delete(s.articlesKey(), s.videosKey())
}

// refresh performs the bulk listing fetch, partitions posts into articles and
// videos via IsVideoPost, maps them and persists both snapshots as whole
// arrays.
func (s *contentService) refresh(ctx context.Context) ([]models.Article, []models.Video, error) {
	payload, err := s.fetcher.Fetch(ctx, fmt.Sprintf("/posts?_embed=1&per_page=%d", s.perPage))
	if err != nil {
		return nil, nil, err
	}

	var posts []models.WPPost
	if err := json.Unmarshal(payload, &posts); err != nil {
		return nil, nil, fmt.Errorf("bulk listing payload is malformed: %w", err)
	}

	videoPosts, articlePosts := lo.FilterReject(posts, func(post models.WPPost, _ int) bool {
		return IsVideoPost(post.Content.Rendered)
	})

	articles := lo.Map(articlePosts, func(post models.WPPost, _ int) models.Article {
		return MapToArticle(post)
	})
	videos := lo.Map(videoPosts, func(post models.WPPost, _ int) models.Video {
		return MapToVideo(post)
	})

	s.writeSnapshot(s.articlesKey(), articles)
	s.writeSnapshot(s.videosKey(), videos)

	log.Printf("INFO: [ContentService] Refreshed content: %d articles, %d videos.", len(articles), len(videos))
	return articles, videos, nil
}

// readSnapshot loads and parses a snapshot. A missing or corrupt snapshot is
// a cache miss, never an error surfaced to callers.
func (s *contentService) readSnapshot(key string, out interface{}) bool {
	value, found, err := s.cache.Get(key)
	if err != nil {
		log.Printf("WARN: [ContentService] Failed to read snapshot '%s': %v", key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		log.Printf("WARN: [ContentService] Snapshot '%s' is corrupt, treating as miss: %v", key, err)
		return false
	}
	return true
}

// writeSnapshot replaces a snapshot with one serialized write. Persistence
// failures are logged and swallowed: the fresh data is still served.
func (s *contentService) writeSnapshot(key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("ERROR: [ContentService] Failed to serialize snapshot '%s': %v", key, err)
		return
	}
	if err := s.cache.Put(key, string(payload)); err != nil {
		log.Printf("ERROR: [ContentService] Failed to persist snapshot '%s': %v", key, err)
	}
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// fallbackArticles is the fixed built-in dataset served when the pipeline is
// exhausted and no snapshot exists. Titles are recognizable placeholders.
func fallbackArticles() []models.Article {
	return []models.Article{
		{
			ID: "1", Title: "O Futuro da Educação Híbrida", PillarID: models.PillarProfPaulo,
			Category: "Educação",
			Excerpt:  "Como a tecnologia está moldando a nova sala de aula e o papel do mentor....",
			Content:  "<p>Conteúdo indisponível no momento. Tente novamente em instantes.</p>",
			Date:     "2024-05-15", ImageURL: "https://images.unsplash.com/photo-1501504905252-473c47e087f8?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID: "2", Title: "Ciclos Imobiliários em 2024", PillarID: models.PillarConsultoria,
			Category: "Mercado",
			Excerpt:  "Análise profunda sobre onde investir nas grandes capitais brasileiras....",
			Content:  "<p>Conteúdo indisponível no momento. Tente novamente em instantes.</p>",
			Date:     "2024-05-10", ImageURL: "https://images.unsplash.com/photo-1560518883-ce09059eeffa?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID: "3", Title: "A Economia da Longevidade", PillarID: models.Pillar4050OuMais,
			Category: "Carreira",
			Excerpt:  "Por que o público sênior é a nova fronteira do consumo inteligente....",
			Content:  "<p>Conteúdo indisponível no momento. Tente novamente em instantes.</p>",
			Date:     "2024-05-08", ImageURL: "https://images.unsplash.com/photo-1531482615713-2afd69097998?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID: "4", Title: "Segurança no Manuseio de GLP", PillarID: models.PillarAcademiaGas,
			Category: "Técnico",
			Excerpt:  "Normas fundamentais e boas práticas para revendas de gás....",
			Content:  "<p>Conteúdo indisponível no momento. Tente novamente em instantes.</p>",
			Date:     "2024-04-22", ImageURL: "https://images.unsplash.com/photo-1581094288338-2314dddb7ecc?auto=format&fit=crop&q=80&w=800",
		},
	}
}

// fallbackVideos keeps the video sections from rendering empty while the
// source is unreachable.
func fallbackVideos() []models.Video {
	return []models.Video{
		{
			ID:      "v1",
			Title:   "Apresentação do Hub PH Donassolo",
			Content: "<p>Vídeo indisponível no momento. Tente novamente em instantes.</p>",
			Thumb:   PlaceholderImageURL,
		},
	}
}
