package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/phdonas/site/config"
	"github.com/phdonas/site/models"
	"github.com/phdonas/site/repository"
	"github.com/phdonas/site/services"
	"github.com/phdonas/site/utils"

	"github.com/gin-gonic/gin"
)

// sessionTTL is how long an admin login stays valid.
const sessionTTL = 12 * time.Hour

// APIHandler holds all dependencies for API handlers, such as repositories and services.
type APIHandler struct {
	contentService   services.ContentService
	assistantService services.AssistantService
	chatRepo         repository.ChatRepository
	quotaRepo        repository.QuotaRepository
	settingsRepo     repository.SettingsRepository
	sessionRepo      repository.SessionRepository
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	contentService services.ContentService,
	assistantService services.AssistantService,
	chatRepo repository.ChatRepository,
	quotaRepo repository.QuotaRepository,
	settingsRepo repository.SettingsRepository,
	sessionRepo repository.SessionRepository,
) *APIHandler {
	return &APIHandler{
		contentService:   contentService,
		assistantService: assistantService,
		chatRepo:         chatRepo,
		quotaRepo:        quotaRepo,
		settingsRepo:     settingsRepo,
		sessionRepo:      sessionRepo,
	}
}

// InitHandler returns application initialization information: site settings,
// pillar records and the visitor's assistant quota state.
func (h *APIHandler) InitHandler(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		userID = fmt.Sprintf("guest_%d", time.Now().UnixNano())
		log.Printf("INFO: [API] No userID provided, generated new guest ID: %s", userID)
	}

	guestChatQuota := config.AppConfig.GuestChatQuota
	messagesSent := 0
	if quota, err := h.quotaRepo.GetQuota(userID); err == nil {
		messagesSent = quota.MessagesSent
	} else {
		log.Printf("WARN: [API] Failed to read quota for '%s': %v", userID, err)
	}

	remaining := guestChatQuota - messagesSent
	if remaining < 0 {
		remaining = 0
	}

	settings, err := h.settingsRepo.GetSettings()
	if err != nil {
		log.Printf("WARN: [API] Failed to load site settings, using defaults: %v", err)
		settings = models.DefaultSiteSettings()
	}

	c.JSON(http.StatusOK, models.InitResponse{
		UserID:         userID,
		GuestChatQuota: guestChatQuota,
		MessagesSent:   messagesSent,
		RemainingQuota: remaining,
		Settings:       settings,
		Pillars:        models.Pillars,
	})
}

// ArticlesHandler serves the article listing, optionally filtered by pillar
// and truncated by limit. The X-Content-Source header reports whether the
// response came from cache, a live fetch or the placeholder fallback.
func (h *APIHandler) ArticlesHandler(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	var articles []models.Article
	var source services.Source

	if pillarParam := c.Query("pillar"); pillarParam != "" {
		pillarID := models.PillarID(pillarParam)
		if !models.IsValidPillarID(pillarID) {
			utils.SendJSONError(c, http.StatusBadRequest, "Unknown pillar id.", nil, pillarParam)
			return
		}
		articles, source = h.contentService.GetArticlesByPillar(c.Request.Context(), pillarID, limit)
	} else {
		articles, source = h.contentService.GetArticles(c.Request.Context(), limit)
	}

	c.Header("X-Content-Source", string(source))
	c.JSON(http.StatusOK, articles)
}

// ArticleByIDHandler serves a single article.
func (h *APIHandler) ArticleByIDHandler(c *gin.Context) {
	id := c.Param("id")
	article, err := h.contentService.GetArticleByID(c.Request.Context(), id)
	if err != nil {
		utils.SendJSONError(c, http.StatusNotFound, "Article not found.", err, id)
		return
	}
	c.JSON(http.StatusOK, article)
}

// VideosHandler serves the video listing.
func (h *APIHandler) VideosHandler(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	videos, source := h.contentService.GetVideos(c.Request.Context(), limit)
	c.Header("X-Content-Source", string(source))
	c.JSON(http.StatusOK, videos)
}

// PillarsHandler serves the four static pillar records.
func (h *APIHandler) PillarsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.contentService.GetPillars())
}

// CoursesHandler serves the static course catalog.
func (h *APIHandler) CoursesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.contentService.GetCourses())
}

// CourseByIDHandler serves a single course record.
func (h *APIHandler) CourseByIDHandler(c *gin.Context) {
	id := c.Param("id")
	course, err := h.contentService.GetCourseByID(id)
	if err != nil {
		utils.SendJSONError(c, http.StatusNotFound, "Course not found.", err, id)
		return
	}
	c.JSON(http.StatusOK, course)
}

// BooksHandler serves the static book catalog.
func (h *APIHandler) BooksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.contentService.GetBooks())
}

// ResourcesHandler serves the downloadable resources catalog.
func (h *APIHandler) ResourcesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.contentService.GetResources())
}

// SettingsHandler serves the (possibly admin-edited) site settings.
func (h *APIHandler) SettingsHandler(c *gin.Context) {
	settings, err := h.settingsRepo.GetSettings()
	if err != nil {
		log.Printf("WARN: [API] Failed to load site settings, using defaults: %v", err)
		settings = models.DefaultSiteSettings()
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettingsHandler persists an edited copy of the site settings.
// Admin-only.
func (h *APIHandler) UpdateSettingsHandler(c *gin.Context) {
	var settings models.SiteSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid settings payload.", err)
		return
	}
	if err := h.settingsRepo.SaveSettings(settings); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save settings.", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// loginRequest is the admin login payload.
type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginHandler checks the configured admin password and issues a session token.
func (h *APIHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid login payload.", err)
		return
	}

	adminPassword := config.AppConfig.AdminPassword
	if adminPassword == "" || req.Password != adminPassword {
		utils.SendJSONError(c, http.StatusUnauthorized, "Invalid credentials.", nil)
		return
	}

	token, err := h.sessionRepo.Create(sessionTTL)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create session.", err)
		return
	}

	log.Println("INFO: [API] Admin login successful.")
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int(sessionTTL.Seconds())})
}

// LogoutHandler invalidates the current admin session. Admin-only.
func (h *APIHandler) LogoutHandler(c *gin.Context) {
	token := bearerToken(c)
	if err := h.sessionRepo.Delete(token); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to end session.", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCacheHandler deletes the content snapshots so the next read refetches.
// Admin-only.
func (h *APIHandler) ClearCacheHandler(c *gin.Context) {
	if err := h.contentService.ClearCache(); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to clear cache.", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseLimit parses the optional ?limit= query parameter; 0 means unlimited.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	var limit int
	if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit < 0 {
		return 0
	}
	return limit
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
