package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"

	"github.com/JerryLinyx/wikiquiz/models"
	"github.com/JerryLinyx/wikiquiz/repository"
	"github.com/JerryLinyx/wikiquiz/services"
)

const (
	historyCacheKey = "history"
	historyCacheTTL = 10 * time.Minute
)

// PageScraper fetches a page and extracts its content.
type PageScraper interface {
	ScrapeArticle(ctx context.Context, url string) (services.ExtractedArticle, error)
}

// QuizProducer turns extracted article content into validated quiz items.
type QuizProducer interface {
	Generate(ctx context.Context, title, summary string, sections []string) ([]models.QuizItem, error)
}

// ArticleController wires the scrape/generate/history/details endpoints to
// the store, the scraper and the quiz generator.
type ArticleController struct {
	repo      repository.ArticleRepository
	scraper   PageScraper
	generator QuizProducer
	cache     *redis.Client
}

func NewArticleController(repo repository.ArticleRepository, scraper PageScraper, generator QuizProducer, cache *redis.Client) *ArticleController {
	return &ArticleController{
		repo:      repo,
		scraper:   scraper,
		generator: generator,
		cache:     cache,
	}
}

type historyEntry struct {
	ID        uint      `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// findOrScrape returns the article for url, scraping and creating it on a
// cache miss. A *services.FetchError from the scraper is the only client
// error on this path.
func (ac *ArticleController) findOrScrape(ctx context.Context, url string) (*models.Article, bool, error) {
	article, err := ac.repo.FindByURL(ctx, url)
	if err != nil {
		return nil, false, err
	}
	if article != nil {
		return article, true, nil
	}

	scraped, err := ac.scraper.ScrapeArticle(ctx, url)
	if err != nil {
		return nil, false, err
	}

	sections, err := json.Marshal(scraped.Sections)
	if err != nil {
		return nil, false, err
	}

	article = &models.Article{
		URL:      url,
		Title:    scraped.Title,
		Summary:  scraped.Summary,
		Sections: datatypes.JSON(sections),
	}
	if err := ac.repo.Create(ctx, article); err != nil {
		return nil, false, err
	}
	ac.invalidateHistory()
	return article, false, nil
}

// ScrapeAndSave handles GET /scrape-and-save?url=. A URL already on record is
// returned as-is without touching the live page.
func (ac *ArticleController) ScrapeAndSave(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	article, existed, err := ac.findOrScrape(c.Request.Context(), url)
	if err != nil {
		var fetchErr *services.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fetchErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "Saved successfully"
	if existed {
		message = "URL already exists"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"id":      article.ID,
		"title":   article.Title,
	})
}

// GenerateQuiz handles GET /generate-quiz?url=. The article is scraped first
// if needed; an already generated quiz is returned verbatim with no model
// call.
func (ac *ArticleController) GenerateQuiz(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}
	ctx := c.Request.Context()

	article, _, err := ac.findOrScrape(ctx, url)
	if err != nil {
		var fetchErr *services.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fetchErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if article.HasQuiz() {
		c.JSON(http.StatusOK, gin.H{
			"id":    article.ID,
			"title": article.Title,
			"quiz":  article.Quiz,
		})
		return
	}

	items, err := ac.generator.Generate(ctx, article.Title, article.Summary, article.SectionList())
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuizResponse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	quizJSON, err := json.Marshal(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	article, err = ac.repo.AttachQuiz(ctx, article.ID, datatypes.JSON(quizJSON))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ac.invalidateHistory()

	c.JSON(http.StatusOK, gin.H{
		"id":    article.ID,
		"title": article.Title,
		"quiz":  article.Quiz,
	})
}

// GetHistory handles GET /history, newest first. The listing is cached in
// redis; cache trouble degrades to a direct database read.
func (ac *ArticleController) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := ac.cache.Get(ctx, historyCacheKey).Result(); err == nil {
		var entries []historyEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			c.JSON(http.StatusOK, entries)
			return
		}
	} else if err != redis.Nil {
		log.Printf("history cache read failed: %v", err)
	}

	articles, err := ac.repo.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]historyEntry, 0, len(articles))
	for _, a := range articles {
		entries = append(entries, historyEntry{
			ID:        a.ID,
			URL:       a.URL,
			Title:     a.Title,
			CreatedAt: a.CreatedAt,
		})
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := ac.cache.Set(ctx, historyCacheKey, data, historyCacheTTL).Err(); err != nil {
			log.Printf("history cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, entries)
}

// GetQuizDetails handles GET /quiz/:id with the full stored record.
func (ac *ArticleController) GetQuizDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}

	article, err := ac.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         article.ID,
		"url":        article.URL,
		"title":      article.Title,
		"summary":    article.Summary,
		"sections":   article.SectionList(),
		"quiz":       article.Quiz,
		"created_at": article.CreatedAt,
	})
}

// Cache invalidation is advisory and must not block the request.
func (ac *ArticleController) invalidateHistory() {
	go func() {
		_ = ac.cache.Del(context.Background(), historyCacheKey).Err()
	}()
}
