package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/JerryLinyx/wikiquiz/config"
	"github.com/JerryLinyx/wikiquiz/controllers"
)

// InitRouter builds the gin engine with CORS restricted to the configured
// front-end origins. Route paths match what the web front end already calls.
func InitRouter(cfg *config.Config, articles *controllers.ArticleController) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", controllers.Health)

	r.GET("/scrape-and-save", articles.ScrapeAndSave)
	r.GET("/generate-quiz", articles.GenerateQuiz)
	r.GET("/history", articles.GetHistory)
	r.GET("/quiz/:id", articles.GetQuizDetails)

	return r
}
