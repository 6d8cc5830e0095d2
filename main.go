package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ai-ready/backend/analyzer"
	"github.com/ai-ready/backend/config"
	"github.com/ai-ready/backend/logging"
	"github.com/ai-ready/backend/middleware"
	"github.com/ai-ready/backend/scraper"
	"github.com/ai-ready/backend/stats"
	"github.com/ai-ready/backend/store"
)

type server struct {
	analyzer  *analyzer.Analyzer
	store     *store.Store
	analytics *logging.Analytics
}

func loadEnv() {
	// Try .env.development first (for local development), then regular .env
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	usage, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize usage stats:", err)
	}
	defer usage.Shutdown()

	reportStore, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open report store:", err)
	}
	defer reportStore.Close()

	srv := &server{
		analyzer: analyzer.New(
			scraper.New(
				scraper.WithTimeout(cfg.ScrapeTimeout()),
				scraper.WithMaxBytes(cfg.MaxBodyBytes),
			),
			cfg.EngineConfig(),
			usage,
		),
		store:     reportStore,
		analytics: logging.Initialize(),
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.Analytics(srv.analytics))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", srv.analyzeURL)
		api.GET("/reports/:id", srv.getReport)
		api.GET("/reports", srv.listReports)
		api.POST("/leads", srv.captureLead)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, srv.analytics.Snapshot())
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func (s *server) analyzeURL(c *gin.Context) {
	var request struct {
		URL string `json:"url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	start := time.Now()
	report, err := s.analyzer.Analyze(c.Request.Context(), request.URL)
	duration := float64(time.Since(start).Milliseconds())
	s.analytics.TrackAnalysis(request.URL, duration, err != nil)

	if err != nil {
		var invalidURL *analyzer.InvalidURLError
		if errors.As(err, &invalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
			return
		}
		log.Printf("Analysis failed for %s: %v", request.URL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze URL"})
		return
	}

	id, err := s.store.SaveReport(report)
	if err != nil {
		log.Printf("Failed to persist report for %s: %v", report.URL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "report": report})
}

func (s *server) getReport(c *gin.Context) {
	report, err := s.store.GetReport(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *server) listReports(c *gin.Context) {
	limit := 20
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 {
		limit = parsed
	}

	summaries, err := s.store.RecentReports(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

func (s *server) captureLead(c *gin.Context) {
	var request struct {
		Email    string `json:"email" binding:"required,email"`
		URL      string `json:"url"`
		ReportID string `json:"reportId"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	id, err := s.store.SaveLead(&store.Lead{
		Email:    request.Email,
		URL:      request.URL,
		ReportID: request.ReportID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lead"})
		return
	}
	s.analytics.TrackLead()

	c.JSON(http.StatusOK, gin.H{"id": id})
}
