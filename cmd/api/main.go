package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trimlyapp/trimly-api/internal/cache"
	"github.com/trimlyapp/trimly-api/internal/config"
	dbpkg "github.com/trimlyapp/trimly-api/internal/db"
	"github.com/trimlyapp/trimly-api/internal/routes"
	"github.com/trimlyapp/trimly-api/internal/timezone"
)

func main() {

	cfg := config.Load()
	timezone.SetDefault(cfg.DefaultTimezone)

	db := dbpkg.NewDB(cfg)
	slotCache := cache.New(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, slotCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
