package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tanimarket/internal/config"
	"tanimarket/internal/devserver"
)

func main() {
	seed := flag.Bool("seed", true, "seed demo accounts and products")
	flag.Parse()

	// Prices go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := devserver.New(cfg.Server.JWTSecret)
	if *seed {
		if err := server.Seed(); err != nil {
			log.Fatal("Failed to seed development data:", err)
		}
		log.Println("Seeded demo accounts (password: password123)")
	}

	log.Printf("Development backend listening on :%s", cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
