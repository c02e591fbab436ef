package main

import (
	"log"
	"os"
	"strings"
	"time"

	"ct_studio_backend/internal/objectstore"
	"ct_studio_backend/internal/router"
	"ct_studio_backend/internal/rowstore"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// JWT configuration
	jwtSecret := utils.Getenv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	utils.SetJWTSecret(jwtSecret)

	adminUsername := utils.Getenv("ADMIN_USERNAME", "admin")
	adminPassHash := utils.Getenv("ADMIN_PASSWORD_HASH", "")
	if adminPassHash == "" {
		log.Fatal("ADMIN_PASSWORD_HASH must be set (bcrypt hash of the operator password)")
	}
	tokenTTL := time.Duration(utils.GetenvInt("TOKEN_TTL_HOURS", 72)) * time.Hour

	// Row store: postgres for real deployments, memory for local work.
	var base rowstore.Store
	switch driver := utils.Getenv("STORE_DRIVER", "postgres"); driver {
	case "postgres":
		pg, err := rowstore.OpenPostgres(
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "ct_studio_user"),
			utils.Getenv("DB_PASSWORD", "ct_studio_password"),
			utils.Getenv("DB_NAME", "ct_studio_db"),
			utils.Getenv("DB_SSLMODE", "disable"),
		)
		if err != nil {
			log.Fatalf("Failed to open row store: %v", err)
		}
		base = pg
		utils.LogInfo("Row store initialized", map[string]interface{}{"driver": "postgres"})
	case "memory":
		base = rowstore.NewMemory()
		utils.LogInfo("Row store initialized", map[string]interface{}{"driver": "memory"})
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (expected postgres or memory)", driver)
	}

	// Read-through sheet cache. Redis when configured, otherwise in-process.
	var backend rowstore.CacheBackend
	if redisAddr := utils.Getenv("REDIS_ADDR", ""); redisAddr != "" {
		backend = rowstore.NewRedisCache(redisAddr, utils.Getenv("REDIS_PASSWORD", ""), utils.GetenvInt("REDIS_DB", 0))
		utils.LogInfo("Sheet cache initialized", map[string]interface{}{"backend": "redis", "addr": redisAddr})
	} else {
		backend = rowstore.NewMemoryCache()
		utils.LogInfo("Sheet cache initialized", map[string]interface{}{"backend": "memory"})
	}
	cacheTTL := time.Duration(utils.GetenvInt("CACHE_TTL_SECONDS", 300)) * time.Second
	store := rowstore.NewCached(base, backend, cacheTTL)

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	// Setup all application routes
	router.Setup(engine, router.Dependencies{
		Store:           store,
		Objects:         objectstore.NewMemory(),
		AdminUsername:   adminUsername,
		AdminPassHash:   adminPassHash,
		TokenTTL:        tokenTTL,
		MediaRootFolder: utils.Getenv("MEDIA_ROOT_FOLDER", "CT Studio Media"),
	})

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
