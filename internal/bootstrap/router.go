package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/aiig/deliverables-backend/internal/api/http"
	"github.com/aiig/deliverables-backend/internal/deliverables"
	"github.com/aiig/deliverables-backend/internal/managers"
	"github.com/aiig/deliverables-backend/internal/projects"
	"github.com/aiig/deliverables-backend/internal/storage/postgres"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	FrontendOrigin string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	Logger         *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	// Unknown body fields are rejected, not dropped.
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(gin.Recovery())
	if dep.Logger != nil {
		r.Use(httpapi.RequestLogger(dep.Logger))
	}
	if dep.FrontendOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{dep.FrontendOrigin},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	store := postgres.NewStore(dep.DB)

	var cache *deliverables.Cache
	if dep.Redis != nil {
		cache = deliverables.NewCache(dep.Redis, time.Minute)
	}

	api := r.Group("/api")
	managers.NewHandler(managers.NewService(store)).Register(api.Group("/project-managers"))
	projects.NewHandler(projects.NewService(store)).Register(api.Group("/projects"))
	deliverables.NewHandler(deliverables.NewService(store, cache)).Register(api.Group("/deliverables"))

	return r
}
