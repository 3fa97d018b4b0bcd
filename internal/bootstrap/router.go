package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/issue-tracker/internal/api/http"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/api/http/middleware"
	issuehttp "github.com/GoSim-25-26J-441/issue-tracker/internal/issues/http"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Issues         *service.IssueService
	DB             httpapi.Pinger
	Cache          httpapi.Pinger
	Limiter        *middleware.RateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	if dep.Limiter != nil {
		api.Use(dep.Limiter.Middleware())
	}

	issueHandler := issuehttp.NewHandler(dep.Issues)
	issueHandler.Register(api.Group("/issues"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
