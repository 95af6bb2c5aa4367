package router

import (
	"net/http"
	"time"

	"cocktailhub/internal/config"
	"cocktailhub/internal/microservices/http-api/handler"
	"cocktailhub/internal/microservices/http-api/middleware"
	"cocktailhub/internal/microservices/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *zap.Logger
	DB              handler.Pinger
	AuthService     service.AuthService
	UserService     service.UserService
	CocktailService service.CocktailService
	ReviewService   service.ReviewService
}

// New builds the gin engine with the full route table.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		d.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))

	if len(d.Config.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(d.Config.CORSOrigins)))
	}

	if d.Config.PrometheusEnabled {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	limiter := middleware.NewRateLimiter(d.Config.RateLimitRPS, d.Config.RateLimitBurst, d.Logger)

	api := r.Group("/api")
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(d.AuthService, d.Logger))

	handler.NewSystemHandler(d.DB, d.Logger).RegisterRoutes(&r.RouterGroup, api)
	handler.NewAuthHandler(d.AuthService, d.Logger).RegisterRoutes(api, limiter.Handler())
	handler.NewUserHandler(d.UserService, d.Logger).RegisterRoutes(protected)
	handler.NewCocktailHandler(d.CocktailService, d.Logger).RegisterRoutes(api, protected)
	handler.NewReviewHandler(d.ReviewService, d.Logger).RegisterRoutes(protected)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
