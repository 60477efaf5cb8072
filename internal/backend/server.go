// Package backend is the reference People Manager API server: bearer-token
// auth plus person CRUD over sqlite. The peoplectl client treats it as any
// other backend; it exists so the system runs end to end out of the box and
// so client integration tests have a real collaborator.
package backend

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"peoplectl/internal/config"
)

// Server wires the HTTP routes to the store and token minter.
type Server struct {
	store  *Store
	minter *TokenMinter
	log    zerolog.Logger
	engine *gin.Engine
}

func New(cfg config.ServerConfig, store *Store, log zerolog.Logger) *Server {
	if cfg.GetEnv() != "DEV" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		store:  store,
		minter: NewTokenMinter(cfg.GetSecretKey(), cfg.GetAccessTokenExpiry()),
		log:    log,
	}
	s.initRoutes()
	return s
}

// Handler returns the root http.Handler, for both http.Server and httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) initRoutes() {
	engine := gin.New()
	engine.Use(s.requestLogger())
	engine.Use(gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		s.log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	}))

	engine.POST("/auth/signup", s.signupHandler)
	engine.POST("/auth/login", s.loginHandler)

	persons := engine.Group("/persons", s.requireAuth)
	persons.POST("", s.createPersonHandler)
	persons.GET("", s.listPersonsHandler)
	persons.GET("/:id", s.getPersonHandler)
	persons.PUT("/:id", s.replacePersonHandler)
	persons.PATCH("/:id", s.patchPersonHandler)
	persons.DELETE("/:id", s.deletePersonHandler)

	s.engine = engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		started := time.Now()
		c.Next()

		s.log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	}
}
