// Package httpapi is the HTTP/JSON surface of the vault. It composes the
// user and credential services under per-user authorization: every
// credential route resolves the owner from the access token and the services
// only ever see that owner id.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkadlec/passvault/internal/logging"
	"github.com/mkadlec/passvault/internal/server/auth"
	"github.com/mkadlec/passvault/internal/server/config"
	"github.com/mkadlec/passvault/internal/server/models"
	"github.com/mkadlec/passvault/internal/server/services"
)

// UserProvider is the slice of UserService the handlers consume.
type UserProvider interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// CredentialProvider is the slice of CredentialService the handlers consume.
type CredentialProvider interface {
	Create(ctx context.Context, ownerID int64, site, siteUsername, secret, note string) (*models.Credential, error)
	List(ctx context.Context, ownerID int64) ([]*models.CredentialSummary, error)
	Reveal(ctx context.Context, ownerID, credentialID int64) (*services.RevealedCredential, error)
	Update(ctx context.Context, ownerID, credentialID int64, upd services.CredentialUpdate) error
	Delete(ctx context.Context, ownerID, credentialID int64) error
}

// Server is the HTTP server wrapping the gin router.
type Server struct {
	router      *gin.Engine
	address     string
	logger      logging.Logger
	users       UserProvider
	credentials CredentialProvider
	jwtSecret   []byte
}

// NewServer wires middleware, routes and handlers.
func NewServer(cfg *config.Config, logger logging.Logger, users UserProvider, credentials CredentialProvider) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		address:     cfg.Address,
		logger:      logger.With("module", "httpapi"),
		users:       users,
		credentials: credentials,
		jwtSecret:   []byte(cfg.SecretKey),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(s.logger))

	api := router.Group("/api")
	{
		api.GET("/", s.healthCheck)
		api.GET("/health", s.health)

		api.POST("/register", s.register)
		api.POST("/login", s.login)
		api.POST("/refresh", s.refresh)

		authed := api.Group("")
		authed.Use(requireToken(auth.TokenKindAccess, s.jwtSecret))
		{
			authed.GET("/me", s.me)
			authed.GET("/passwords", s.listCredentials)
			authed.POST("/passwords", s.createCredential)
			authed.GET("/passwords/:id/reveal", s.revealCredential)
			authed.PUT("/passwords/:id", s.updateCredential)
			authed.DELETE("/passwords/:id", s.deleteCredential)
		}
	}

	s.router = router
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
