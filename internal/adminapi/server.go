// Package adminapi exposes a JWT-protected HTTP API for back-office
// inventory and activity queries.
package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/config"
	"github.com/uzretail/storebot/internal/activity"
	"github.com/uzretail/storebot/internal/ledger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// Server hosts the admin HTTP API.
type Server struct {
	cfg       *config.AppConfig
	echo      *echo.Echo
	db        *gorm.DB
	inventory *ledger.Service
	people    *activity.Service
}

func NewServer(cfg *config.AppConfig, db *gorm.DB, inventory *ledger.Service, people *activity.Service) *Server {
	s := &Server{
		cfg:       cfg,
		echo:      echo.New(),
		db:        db,
		inventory: inventory,
		people:    people,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.POST("/api/login", s.login)

	api := s.echo.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.cfg.AdminAPI.JwtSecret),
	}))
	api.GET("/products", s.listProducts)
	api.GET("/products/:name", s.getProduct)
	api.POST("/products/adjust", s.adjustProduct)
	api.GET("/activities", s.listActivities)
	api.GET("/stats", s.stats)
	api.GET("/export/products.xlsx", s.exportProducts)
}

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.AdminAPI.Host, s.cfg.AdminAPI.Port)
	zap.L().Info("admin api listening", zap.String("addr", addr))

	errc := make(chan error, 1)
	go func() {
		errc <- s.echo.Start(addr)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "admin api serve")
	}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	if payload.Username != s.cfg.AdminAPI.Username || payload.Password != s.cfg.AdminAPI.Password {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Wrong username or password", nil)
	}
	claims := jwt.MapClaims{
		"usr": payload.Username,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AdminAPI.JwtSecret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}
	return ok(c, map[string]string{"token": signed})
}
