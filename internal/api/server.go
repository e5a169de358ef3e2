// Package api serves the schedule, admin console and report endpoints over
// HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	rerrors "github.com/queryshv/rad-report/internal/errors"
	"github.com/queryshv/rad-report/internal/export"
	"github.com/queryshv/rad-report/internal/notify"
	"github.com/queryshv/rad-report/internal/schedule"
)

// maxUploadBytes caps spreadsheet uploads.
const maxUploadBytes = 10 << 20

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Store    *schedule.Store
	Sessions *Sessions
	Mailer   *notify.Mailer
	PDF      export.PDFOptions
	Log      *zap.Logger
	// Now stamps report file names. Defaults to time.Now.
	Now func() time.Time
	// SecureCookies marks the admin cookie Secure.
	SecureCookies bool
}

// Server routes requests to handlers.
type Server struct {
	Deps
	log    *zap.Logger
	engine *gin.Engine
}

// New builds the router.
func New(d Deps) *Server {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	s := &Server{Deps: d, log: d.Log}

	r := gin.New()
	r.Use(recovery(s.log), requestLogger(s.log))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.GET("/schedule", s.getSchedule)
	api.POST("/schedule", s.postSchedule)

	rep := api.Group("/report")
	rep.POST("/preview", s.previewReport)
	rep.POST("/download", s.downloadReport)
	rep.POST("/email", s.emailReport)

	adm := api.Group("/admin")
	adm.POST("/login", s.login)
	adm.POST("/logout", s.logout)
	adm.GET("/session", s.session)

	console := adm.Group("/schedule", s.requireAdmin)
	console.GET("", s.listEntries)
	console.PUT("/:date", s.putEntry)
	console.DELETE("/:date", s.deleteEntry)
	console.POST("/import", s.importWorkbook)
	console.GET("/export", s.exportXLSX)
	console.GET("/export.pdf", s.exportPDF)

	r.NoRoute(func(c *gin.Context) {
		s.fail(c, rerrors.NotFound("Route "+c.Request.URL.Path))
	})

	s.engine = r
	return s
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server starting", zap.String("addr", addr), zap.String("store", s.Store.Location()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error("panic serving request", zap.String("path", c.Request.URL.Path), zap.Any("panic", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
	})
}

func (s *Server) requireAdmin(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	if s.Sessions == nil || !s.Sessions.Valid(token) {
		s.fail(c, rerrors.Unauthorized())
		return
	}
	c.Next()
}
