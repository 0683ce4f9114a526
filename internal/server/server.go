// Package server wires the HTTP routes to the service layer.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/onzevirtual/fm-analytics/internal/auth"
	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/license"
	"github.com/onzevirtual/fm-analytics/internal/middleware"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/onzevirtual/fm-analytics/internal/service"
)

type Server struct {
	auth       *auth.Handler
	matches    *service.MatchService
	dashboards *service.DashboardService
	licenses   *service.LicenseService
	exports    *service.ExportService
	backups    *service.BackupService
	logger     zerolog.Logger
}

func New(
	authHandler *auth.Handler,
	matches *service.MatchService,
	dashboards *service.DashboardService,
	licenses *service.LicenseService,
	exports *service.ExportService,
	backups *service.BackupService,
	logger zerolog.Logger,
) *Server {
	return &Server{
		auth:       authHandler,
		matches:    matches,
		dashboards: dashboards,
		licenses:   licenses,
		exports:    exports,
		backups:    backups,
		logger:     logger.With().Str("component", "server").Logger(),
	}
}

// Router builds the gin engine with every route mounted under /api.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(s.logger))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/plans", s.listPlans)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.auth.Register)
	authGroup.POST("/login", s.auth.Login)
	authGroup.POST("/logout", s.auth.Logout)
	authGroup.GET("/me", s.auth.AuthRequired(), s.auth.Me)

	protected := api.Group("", s.auth.AuthRequired())
	protected.GET("/matches", s.listMatches)
	protected.POST("/matches", s.createMatch)
	protected.DELETE("/matches/:id", s.deleteMatch)
	protected.GET("/matches/export", s.exportMatches)
	protected.GET("/seasons", s.listSeasons)
	protected.GET("/dashboard", s.dashboard)
	protected.GET("/license", s.licenseInfo)
	protected.POST("/license/activate", s.activateLicense)
	protected.POST("/backup", s.runBackup)

	return r
}

// matchRequest is the wire form of one match record.
type matchRequest struct {
	Team        string           `json:"team" binding:"required"`
	Opponent    string           `json:"opponent" binding:"required"`
	Venue       string           `json:"venue" binding:"required"`
	Competition string           `json:"competition"`
	Season      string           `json:"season"`
	Date        string           `json:"date" binding:"required"`
	Round       int              `json:"round"`
	Us          domain.TeamStats `json:"us"`
	Them        domain.TeamStats `json:"them"`
}

func (s *Server) createMatch(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req matchRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}

	venue := domain.Venue(req.Venue)
	if venue != domain.VenueHome && venue != domain.VenueAway {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("venue must be %q or %q", domain.VenueHome, domain.VenueAway)})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	m := domain.Match{
		Team:        req.Team,
		Opponent:    req.Opponent,
		Venue:       venue,
		Competition: req.Competition,
		Season:      req.Season,
		Date:        date,
		Round:       req.Round,
		Us:          req.Us,
		Them:        req.Them,
	}

	stored, warning, err := s.matches.Add(c.Request.Context(), user, m)
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := gin.H{"match": stored}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) listMatches(c *gin.Context) {
	user := auth.CurrentUser(c)

	matches, err := s.matches.List(c.Request.Context(), user.ID, filterFromQuery(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": len(matches)})
}

func (s *Server) deleteMatch(c *gin.Context) {
	user := auth.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}

	deleted, err := s.matches.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listSeasons(c *gin.Context) {
	user := auth.CurrentUser(c)

	seasons, err := s.matches.Seasons(c.Request.Context(), user.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if seasons == nil {
		seasons = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

func (s *Server) dashboard(c *gin.Context) {
	user := auth.CurrentUser(c)

	d, err := s.dashboards.Build(c.Request.Context(), user.ID, filterFromQuery(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) exportMatches(c *gin.Context) {
	user := auth.CurrentUser(c)

	buf, err := s.exports.ExcelWorkbook(c.Request.Context(), user, filterFromQuery(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	filename := fmt.Sprintf("matches-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func (s *Server) licenseInfo(c *gin.Context) {
	user := auth.CurrentUser(c)

	lic, err := s.licenses.LicenseFor(c.Request.Context(), user)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic.Info())
}

func (s *Server) activateLicense(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activation code required"})
		return
	}

	info, err := s.licenses.Activate(c.Request.Context(), user, req.Code)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) listPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"plans":      license.Plans,
		"comparison": license.ComparePlans(),
	})
}

func (s *Server) runBackup(c *gin.Context) {
	user := auth.CurrentUser(c)

	receipt, err := s.backups.Run(c.Request.Context(), user)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func filterFromQuery(c *gin.Context) repository.MatchFilter {
	return repository.MatchFilter{
		Season:      c.Query("season"),
		Competition: c.Query("competition"),
		Team:        c.Query("team"),
	}
}

// writeError maps service errors to HTTP statuses. Entitlement refusals
// surface their user-facing message; everything else is opaque.
func (s *Server) writeError(c *gin.Context, err error) {
	var entitlement *service.EntitlementError
	if errors.As(err, &entitlement) {
		resp := gin.H{"error": entitlement.Message}
		if entitlement.Reason != "" {
			resp["upgrade"] = license.UpgradeMessageFor(entitlement.Reason)
		}
		c.JSON(http.StatusForbidden, resp)
		return
	}
	if domain.IsValidationError(err) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
