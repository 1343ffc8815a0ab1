package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zoobzio/clockz"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/navigation"
	"github.com/Zachkp/portfolio/internal/storage/sqlite"
)

// server holds everything the handlers share.
type server struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *sqlite.Store
	content  *content.Source
	mail     *mailer.Service
	relay    mailer.Relay
	registry *navigation.Registry
	sessions *sessions
	admin    *admin
	clock    clockz.Clock
}

type deps struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *sqlite.Store
	content *content.Source
	sender  mailer.Sender
	clock   clockz.Clock
}

func newServer(d deps) *server {
	if d.clock == nil {
		d.clock = clockz.RealClock
	}
	s := &server{
		cfg:      d.cfg,
		logger:   d.logger,
		store:    d.store,
		content:  d.content,
		registry: navigation.MustRegistry(navigation.DefaultSections...),
		clock:    d.clock,
	}
	s.mail = mailer.NewService(d.sender, d.store, d.logger)
	s.relay = s.mail
	if d.cfg.RelayURL != "" {
		s.relay = mailer.NewClient(d.cfg.RelayURL, nil, d.logger)
	}

	s.sessions = newSessions(d.cfg.Navigation.SessionTTL, d.clock, d.logger)
	s.sessions.newController = s.newController
	s.sessions.newForm = func() *mailer.Form {
		return mailer.NewForm(s.relay, mailer.WithClock(d.clock), mailer.WithStatusTTL(d.cfg.StatusTTL))
	}
	s.admin = newAdmin(d.cfg.Admin, d.store, d.logger)
	return s
}

// newController builds the navigation controller behind one page.
func (s *server) newController(sess *session) *navigation.Controller {
	ctrl := navigation.New(s.registry,
		navigation.WithMode(s.cfg.NavMode()),
		navigation.WithCooldown(s.cfg.Navigation.Cooldown),
		navigation.WithWheelThreshold(s.cfg.Navigation.WheelThreshold),
		navigation.WithHistory(sess.history, navigation.RepresentFragment),
		navigation.WithView(sess.view),
		navigation.WithScheduler(navigation.NewClockScheduler(s.clock)),
		navigation.WithLogger(s.logger.With("session", sess.id[:8])),
	)
	ctrl.OnChange(func(ch navigation.Change) {
		err := s.store.RecordSectionView(context.Background(), sqlite.SectionView{
			SessionID: sess.id,
			Section:   ch.To.Name,
			Source:    ch.Source.String(),
		})
		if err != nil {
			s.logger.Warn("record section view", "error", err)
		}
	})
	return ctrl
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.admin.trackVisitors())

	// The single page and its path aliases.
	for _, p := range []string{"/", "/home", "/about", "/project", "/contact"} {
		r.GET(p, s.handlePage)
	}
	r.GET("/projects-section", s.handleProjects)
	r.GET("/work-content", s.handleWork)
	r.GET("/education-content", s.handleEducation)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)
	r.GET("/contact/status", s.handleContactStatus)
	r.GET("/resume", s.handleResume)
	r.POST("/theme/toggle", s.handleThemeToggle)

	nav := r.Group("/nav")
	nav.GET("/state", s.navHandler(s.navState))
	nav.POST("/load", s.navHandler(s.navLoad))
	nav.POST("/wheel", s.navHandler(s.navWheel))
	nav.POST("/key", s.navHandler(s.navKey))
	nav.POST("/scroll", s.navHandler(s.navScroll))
	nav.POST("/section", s.navHandler(s.navSection))
	nav.POST("/menu", s.navHandler(s.navMenu))

	mailer.RegisterRoutes(r, s.mail)
	s.admin.routes(r)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Redirect(http.StatusFound, "/home")
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}

// background starts the periodic jobs: idle session eviction and visitor
// data retention.
func (s *server) background(ctx context.Context) {
	go s.sessions.run(ctx, time.Minute)
	go s.admin.cleanupLoop(ctx, s.clock, 24*time.Hour)
	go func() {
		if err := s.content.Watch(ctx); err != nil {
			s.logger.Warn("content hot reload disabled", "error", err)
		}
	}()
}
