// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zoobzio/clockz"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/storage/sqlite"
)

// retention is how long visitor data is kept.
const retention = 12 * 30 * 24 * time.Hour

type admin struct {
	creds  config.Admin
	store  *sqlite.Store
	logger *slog.Logger
	token  string
	salt   string // for IP hashing
}

func newAdmin(creds config.Admin, store *sqlite.Store, logger *slog.Logger) *admin {
	a := &admin{
		creds:  creds,
		store:  store,
		logger: logger,
		token:  generateToken(),
		salt:   generateToken(),
	}

	// Default credentials for development only.
	if a.creds.Username == "" && a.creds.Password == "" && gin.Mode() == gin.DebugMode {
		logger.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
		a.creds = config.Admin{Username: "admin", Password: "admin123"}
	}
	logger.Info("admin access available", "path", "/admin/login", "enabled", a.enabled())
	return a
}

func (a *admin) enabled() bool {
	return a.creds.Username != "" && a.creds.Password != ""
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generate admin token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP is consistent per IP for the life of the process.
func (a *admin) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + a.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// trackVisitors records page requests with a hashed IP. Static files, the
// navigation API and admin pages are skipped, and DNT is respected.
func (a *admin) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin") ||
			strings.HasPrefix(path, "/nav/") ||
			strings.HasPrefix(path, "/api") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			c.GetHeader("HX-Request") == "true" {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := sqlite.Visit{HashedIP: a.hashIP(c.ClientIP()), UserAgent: c.GetHeader("User-Agent"), Path: path}
		go func() {
			if err := a.store.RecordVisit(context.Background(), v); err != nil {
				a.logger.Warn("error recording visitor", "error", err)
			}
		}()
		c.Next()
	}
}

// cleanup removes visitor data older than the retention window.
func (a *admin) cleanup(ctx context.Context, now time.Time) {
	n, err := a.store.Cleanup(ctx, now.Add(-retention))
	if err != nil {
		a.logger.Error("error cleaning up old visitor data", "error", err)
		return
	}
	if n > 0 {
		a.logger.Info("privacy cleanup removed old visitor records", "count", n)
	}
}

func (a *admin) cleanupLoop(ctx context.Context, clock clockz.Clock, every time.Duration) {
	a.cleanup(ctx, clock.Now())
	timer := clock.NewTimer(every)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
			a.cleanup(ctx, clock.Now())
			timer.Reset(every)
		}
	}
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
		if a.enabled() && userOK && passOK {
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			a.logger.Info("admin login successful", "client", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		a.logger.Warn("failed admin login attempt", "client", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.authMiddleware())

	group.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			a.logger.Error("error loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisits(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	group.GET("/messages", func(c *gin.Context) {
		messages, err := a.store.RecentMessages(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": messages,
		})
	})

	group.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		a.cleanup(c.Request.Context(), time.Now())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.logger.Info("admin stats exported", "client", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
