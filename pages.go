package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/navigation"
	"github.com/Zachkp/portfolio/internal/theme"
)

// handlePage renders the single page. Every full load starts a fresh
// navigation session; the page script then reports its location to
// /nav/load.
func (s *server) handlePage(c *gin.Context) {
	sess := s.sessions.reset(c)
	site := s.content.Site()

	initial := ""
	if name, ok := navigation.DefaultAliases[strings.Trim(c.Request.URL.Path, "/")]; ok {
		initial = name
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":     site,
		"sections": s.registry.Names(),
		"initial":  initial,
		"mode":     s.cfg.NavMode().String(),
		"theme":    theme.ForRequest(c).Preference(),
		"form":     sess.form.Fields(),
	})
}

// handleProjects shows one project, or every project without a query.
func (s *server) handleProjects(c *gin.Context) {
	site := s.content.Site()
	data := gin.H{
		"site":     site,
		"projects": site.Projects,
		"backURL":  "/?from=navigation#projects",
		"theme":    theme.ForRequest(c).Preference(),
	}

	id := c.Query("project")
	if id == "" {
		c.HTML(http.StatusOK, "projects.html", data)
		return
	}
	p, err := site.Project(id)
	if errors.Is(err, content.ErrUnknownProject) {
		data["error"] = "Project not found"
		c.HTML(http.StatusNotFound, "projects.html", data)
		return
	}
	data["project"] = p
	c.HTML(http.StatusOK, "projects.html", data)
}

func (s *server) handleWork(c *gin.Context) {
	c.HTML(http.StatusOK, "entries.html", gin.H{
		"heading": "Work Experience",
		"entries": s.content.Site().Work,
	})
}

func (s *server) handleEducation(c *gin.Context) {
	c.HTML(http.StatusOK, "entries.html", gin.H{
		"heading": "Education",
		"entries": s.content.Site().Education,
	})
}

// HTMX Contact form endpoint - returns just the form HTML
func (s *server) handleContactForm(c *gin.Context) {
	sess := s.sessions.get(c)
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
		"form":  sess.form.Fields(),
	})
}

// handleContact submits the visitor's form through the relay. The fields
// survive a failure so the visitor can fix and resend.
func (s *server) handleContact(c *gin.Context) {
	sess := s.sessions.get(c)
	sess.form.Fill(mailer.Message{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	})

	out := sess.form.Submit(c.Request.Context())
	data := gin.H{
		"form":         sess.form.Fields(),
		"status":       sess.form.Status(),
		"clearAfterMs": sess.form.ClearAfter().Milliseconds(),
	}
	if !out.OK {
		data["error"] = out.Message
		c.HTML(http.StatusOK, "contact-error.html", data)
		return
	}
	data["success"] = "Thank you for your message! I'll get back to you soon."
	c.HTML(http.StatusOK, "contact-success.html", data)
}

// handleContactStatus re-renders the status banner, empty once it expired.
func (s *server) handleContactStatus(c *gin.Context) {
	sess := s.sessions.get(c)
	c.HTML(http.StatusOK, "contact-status.html", gin.H{
		"status":       sess.form.Status(),
		"clearAfterMs": sess.form.ClearAfter().Milliseconds(),
	})
}

func (s *server) handleResume(c *gin.Context) {
	r := s.content.Site().Resume
	path := filepath.Join(".", filepath.Clean("/"+r.Path))
	if r.Path == "" {
		c.HTML(http.StatusNotFound, "download-status.html", gin.H{"error": "Download failed. Please try again."})
		return
	}
	if _, err := os.Stat(path); err != nil {
		s.logger.Warn("resume download failed", "path", path, "error", err)
		c.HTML(http.StatusNotFound, "download-status.html", gin.H{"error": "Download failed. Please try again."})
		return
	}
	c.FileAttachment(path, r.Filename)
}

func (s *server) handleThemeToggle(c *gin.Context) {
	store := theme.ForRequest(c)
	changes, cancel := store.Subscribe()
	defer cancel()

	if _, err := store.Toggle(); err != nil {
		s.logger.Warn("theme toggle", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}
	// The page is told about the value the store published.
	next := <-changes
	c.Header("HX-Trigger", `{"theme-changed":"`+string(next)+`"}`)
	c.JSON(http.StatusOK, gin.H{"theme": next})
}
