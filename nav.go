package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/navigation"
)

// navResponse is what the page script and the nav partial render from.
type navResponse struct {
	Section       string   `json:"section"`
	Index         int      `json:"index"`
	Sections      []string `json:"sections"`
	Transitioning bool     `json:"transitioning"`
	MenuOpen      bool     `json:"menuOpen"`
	FooterVisible bool     `json:"footerVisible"`
	Mode          string   `json:"mode"`
	Outcome       string   `json:"outcome,omitempty"`
	Scroll        string   `json:"scroll,omitempty"`
	PreventScroll bool     `json:"preventScroll,omitempty"`
	Restore       string   `json:"restore,omitempty"`
	RestoreDelay  int64    `json:"restoreDelayMs,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type navFunc func(c *gin.Context, sess *session, res *navResponse)

// navHandler runs fn against the visitor's session and answers with the
// resulting state: the nav partial for htmx, JSON otherwise.
func (s *server) navHandler(fn navFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := s.sessions.get(c)
		sess.mu.Lock()
		sess.history.observe(locationFromRequest(c))

		var res navResponse
		fn(c, sess, &res)

		snap := sess.ctrl.Snapshot()
		res.Section = snap.Current().Name
		res.Index = snap.Current().Index
		res.Sections = s.registry.Names()
		res.Transitioning = snap.IsTransitioning()
		res.MenuOpen = snap.MenuOpen()
		res.FooterVisible = snap.FooterVisible()
		res.Mode = sess.ctrl.Mode().String()
		res.Scroll = sess.view.take()
		written := sess.history.take()
		sess.mu.Unlock()

		if c.IsAborted() {
			return
		}
		if written != "" {
			c.Header("HX-Replace-Url", written)
		}
		if res.Scroll != "" {
			if ev, err := json.Marshal(map[string]any{"nav-show": gin.H{"section": res.Scroll, "footer": res.FooterVisible}}); err == nil {
				c.Header("HX-Trigger", string(ev))
			}
		}
		if c.GetHeader("HX-Request") == "true" {
			c.HTML(http.StatusOK, "nav.html", res)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func (res *navResponse) record(r navigation.Result) {
	res.Outcome = r.Outcome.String()
	if r.Err != nil {
		res.Error = r.Err.Error()
	}
}

func (s *server) navState(*gin.Context, *session, *navResponse) {}

// navLoad reports the page location after a load (event=load) or a routed
// navigation (event=navigation-end) and schedules the restore it implies.
func (s *server) navLoad(c *gin.Context, sess *session, res *navResponse) {
	var (
		r  navigation.Restore
		ok bool
	)
	if c.PostForm("event") == "navigation-end" {
		r, ok = sess.ctrl.NavigationEnd()
	} else {
		r, ok = sess.ctrl.Load()
	}
	if ok {
		res.Restore = r.Intent.Name
		res.RestoreDelay = r.Delay.Milliseconds()
	}
}

func (s *server) navWheel(c *gin.Context, sess *session, res *navResponse) {
	dy, err := strconv.ParseFloat(c.PostForm("deltaY"), 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "deltaY must be a number"})
		return
	}
	e := &navigation.WheelEvent{DeltaY: dy}
	res.record(sess.ctrl.Wheel(e))
	res.PreventScroll = e.DefaultPrevented()
}

func (s *server) navKey(c *gin.Context, sess *session, res *navResponse) {
	e := &navigation.KeyEvent{Key: c.PostForm("key")}
	res.record(sess.ctrl.Key(e))
	res.PreventScroll = e.DefaultPrevented()
}

// navScroll takes offsets as "index:top" pairs separated by commas.
func (s *server) navScroll(c *gin.Context, sess *session, res *navResponse) {
	scrollY, err1 := strconv.ParseFloat(c.PostForm("scrollY"), 64)
	viewport, err2 := strconv.ParseFloat(c.PostForm("viewport"), 64)
	offsets, err3 := parseOffsets(c.PostForm("offsets"))
	if err1 != nil || err2 != nil || err3 != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "scrollY, viewport and offsets are required"})
		return
	}
	res.record(sess.ctrl.Scroll(navigation.ScrollPosition{
		ScrollY:        scrollY,
		ViewportHeight: viewport,
		Offsets:        offsets,
	}))
}

func parseOffsets(raw string) ([]navigation.SectionOffset, error) {
	var out []navigation.SectionOffset
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx, top, found := strings.Cut(pair, ":")
		if !found {
			return nil, strconv.ErrSyntax
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			return nil, err
		}
		t, err := strconv.ParseFloat(top, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, navigation.SectionOffset{Index: i, Top: t})
	}
	return out, nil
}

// navSection is explicit navigation: menu links, dots, the back-to-top
// button. It goes through even during a cooldown.
func (s *server) navSection(c *gin.Context, sess *session, res *navResponse) {
	switch name := c.PostForm("section"); name {
	case "next":
		res.record(sess.ctrl.Next())
	case "previous":
		res.record(sess.ctrl.Previous())
	case "top":
		res.record(sess.ctrl.ScrollToTop())
	default:
		res.record(sess.ctrl.ScrollToSection(name))
	}
}

func (s *server) navMenu(c *gin.Context, sess *session, _ *navResponse) {
	if c.PostForm("open") == "false" {
		sess.ctrl.CloseMenu()
		return
	}
	sess.ctrl.ToggleMenu()
}
