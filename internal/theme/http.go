package theme

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName holds the stored preference.
const CookieName = "theme"

// HintHeader is the client hint carrying the OS colour scheme.
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// CookieStorage keeps the preference in the visitor's cookie jar.
type CookieStorage struct {
	c     *gin.Context
	saved Theme
}

func NewCookieStorage(c *gin.Context) *CookieStorage {
	return &CookieStorage{c: c}
}

func (s *CookieStorage) Load() (Theme, bool) {
	if s.saved != "" {
		return s.saved, true
	}
	raw, err := s.c.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return Parse(raw)
}

func (s *CookieStorage) Save(t Theme) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(CookieName, string(t), int((365 * 24 * time.Hour).Seconds()), "/", "", false, false)
	s.saved = t
	return nil
}

// HeaderPreference reads the client hint from the request.
func HeaderPreference(c *gin.Context) SystemPreference {
	return func() (Theme, bool) {
		return Parse(c.GetHeader(HintHeader))
	}
}

// ForRequest builds a store bound to one request.
func ForRequest(c *gin.Context) *Store {
	c.Header("Accept-CH", HintHeader)
	return NewStore(NewCookieStorage(c), HeaderPreference(c))
}
