package utils

import (
	"cafewifi/model"
	"cafewifi/repository"
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
	"time"
)

const (
	SessionCookieName = "session"
	FlashCookieName   = "flash"

	sessionsKey = "sessions"
	userKey     = "current_user"
	flashesKey  = "flashes"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Sessions issues and reads the signed session and flash cookies.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	users  repository.UserRepositoryI
}

func NewSessions(secret string, ttl time.Duration, secure bool, users repository.UserRepositoryI) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		users:  users,
	}
}

// Middleware makes the sessions available to handlers and loads the user
// named by the session cookie. Invalid or stale cookies are dropped.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionsKey, s)

		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			if user := s.loadUser(c, token); user != nil {
				c.Set(userKey, user)
			} else {
				s.clearCookie(c, SessionCookieName)
			}
		}

		c.Next()
	}
}

func (s *Sessions) loadUser(c *gin.Context, token string) *model.User {
	claims, err := ValidateSessionToken(s.secret, token)
	if err != nil {
		return nil
	}
	user, err := s.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Failed to load session user %d: %v", claims.UserID, err)
		}
		return nil
	}
	return user
}

func (s *Sessions) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.secure, true)
}

func (s *Sessions) clearCookie(c *gin.Context, name string) {
	s.setCookie(c, name, "", -1)
}

func sessionsFrom(c *gin.Context) *Sessions {
	v, ok := c.Get(sessionsKey)
	if !ok {
		panic("utils: Sessions.Middleware is not installed")
	}
	return v.(*Sessions)
}

// Login starts a session for user.
func Login(c *gin.Context, user *model.User) error {
	s := sessionsFrom(c)
	token, err := GenerateSessionToken(s.secret, user, s.ttl)
	if err != nil {
		return err
	}
	s.setCookie(c, SessionCookieName, token, int(s.ttl.Seconds()))
	c.Set(userKey, user)
	return nil
}

// Logout ends the current session, if any.
func Logout(c *gin.Context) {
	sessionsFrom(c).clearCookie(c, SessionCookieName)
	c.Set(userKey, (*model.User)(nil))
}

// CurrentUser returns the logged-in user or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	s := sessionsFrom(c)
	flashes := append(pendingFlashes(c), Flash{Category: category, Message: message})
	c.Set(flashesKey, flashes)

	token, err := encodeFlashes(s.secret, flashes)
	if err != nil {
		log.Printf("Failed to encode flash messages: %v", err)
		return
	}
	s.setCookie(c, FlashCookieName, token, int(flashTTL.Seconds()))
}

// Flashes returns and consumes the queued messages.
func Flashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	if len(flashes) == 0 {
		return nil
	}
	c.Set(flashesKey, []Flash{})
	sessionsFrom(c).clearCookie(c, FlashCookieName)
	return flashes
}

// pendingFlashes merges the flash cookie of the request with messages added
// while handling it. The cookie is decoded once per request.
func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashesKey); ok {
		return v.([]Flash)
	}

	var flashes []Flash
	if token, err := c.Cookie(FlashCookieName); err == nil && token != "" {
		if decoded, err := decodeFlashes(sessionsFrom(c).secret, token); err == nil {
			flashes = decoded
		}
	}
	c.Set(flashesKey, flashes)
	return flashes
}
