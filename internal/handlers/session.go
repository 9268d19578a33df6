package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	adminSessionKey       = "admin_logged_in"
	flashSessionKey       = "flash"
	currentApplicationKey = "current_application_id"
)

// Sessions wraps the session store with the few values the app keeps there.
type Sessions struct {
	store *session.Store
}

func NewSessions(store *session.Store) *Sessions {
	return &Sessions{store: store}
}

func (s *Sessions) set(c *fiber.Ctx, key string, value interface{}) {
	sess, err := s.store.Get(c)
	if err != nil {
		log.Printf("⚠️  Failed to load session: %v\n", err)
		return
	}
	sess.Set(key, value)
	if err := sess.Save(); err != nil {
		log.Printf("⚠️  Failed to save session: %v\n", err)
	}
}

// Flash stores a message shown once on the next rendered page.
func (s *Sessions) Flash(c *fiber.Ctx, message string) {
	s.set(c, flashSessionKey, message)
}

// PopFlash returns and clears the pending flash message.
func (s *Sessions) PopFlash(c *fiber.Ctx) string {
	sess, err := s.store.Get(c)
	if err != nil {
		return ""
	}

	message, _ := sess.Get(flashSessionKey).(string)
	if message == "" {
		return ""
	}

	sess.Delete(flashSessionKey)
	if err := sess.Save(); err != nil {
		log.Printf("⚠️  Failed to save session: %v\n", err)
	}
	return message
}

func (s *Sessions) IsAdmin(c *fiber.Ctx) bool {
	sess, err := s.store.Get(c)
	if err != nil {
		return false
	}
	loggedIn, _ := sess.Get(adminSessionKey).(bool)
	return loggedIn
}

func (s *Sessions) Login(c *fiber.Ctx) {
	s.set(c, adminSessionKey, true)
}

func (s *Sessions) Logout(c *fiber.Ctx) {
	sess, err := s.store.Get(c)
	if err != nil {
		return
	}
	sess.Delete(adminSessionKey)
	if err := sess.Save(); err != nil {
		log.Printf("⚠️  Failed to save session: %v\n", err)
	}
}

func (s *Sessions) SetCurrentApplication(c *fiber.Ctx, id uint) {
	s.set(c, currentApplicationKey, id)
}

// RequireAdmin sends visitors without an admin session back to the login page.
func (s *Sessions) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.IsAdmin(c) {
			return c.Redirect("/admin")
		}
		return c.Next()
	}
}
