// Package session provides cookie-bound session management for checkout.
//
// Session data is held server-side in an in-process map — the rest of the
// store is in-memory for one session, so sessions are too. Only an encrypted
// session ID travels in the client cookie (HttpOnly, Secure in production,
// SameSite Lax).
//
// Session keys should be 32 or 64 bytes for HMAC authentication, and 16, 24,
// or 32 bytes for AES encryption. Production deployments must use
// cryptographically random keys generated with:
//
//	openssl rand -base64 32
package session

import (
	"bytes"
	"encoding/base32"
	"encoding/gob"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// MemoryStore is a sessions.Store backed by an in-process map with TTL.
// Values are gob-encoded; register custom types via gob.Register before use.
type MemoryStore struct {
	codecs  []securecookie.Codec
	options *sessions.Options

	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-process session store.
//
// Parameters:
//   - authKey: 32 or 64 bytes for HMAC authentication (verifies cookie integrity)
//   - encryptionKey: 16, 24, or 32 bytes for AES encryption (encrypts session ID cookie)
//   - secureCookie: set true in production (HTTPS only); false for localhost dev
//
// Sessions are configured with a 1-day expiration, HttpOnly, and SameSite Lax.
func NewMemoryStore(authKey, encryptionKey []byte, secureCookie bool) *MemoryStore {
	return &MemoryStore{
		codecs: securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   86400,                // 1 day
			HttpOnly: true,                 // No JavaScript access (XSS protection)
			Secure:   secureCookie,         // HTTPS only in production
			SameSite: http.SameSiteLaxMode, // CSRF protection, allows top-level navigation
		},
		entries: make(map[string]memoryEntry),
	}
}

// Get returns a session for the given name, loading stored values if a valid
// session cookie exists.
func (s *MemoryStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New creates a session. If a valid cookie exists, it decodes the session ID
// and loads data from the map. A missing/expired/invalid cookie yields a
// fresh session.
func (s *MemoryStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil // no cookie → new session, no error
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil // invalid/tampered/expired cookie → new session
	}

	session.ID = id
	if err := s.load(session); err != nil {
		return session, nil // entry missing or expired → new session
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session and writes the encrypted session cookie.
// If MaxAge < 0, the session and its server-side entry are deleted.
func (s *MemoryStore) Save(_ *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			s.mu.Lock()
			delete(s.entries, session.ID)
			s.mu.Unlock()
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}

	if err := s.save(session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *MemoryStore) save(session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	s.mu.Lock()
	s.entries[session.ID] = memoryEntry{data: buf.Bytes(), expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) load(session *sessions.Session) error {
	s.mu.Lock()
	entry, ok := s.entries[session.ID]
	if ok && time.Now().After(entry.expiresAt) {
		delete(s.entries, session.ID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s not found", session.ID)
	}
	return gob.NewDecoder(bytes.NewBuffer(entry.data)).Decode(&session.Values)
}
