package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "storefront_checkout"
	sessionKey  = "checkout_token"

	// TokenHeader lets non-browser clients carry the checkout token
	// explicitly instead of relying on the session cookie.
	TokenHeader = "X-Checkout-Token"
)

// resolveToken extracts the checkout token from the request: the
// X-Checkout-Token header wins, then the session cookie. Returns "" when the
// request carries no token.
func resolveToken(r *http.Request, store sessions.Store) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	sess, err := store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[sessionKey].(string)
	return token
}

// saveToken binds the checkout token to the caller's session cookie.
func saveToken(w http.ResponseWriter, r *http.Request, store sessions.Store, token string) error {
	sess, err := store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes to a fresh session; keep going.
		sess, err = store.New(r, sessionName)
		if err != nil {
			return err
		}
	}
	sess.Values[sessionKey] = token
	return sess.Save(r, w)
}

// clearToken drops the checkout token from the caller's session cookie.
func clearToken(w http.ResponseWriter, r *http.Request, store sessions.Store) {
	sess, err := store.Get(r, sessionName)
	if err != nil {
		return
	}
	delete(sess.Values, sessionKey)
	_ = sess.Save(r, w)
}
