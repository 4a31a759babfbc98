package tabbase

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
)

// Double-submit protection: the browser keeps a random nonce in an HttpOnly
// cookie and every form echoes an HMAC of that nonce.
const (
	csrfCookieName = "tb_csrf"
	csrfFormKey    = "csrf_token"
	csrfHeaderKey  = "X-CSRF-Token"

	// csrfLabel binds tokens to this use of the session secret.
	csrfLabel = "tabbase/form-post\x00"
)

var (
	errCSRFNoCookie = errors.New("csrf: nonce cookie missing")
	errCSRFNoToken  = errors.New("csrf: token missing")
	errCSRFMismatch = errors.New("csrf: token does not match nonce")
)

func csrfCookie(nonce string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     csrfCookieName,
		Value:    nonce,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func csrfNonce(r *http.Request) (string, bool) {
	c, err := r.Cookie(csrfCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func formToken(secret, nonce string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(csrfLabel))
	mac.Write([]byte(nonce))
	return hex.EncodeToString(mac.Sum(nil))
}

// submittedToken prefers the header so scripted clients need not send a form.
func submittedToken(r *http.Request) string {
	if t := r.Header.Get(csrfHeaderKey); t != "" {
		return t
	}
	_ = r.ParseForm()
	return r.PostForm.Get(csrfFormKey)
}

// EnsureCSRFCookie issues the nonce cookie on a first visit and returns the
// form token for the browser's nonce.
func EnsureCSRFCookie(w http.ResponseWriter, r *http.Request, secret string) string {
	nonce, ok := csrfNonce(r)
	if !ok {
		nonce = rand.Text()
		http.SetCookie(w, csrfCookie(nonce, r.TLS != nil))
	}
	return formToken(secret, nonce)
}

// CheckCSRF returns nil when the request carries the token for its nonce
// cookie, otherwise the reason it does not.
func CheckCSRF(r *http.Request, secret string) error {
	nonce, ok := csrfNonce(r)
	if !ok {
		return errCSRFNoCookie
	}
	token := submittedToken(r)
	if token == "" {
		return errCSRFNoToken
	}
	if !hmac.Equal([]byte(token), []byte(formToken(secret, nonce))) {
		return errCSRFMismatch
	}
	return nil
}
