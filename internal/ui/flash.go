package ui

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/ctxkeys"
)

const flashCookieName = "flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash queues a message for the next page the visitor sees.
func Flash(w http.ResponseWriter, category, message string) {
	payload, err := json.Marshal([]ctxkeys.FlashMessage{{Category: category, Message: message}})
	if err != nil {
		slog.Error("failed to encode flash", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlashes reads pending messages and expires the cookie.
func TakeFlashes(w http.ResponseWriter, r *http.Request) []ctxkeys.FlashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []ctxkeys.FlashMessage
	err = json.Unmarshal(payload, &flashes)
	if err != nil {
		return nil
	}
	return flashes
}
