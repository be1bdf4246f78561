package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

const flashCookie = "flash_toast"

// SetToast queues a toast for the client. HTMX requests receive it through
// the showToast event in HX-Trigger, merged into any events already set.
// A short-lived flash cookie carries it across plain 302 redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			zap.L().Warn("toast: existing HX-Trigger is not JSON, overwriting",
				zap.String("value", existing), zap.Error(err))
			events = map[string]any{}
		}
	}
	events["showToast"] = payload

	trigger, err := json.Marshal(events)
	if err != nil {
		zap.L().Warn("toast: marshal HX-Trigger", zap.Error(err))
		return
	}
	e.Response.Header().Set("HX-Trigger", string(trigger))

	cookie, err := json.Marshal(payload)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(cookie)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the page script
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast shows an error toast and answers with statusCode. HX-Reswap:
// none stops HTMX from swapping the plain-text body into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
