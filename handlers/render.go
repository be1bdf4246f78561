package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"invoicegen/templates"
)

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// render writes content for HTMX requests and the full page otherwise.
func render(e *core.RequestEvent, status int, content, page templ.Component) error {
	component := page
	if isHTMX(e) {
		component = content
	}
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		e.Response.WriteHeader(status)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// redirect uses HX-Redirect for HTMX requests and a 302 otherwise.
func redirect(e *core.RequestEvent, url string) error {
	if isHTMX(e) {
		e.Response.Header().Set("HX-Redirect", url)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, url)
}

func notFound(e *core.RequestEvent) error {
	const msg = "Bill not found"
	if isHTMX(e) {
		return ErrorToast(e, http.StatusNotFound, msg)
	}
	return render(e, http.StatusNotFound, templates.NotFoundContent(msg), templates.NotFoundPage(msg))
}
