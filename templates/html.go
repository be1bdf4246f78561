// Package templates holds the templ components for the bill pages.
package templates

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// component wraps a writer function the way generated templ code does: it
// shares the parent's pooled buffer when nested and flushes on release.
// Write errors stick in the buffer and surface from ReleaseBuffer.
func component(fn func(ctx context.Context, b *templruntime.Buffer) error) templ.Component {
	return templruntime.GeneratedTemplate(func(in templruntime.GeneratedComponentInput) (err error) {
		b, existing := templruntime.GetBuffer(in.Writer)
		if !existing {
			defer func() {
				if releaseErr := templruntime.ReleaseBuffer(b); err == nil {
					err = releaseErr
				}
			}()
		}
		if err := in.Context.Err(); err != nil {
			return err
		}
		return fn(in.Context, b)
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// multiline escapes s and turns newlines into <br>.
func multiline(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = esc(l)
	}
	return strings.Join(lines, "<br>")
}

func input(b *templruntime.Buffer, label, name, typ, value string, errs map[string]string) {
	b.WriteString(`<label class="field"><span>` + esc(label) + `</span>`)
	b.WriteString(`<input type="` + typ + `" name="` + name + `" value="` + esc(value) + `"`)
	if typ == "number" {
		b.WriteString(` step="any"`)
	}
	b.WriteString(`>`)
	fieldError(b, name, errs)
	b.WriteString(`</label>`)
}

func textarea(b *templruntime.Buffer, label, name, value string, rows int, errs map[string]string) {
	b.WriteString(`<label class="field"><span>` + esc(label) + `</span>`)
	b.WriteString(`<textarea name="` + name + `" rows="` + strconv.Itoa(rows) + `">` + esc(value) + `</textarea>`)
	fieldError(b, name, errs)
	b.WriteString(`</label>`)
}

func fieldError(b *templruntime.Buffer, name string, errs map[string]string) {
	if msg, ok := errs[name]; ok {
		b.WriteString(`<small class="field-error">` + esc(msg) + `</small>`)
	}
}
