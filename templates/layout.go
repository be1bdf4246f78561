package templates

import (
	"context"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

const pageStyles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f3ef;color:#212529}
header.topbar{background:#212529;color:#fff;padding:.75rem 1.5rem;display:flex;gap:1.5rem;align-items:center}
header.topbar a{color:#fff;text-decoration:none}
main{max-width:1100px;margin:1.5rem auto;padding:0 1rem}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{border:1px solid #ddd;padding:.4rem .5rem;font-size:.9rem;vertical-align:top}
th{background:#333;color:#fff;text-align:left}
td.num,th.num{text-align:right}
.field{display:flex;flex-direction:column;gap:.2rem;margin-bottom:.5rem}
.field span{font-size:.8rem;color:#555}
.field-error{color:#b00020}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:.75rem}
fieldset{background:#fff;border:1px solid #ddd;margin-bottom:1rem}
.btn{display:inline-block;padding:.4rem .8rem;border:1px solid #212529;background:#fff;color:#212529;border-radius:4px;text-decoration:none;cursor:pointer}
.btn.primary{background:#212529;color:#fff}
.btn.danger{border-color:#b00020;color:#b00020}
.totals td{border:none}
.invoice{background:#fff;padding:2rem;border:1px solid #ddd}
.muted{color:#666;font-size:.85rem}
#toast{position:fixed;right:1rem;bottom:1rem;padding:.6rem 1rem;border-radius:4px;display:none;color:#fff}
@media print{header.topbar,.no-print{display:none}main{margin:0;max-width:none}.invoice{border:none}}
`

const toastScript = `
function showToast(msg,type){var t=document.getElementById('toast');t.textContent=msg;t.style.background=type==='error'?'#b00020':'#2e7d32';t.style.display='block';setTimeout(function(){t.style.display='none'},3500)}
document.body.addEventListener('showToast',function(e){showToast(e.detail.message,e.detail.type)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(!m)return;document.cookie='flash_toast=; Max-Age=0; path=/';try{var d=JSON.parse(decodeURIComponent(m[1]));showToast(d.message,d.type)}catch(e){}})();
`

// Page wraps content in the full HTML document with the top bar.
func Page(title string, content templ.Component) templ.Component {
	return component(func(ctx context.Context, b *templruntime.Buffer) error {
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + esc(title) + `</title>`)
		b.WriteString(`<meta name="htmx-config" content='{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":false,"error":true}]}'>`)
		b.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		b.WriteString(`<style>` + pageStyles + `</style></head><body hx-boost="true">`)
		b.WriteString(`<header class="topbar"><strong>Quotation Generator</strong>`)
		b.WriteString(`<a href="/bills">Bills</a><a href="/bills/new">New Bill</a></header>`)
		b.WriteString(`<main id="main-content">`)
		if err := content.Render(ctx, b); err != nil {
			return err
		}
		b.WriteString(`</main><div id="toast"></div><script>` + toastScript + `</script></body></html>`)
		return nil
	})
}
