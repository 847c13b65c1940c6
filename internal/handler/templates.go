package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/joestump/jobs-portal/web"
)

// BasePage carries layout-level data available to every template.
type BasePage struct {
	Title string
	Path  string
}

func newBasePage(r *http.Request, title string) BasePage {
	return BasePage{Title: title, Path: r.URL.Path}
}

// pageCache maps a page file name (e.g. "landing.html") to a compiled template
// set containing base.html + partials + that one page file, so
// {{define "content"}} blocks don't collide.
var pageCache map[string]*template.Template

func init() {
	partials, err := fs.Glob(web.TemplateFS, "templates/partials/*.html")
	if err != nil {
		panic("glob partials: " + err.Error())
	}

	pages, err := fs.Glob(web.TemplateFS, "templates/pages/*.html")
	if err != nil {
		panic("glob pages: " + err.Error())
	}

	pageCache = make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		files := make([]string, 0, 2+len(partials))
		files = append(files, "templates/base.html")
		files = append(files, partials...)
		files = append(files, p)

		t, err := template.New("").ParseFS(web.TemplateFS, files...)
		if err != nil {
			panic(fmt.Sprintf("parse %s: %v", p, err))
		}
		name, _ := strings.CutPrefix(p, "templates/pages/")
		pageCache[name] = t
	}
}

// render executes a full-page template (base layout + named page).
func render(w http.ResponseWriter, tmpl string, data any) {
	renderStatus(w, http.StatusOK, tmpl, data)
}

// renderStatus is render with an explicit status code. The page is buffered
// so a template error can still produce a 500.
func renderStatus(w http.ResponseWriter, status int, tmpl string, data any) {
	t, ok := pageCache[tmpl]
	if !ok {
		http.Error(w, "template not found: "+tmpl, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
