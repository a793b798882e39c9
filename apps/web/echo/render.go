package echoweb

import (
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/msms/fs"
)

const (
	templatesDir = "templates/web"
	baseTemplate = templatesDir + "/_base.gohtml"
)

type (
	// renderer executes one page template inside the shared base layout.
	renderer struct {
		templates map[string]*template.Template // {page name: template}
	}

	// layout is what every page template receives. The page's own data is in Data.
	layout struct {
		AppName string
		Title   string
		Active  string
		Flash   *flash
		Data    interface{}
	}

	flash struct {
		Kind    string // success | error
		Message string
	}
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"ids": func(ids []int) string {
		s := make([]string, len(ids))
		for i, id := range ids {
			s[i] = strconv.Itoa(id)
		}
		return strings.Join(s, ", ")
	},
	"stamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05") },
}

func newRenderer(debug bool) (*renderer, error) {
	fps, err := fs.Glob(appfs.FS, templatesDir+"/*.gohtml")
	if err != nil {
		return nil, err
	}

	r := &renderer{templates: make(map[string]*template.Template)}
	for _, fp := range fps {
		fname := path.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		name := strings.TrimSuffix(fname, path.Ext(fname))
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(appfs.FS, baseTemplate, fp)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fp)
		}
		if debug {
			tmpl = tmpl.Option("missingkey=error")
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("no template named %q", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
