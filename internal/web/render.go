package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-storefront/internal/cart"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

// PlaceholderImage replaces missing or broken pictures
const PlaceholderImage = "/static/placeholder.svg"

//go:embed templates static
var assets embed.FS

var pageNames = []string{"home", "menu", "cart", "checkout", "tracking", "notfound"}

// Renderer executes page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout, partials and every page
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(assets,
		"templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(assets, "templates/pages/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with status. The page is executed into a buffer first
// so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// staticFS serves stylesheet and placeholder image
func staticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"money":       money,
	"lineTotal":   func(l models.CartLine) string { return "$" + cart.Format(cart.LineTotal(l)) },
	"img":         imageOrPlaceholder,
	"placeholder": func() string { return PlaceholderImage },
	"rating":      formatRating,
	"join":        strings.Join,
	"date":        func(t time.Time) string { return t.Format("Jan 2, 2006 3:04 PM") },
	"dict":        dict,
}

// money formats an amount as dollars with two decimals
func money(v any) string {
	switch amount := v.(type) {
	case decimal.Decimal:
		return "$" + cart.Format(amount)
	case float64:
		return "$" + cart.Format(decimal.NewFromFloat(amount))
	case int:
		return "$" + cart.Format(decimal.NewFromInt(int64(amount)))
	}
	return fmt.Sprint(v)
}

func imageOrPlaceholder(url string) string {
	if strings.TrimSpace(url) == "" {
		return PlaceholderImage
	}
	return url
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return decimal.NewFromFloat(*r).StringFixed(1)
}

// dict builds a map from alternating keys and values for passing several
// values to a partial
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict needs key/value pairs")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}
