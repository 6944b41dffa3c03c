package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders printable pages with html/template plus a small set of
// formatting helpers.
type TemplateEngine struct {
	funcMap  template.FuncMap
	location *time.Location
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithLocation sets the time zone used by the date helpers (default UTC)
func WithLocation(loc *time.Location) TemplateEngineOption {
	return func(e *TemplateEngine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithFuncs adds or overrides template helpers
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{location: time.UTC}
	e.funcMap = template.FuncMap{
		"formatDate":     e.formatDate,
		"formatDateTime": e.formatDateTime,

		"truncate": truncate,
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"trim":     strings.TrimSpace,

		"seq":     seq,
		"add":     func(a, b int) int { return a + b },
		"mul":     func(a, b int) int { return a * b },
		"mm":      mm,
		"dict":    dict,
		"default": defaultFunc,

		"safeURL": safeURL,
		"safeCSS": safeCSS,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse compiles a named template with the engine's helpers
func (e *TemplateEngine) Parse(name, content string) (*template.Template, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}
	return tmpl, nil
}

// Execute runs a compiled template
func (e *TemplateEngine) Execute(ctx context.Context, tmpl *template.Template, data interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// RenderString parses and renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data interface{}) (string, error) {
	tmpl, err := e.Parse(name, content)
	if err != nil {
		return "", err
	}
	return e.Execute(ctx, tmpl, data)
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// formatDate formats a time value as "2006-01-02"
func (e *TemplateEngine) formatDate(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(e.location).Format("2006-01-02")
}

// formatDateTime formats a time value as "2006-01-02 15:04"
func (e *TemplateEngine) formatDateTime(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(e.location).Format("2006-01-02 15:04")
}

// truncate shortens s to max runes including the suffix ("..." by default)
func truncate(s string, max int, suffix ...string) string {
	suf := "..."
	if len(suffix) > 0 {
		suf = suffix[0]
	}
	runes := []rune(s)
	sufRunes := []rune(suf)
	if len(runes) <= max {
		return s
	}
	if max <= len(sufRunes) {
		return string(sufRunes[:max])
	}
	return string(runes[:max-len(sufRunes)]) + suf
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// seq generates 0..n-1
func seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// mm formats a length for CSS, e.g. 63.33 -> "63.33mm"
func mm(v float64) template.CSS {
	return template.CSS(fmt.Sprintf("%.2fmm", v))
}

// dict creates a map from key-value pairs
func dict(pairs ...interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs)-1; i += 2 {
		if key, ok := pairs[i].(string); ok {
			result[key] = pairs[i+1]
		}
	}
	return result
}

func defaultFunc(val, def interface{}) interface{} {
	if val == nil {
		return def
	}
	if s, ok := val.(string); ok && s == "" {
		return def
	}
	return val
}

// safeURL marks a string as a trusted URL. Only for URLs built by this package.
func safeURL(s string) template.URL {
	return template.URL(s)
}

// safeCSS marks a string as trusted CSS. Only for styles built by this package.
func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

func toTime(v interface{}) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		for _, f := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	case int64:
		return time.Unix(val, 0)
	default:
		return time.Time{}
	}
}
