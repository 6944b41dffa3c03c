package printing

import (
	"context"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEngine_GetFuncMap(t *testing.T) {
	engine := NewTemplateEngine(WithFuncs(template.FuncMap{"shout": func(s string) string { return s + "!" }}))
	funcMap := engine.GetFuncMap()

	for _, name := range []string{"formatDate", "truncate", "title", "seq", "mm", "dict", "safeURL", "shout"} {
		assert.NotNil(t, funcMap[name], name)
	}

	// the returned map is a copy
	delete(funcMap, "seq")
	assert.NotNil(t, engine.GetFuncMap()["seq"])
}

func TestTemplateEngine_RenderString(t *testing.T) {
	engine := NewTemplateEngine()
	ctx := context.Background()

	t.Run("simple", func(t *testing.T) {
		out, err := engine.RenderString(ctx, "greet", `Hello, {{.Name}}!`, map[string]string{"Name": "World"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", out)
	})

	t.Run("escapes html", func(t *testing.T) {
		out, err := engine.RenderString(ctx, "esc", `<b>{{.}}</b>`, "<script>")
		require.NoError(t, err)
		assert.Equal(t, "<b>&lt;script&gt;</b>", out)
	})

	t.Run("loop with helpers", func(t *testing.T) {
		out, err := engine.RenderString(ctx, "loop", `{{range seq 3}}[{{add . 1}}]{{end}}`, nil)
		require.NoError(t, err)
		assert.Equal(t, "[1][2][3]", out)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := engine.RenderString(ctx, "empty", "  ", nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := engine.RenderString(ctx, "bad", `{{.Name`, nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("execution error", func(t *testing.T) {
		_, err := engine.RenderString(ctx, "exec", `{{.Missing.Field}}`, struct{ Missing *struct{ Field string } }{})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := engine.RenderString(cancelled, "greet", `hi`, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTemplateEngine_FormatDate(t *testing.T) {
	tz := time.FixedZone("UTC+8", 8*3600)
	engine := NewTemplateEngine(WithLocation(tz))
	ts := time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-16", engine.formatDate(ts))
	assert.Equal(t, "2024-01-16 04:30", engine.formatDateTime(&ts))
	assert.Equal(t, "2024-01-15", NewTemplateEngine().formatDate("2024-01-15"))
	assert.Equal(t, "", engine.formatDate(nil))
	assert.Equal(t, "", engine.formatDate((*time.Time)(nil)))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		suffix   []string
		expected string
	}{
		{"short string", "Hello", 10, nil, "Hello"},
		{"exact length", "Hello", 5, nil, "Hello"},
		{"truncate with default suffix", "Hello World", 8, nil, "Hello..."},
		{"truncate with custom suffix", "Hello World", 8, []string{">>"}, "Hello >>"},
		{"multibyte runes", "螺丝刀套装十件", 5, nil, "螺丝..."},
		{"max shorter than suffix", "Hello World", 2, nil, ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.max, tt.suffix...))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Cable Ties", titleCase("cable ties"))
	assert.Equal(t, "", titleCase(""))
}

func TestSeq(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, seq(3))
	assert.Empty(t, seq(0))
	assert.Empty(t, seq(-1))
}

func TestMM(t *testing.T) {
	assert.Equal(t, template.CSS("63.33mm"), mm(63.333))
	assert.Equal(t, template.CSS("0.00mm"), mm(0))
}

func TestDict(t *testing.T) {
	d := dict("a", 1, "b", "two", 3, "ignored", "dangling")
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "two"}, d)
}

func TestDefaultFunc(t *testing.T) {
	assert.Equal(t, "fallback", defaultFunc(nil, "fallback"))
	assert.Equal(t, "fallback", defaultFunc("", "fallback"))
	assert.Equal(t, "value", defaultFunc("value", "fallback"))
	assert.Equal(t, 0, defaultFunc(0, "fallback"))
}
