package topictmpl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/contractgen/internal/topictmpl"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		template     string
		format       string
		placeholders []string
	}{
		{"no placeholders", "notify_all", "notify_all", nil},
		{"single", "notify/{group}", "notify/%s", []string{"group"}},
		{"multiple", "system/{id}/start/{mode}", "system/%s/start/%s", []string{"id", "mode"}},
		{"adjacent", "{a}{b}", "%s%s", []string{"a", "b"}},
		{"repeated name", "{id}/mirror/{id}", "%s/mirror/%s", []string{"id", "id"}},
		{"percent escaped", "rate/100%/{unit}", "rate/100%%/%s", []string{"unit"}},
		{"unclosed brace is literal", "notify/{group", "notify/{group", nil},
		{"unclosed after placeholder", "{a}/{b", "%s/{b", []string{"a"}},
		{"nested braces end at first close", "x/{a{b}/y", "x/%s/y", []string{"a{b"}},
		{"empty placeholder", "x/{}", "x/%s", []string{""}},
		{"empty template", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := topictmpl.Parse(tt.template)
			assert.Equal(t, tt.template, got.Raw)
			assert.Equal(t, tt.format, got.Format)
			assert.Equal(t, tt.placeholders, got.Placeholders)
		})
	}
}

func TestParseStrict(t *testing.T) {
	t.Run("accepts well formed templates", func(t *testing.T) {
		got, err := topictmpl.ParseStrict("system/{id}/start/{mode}")
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "mode"}, got.Placeholders)
		assert.Equal(t, "system/%s/start/%s", got.Format)
	})

	t.Run("accepts templates without placeholders", func(t *testing.T) {
		got, err := topictmpl.ParseStrict("notify_all")
		require.NoError(t, err)
		assert.Empty(t, got.Placeholders)
		assert.False(t, got.HasPlaceholders())
	})

	failures := []struct {
		name     string
		template string
		want     error
	}{
		{"unclosed", "notify/{group", topictmpl.ErrUnbalancedBraces},
		{"stray close", "notify/group}", topictmpl.ErrUnbalancedBraces},
		{"stray close before placeholder", "a}/{b}", topictmpl.ErrUnbalancedBraces},
		{"stray close after placeholder", "{a}/b}", topictmpl.ErrUnbalancedBraces},
		{"nested", "x/{a{b}}", topictmpl.ErrUnbalancedBraces},
		{"empty", "x/{}", topictmpl.ErrEmptyPlaceholder},
	}
	for _, tt := range failures {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := topictmpl.ParseStrict(tt.template)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("substitutes positionally", func(t *testing.T) {
		tmpl := topictmpl.Parse("system/{id}/start/{mode}")
		got, err := tmpl.Render("76", "idle")
		require.NoError(t, err)
		assert.Equal(t, "system/76/start/idle", got)
	})

	t.Run("arguments are used verbatim", func(t *testing.T) {
		tmpl := topictmpl.Parse("notify/{group}")
		got, err := tmpl.Render("{x}%d/")
		require.NoError(t, err)
		assert.Equal(t, "notify/{x}%d/", got)
	})

	t.Run("template without placeholders renders unchanged", func(t *testing.T) {
		tmpl := topictmpl.Parse("rate/100%")
		got, err := tmpl.Render()
		require.NoError(t, err)
		assert.Equal(t, "rate/100%", got)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		tmpl := topictmpl.Parse("notify/{group}")
		_, err := tmpl.Render()
		assert.ErrorIs(t, err, topictmpl.ErrArgumentCount)

		_, err = tmpl.Render("a", "b")
		assert.ErrorIs(t, err, topictmpl.ErrArgumentCount)
	})
}

// Rendering with k empty arguments removes every placeholder from the template.
func TestRenderEmptyArgumentsRemovesPlaceholders(t *testing.T) {
	templates := map[string]string{
		"notify/{group}":           "notify/",
		"system/{id}/start/{mode}": "system//start/",
		"{a}{b}{c}":                "",
		"{id}-{id}":                "-",
		"plain/topic":              "plain/topic",
		"50%/{x}":                  "50%/",
	}

	for template, want := range templates {
		tmpl := topictmpl.Parse(template)
		assert.Len(t, tmpl.Placeholders, strings.Count(template, "{"), template)

		args := make([]string, len(tmpl.Placeholders))
		got, err := tmpl.Render(args...)
		require.NoError(t, err, template)
		assert.Equal(t, want, got, template)
	}
}
