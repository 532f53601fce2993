package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnake(t *testing.T) {
	tests := map[string]string{
		"NotifyAll":        "notify_all",
		"Notify":           "notify",
		"NotifyAllSystems": "notify_all_systems",
		"Start":            "start",
		"HTTPServer":       "h_t_t_p_server",
		"A":                "a",
		"notifyAll":        "notifyall",
		"notify":           "notify",
		"Start2":           "start2",
		"":                 "",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ToSnake(input))
		})
	}
}

func TestGoExported(t *testing.T) {
	tests := map[string]string{
		"notify":           "Notify",
		"notify_all":       "NotifyAll",
		"notify_all_topic": "NotifyAllTopic",
		"h_t_t_p_server":   "HTTPServer",
		"start2":           "Start2",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, GoExported(input))
		})
	}

	t.Run("round trips capitalized kind names", func(t *testing.T) {
		for _, name := range []string{"Notify", "NotifyAll", "NotifyAllSystems", "HTTPServer"} {
			assert.Equal(t, name, GoExported(ToSnake(name)))
		}
	})
}

func TestIsExportedIdent(t *testing.T) {
	assert.True(t, IsExportedIdent("Notify"))
	assert.True(t, IsExportedIdent("Start2"))
	assert.False(t, IsExportedIdent("notify"))
	assert.False(t, IsExportedIdent("_Notify"))
	assert.False(t, IsExportedIdent("Notify-All"))
	assert.False(t, IsExportedIdent(""))
}

func TestParams(t *testing.T) {
	tests := []struct {
		name         string
		placeholders []string
		want         []string
	}{
		{"plain", []string{"id", "mode"}, []string{"id", "mode"}},
		{"none", nil, []string{}},
		{"repeated", []string{"id", "id", "id"}, []string{"id", "id2", "id3"}},
		{"keyword", []string{"type", "range"}, []string{"typeArg", "rangeArg"}},
		{"reserved", []string{"fmt", "topic"}, []string{"fmtArg", "topicArg"}},
		{"invalid runes", []string{"user-id", "a.b"}, []string{"user_id", "a_b"}},
		{"leading digit", []string{"1st"}, []string{"p1st"}},
		{"empty", []string{"", "x"}, []string{"arg0", "x"}},
		{"underscore only", []string{"_"}, []string{"_Arg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Params(tt.placeholders))
		})
	}
}

func TestParamsAvoidsTakenNames(t *testing.T) {
	taken := []string{"NotifyPayload", "NotifyTopic", "Notify"}

	assert.Equal(t,
		[]string{"NotifyPayloadArg", "NotifyTopicArg", "NotifyArg", "group"},
		Params([]string{"NotifyPayload", "NotifyTopic", "Notify", "group"}, taken...))
	assert.Equal(t,
		[]string{"NotifyArg", "NotifyArg2"},
		Params([]string{"Notify", "Notify"}, taken...))
}

func TestExportField(t *testing.T) {
	tests := map[string]string{
		"Immediate": "Immediate",
		"immediate": "Immediate",
		"userID":    "UserID",
		"_hidden":   "F_hidden",
		"été":       "Fété",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExportField(in), in)
	}
}
