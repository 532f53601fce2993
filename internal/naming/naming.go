// Package naming converts kind names and placeholder names into the
// identifiers used by generated code.
package naming

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToSnake converts a capitalized-word identifier such as "NotifyAll" into its
// canonical lowercase form "notify_all".
//
// Every uppercase rune is lowercased. A '_' is inserted before an uppercase
// rune that is not the first rune, but only when the identifier itself starts
// with an uppercase rune; "notifyAll" therefore becomes "notifyall".
func ToSnake(name string) string {
	if name == "" {
		return ""
	}

	runes := []rune(name)
	leadingUpper := unicode.IsUpper(runes[0])

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i != 0 && leadingUpper {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GoExported spells a canonical snake name as an exported Go identifier:
// "notify_all_topic" becomes "NotifyAllTopic".
func GoExported(snake string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	for _, segment := range strings.Split(snake, "_") {
		if segment == "" {
			continue
		}
		b.WriteString(caser.String(segment))
	}
	return b.String()
}

// IsExportedIdent reports whether name is a Go identifier starting with an
// uppercase ASCII letter.
func IsExportedIdent(name string) bool {
	if !token.IsIdentifier(name) {
		return false
	}
	return name[0] >= 'A' && name[0] <= 'Z'
}

// ExportField spells a declared field name as an exported Go field name by
// uppercasing its first rune: "immediate" becomes "Immediate". Names that
// still do not start with an ASCII capital get an "F" prefix.
func ExportField(name string) string {
	if IsExportedIdent(name) {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	if upper := string(unicode.ToUpper(r)) + name[size:]; IsExportedIdent(upper) {
		return upper
	}
	return "F" + name
}

// reserved holds parameter names that would shadow identifiers the generated
// code refers to.
var reserved = map[string]bool{
	"fmt":      true,
	"contract": true,
	"message":  true,
	"string":   true,
	"error":    true,
	"topic":    true,
	"payload":  true,
	"msg":      true,
	"pub":      true,
	"err":      true,
}

// Params maps placeholder names to unique Go parameter names, preserving
// order. Invalid runes become '_', a leading digit gets a "p" prefix, an empty
// name becomes "argN", keywords and reserved names get an "Arg" suffix, and
// repeated names get a numeric suffix ("id", "id2"). Names listed in taken
// are treated like reserved names; callers pass the identifiers the
// generated function bodies refer to.
func Params(placeholders []string, taken ...string) []string {
	params := make([]string, len(placeholders))
	used := make(map[string]bool, len(placeholders))
	avoid := make(map[string]bool, len(taken))
	for _, name := range taken {
		avoid[name] = true
	}

	for i, placeholder := range placeholders {
		base := paramName(placeholder, i, avoid)
		name := base
		for n := 2; used[name] || avoid[name]; n++ {
			name = base + strconv.Itoa(n)
		}
		used[name] = true
		params[i] = name
	}
	return params
}

func paramName(placeholder string, index int, avoid map[string]bool) string {
	if placeholder == "" {
		return "arg" + strconv.Itoa(index)
	}

	var b strings.Builder
	for i, r := range placeholder {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('p')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	if token.IsKeyword(name) || reserved[name] || avoid[name] || name == "_" {
		name += "Arg"
	}
	return name
}
