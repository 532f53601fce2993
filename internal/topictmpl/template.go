// Package topictmpl parses topic templates such as "system/{id}/start/{mode}".
//
// A template is literal text with zero or more named placeholders written as
// {name}. Parsing produces the ordered placeholder names together with a
// positional format string in which each placeholder is replaced by %s, so a
// topic can be rendered by substituting arguments in extraction order.
package topictmpl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnbalancedBraces is returned by ParseStrict when a '{' is never closed,
	// a '}' appears outside a placeholder, or a placeholder contains a '{'.
	ErrUnbalancedBraces = errors.New("unbalanced braces in topic template")

	// ErrEmptyPlaceholder is returned by ParseStrict for a "{}" placeholder.
	ErrEmptyPlaceholder = errors.New("empty placeholder in topic template")

	// ErrArgumentCount is returned by Render when the number of arguments does
	// not match the number of placeholders.
	ErrArgumentCount = errors.New("argument count does not match placeholders")
)

// Marker is the positional substitution marker written into Template.Format.
const Marker = "%s"

// Template is a parsed topic template.
type Template struct {
	// Raw is the template exactly as declared.
	Raw string
	// Format is Raw with every placeholder replaced by Marker and every
	// literal '%' escaped, suitable for fmt.Sprintf.
	Format string
	// Placeholders holds placeholder names in first-occurrence order.
	// Repeated names are kept; each occurrence consumes one argument.
	Placeholders []string
}

// HasPlaceholders reports whether rendering the template needs arguments.
func (t Template) HasPlaceholders() bool {
	return len(t.Placeholders) > 0
}

// Render substitutes args positionally. Arguments are used verbatim.
func (t Template) Render(args ...string) (string, error) {
	if len(args) != len(t.Placeholders) {
		return "", fmt.Errorf("%w: template %q wants %d, got %d",
			ErrArgumentCount, t.Raw, len(t.Placeholders), len(args))
	}
	if !t.HasPlaceholders() {
		return t.Raw, nil
	}

	values := make([]any, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return fmt.Sprintf(t.Format, values...), nil
}

// Parse scans template permissively. A '{' without a closing '}' and everything
// after it is treated as literal text, and a placeholder ends at the first '}'
// after its '{', so nested braces end up inside the name. Parse never fails.
func Parse(template string) Template {
	t, _ := scan(template, false)
	return t
}

// ParseStrict scans template like Parse but rejects unbalanced braces and
// empty placeholders.
func ParseStrict(template string) (Template, error) {
	return scan(template, true)
}

func scan(template string, strict bool) (Template, error) {
	var (
		format       strings.Builder
		placeholders []string
	)
	format.Grow(len(template))

	rest := template
	offset := 0
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strict {
				if i := strings.IndexByte(rest, '}'); i >= 0 {
					return Template{}, fmt.Errorf("%w: stray '}' at offset %d", ErrUnbalancedBraces, offset+i)
				}
			}
			writeLiteral(&format, rest)
			break
		}

		literal := rest[:open]
		if strict {
			if i := strings.IndexByte(literal, '}'); i >= 0 {
				return Template{}, fmt.Errorf("%w: stray '}' at offset %d", ErrUnbalancedBraces, offset+i)
			}
		}

		closing := strings.IndexByte(rest[open+1:], '}')
		if closing < 0 {
			if strict {
				return Template{}, fmt.Errorf("%w: '{' at offset %d is never closed", ErrUnbalancedBraces, offset+open)
			}
			writeLiteral(&format, rest)
			break
		}

		name := rest[open+1 : open+1+closing]
		if strict {
			if strings.IndexByte(name, '{') >= 0 {
				return Template{}, fmt.Errorf("%w: nested '{' at offset %d", ErrUnbalancedBraces, offset+open)
			}
			if name == "" {
				return Template{}, fmt.Errorf("%w at offset %d", ErrEmptyPlaceholder, offset+open)
			}
		}

		writeLiteral(&format, literal)
		format.WriteString(Marker)
		placeholders = append(placeholders, name)

		consumed := open + 1 + closing + 1
		rest = rest[consumed:]
		offset += consumed
	}

	return Template{
		Raw:          template,
		Format:       format.String(),
		Placeholders: placeholders,
	}, nil
}

func writeLiteral(b *strings.Builder, s string) {
	b.WriteString(strings.ReplaceAll(s, "%", "%%"))
}
