package gosrc

import (
	"strconv"
)

type tagValue struct {
	value   string
	literal bool
}

// lookupAll returns every value stored under key in a struct tag, following
// the key:"value" convention of reflect.StructTag. Unlike StructTag.Lookup it
// reports repeated keys, and a key whose value is not a quoted string is
// returned with literal set to false. Scanning stops at the first malformed
// pair.
func lookupAll(tag, key string) []tagValue {
	var values []tagValue
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		name := tag[:i]
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			if name == key {
				values = append(values, tagValue{})
			}
			break
		}
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			if name == key {
				values = append(values, tagValue{})
			}
			break
		}
		quoted := tag[:i+1]
		tag = tag[i+1:]

		if name != key {
			continue
		}
		value, err := strconv.Unquote(quoted)
		values = append(values, tagValue{value: value, literal: err == nil})
	}
	return values
}
