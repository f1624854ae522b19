package main

import (
	"fmt"
	"strings"
)

// parseEnumValues decodes the argument list of an ENUM or SET type, e.g.
// 'draft','it''s',"x" -> [draft it's x]. Backslash escapes and doubled
// quotes are honoured.
func parseEnumValues(args string) ([]string, error) {
	var values []string
	i := 0
	for i < len(args) {
		for i < len(args) && (args[i] == ' ' || args[i] == ',') {
			i++
		}
		if i >= len(args) {
			break
		}
		q := args[i]
		if q != '\'' && q != '"' {
			return nil, fmt.Errorf("invalid enum/set value list %q", args)
		}
		i++

		var b strings.Builder
		closed := false
		for i < len(args) {
			c := args[i]
			if c == '\\' {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("invalid escape in %q", args)
				}
				b.WriteByte(args[i+1])
				i += 2
				continue
			}
			if c == q {
				if i+1 < len(args) && args[i+1] == q {
					b.WriteByte(q)
					i += 2
					continue
				}
				i++
				closed = true
				break
			}
			b.WriteByte(c)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated value in %q", args)
		}

		values = append(values, b.String())
	}
	return values, nil
}

// isEnumType reports whether a base SQL type carries a literal value list.
func isEnumType(sqlType string) bool {
	return sqlType == "ENUM" || sqlType == "SET"
}
