package main

import "strings"

// cleanSQL strips line (--) and block (/* */) comments and collapses every
// whitespace run to a single space. Quoted literals and identifiers are copied
// verbatim, so comment markers and spacing inside them survive.
func cleanSQL(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	pendingSpace := false

	flushSpace := func() {
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
	}

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			pendingSpace = true
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				// Unterminated block comment runs to end of input.
				i = len(sql)
			} else {
				i += 2 + end + 1
			}
			pendingSpace = true
		case isSpace(c):
			pendingSpace = true
		case c == '\'' || c == '"' || c == '`':
			flushSpace()
			end := quotedEnd(sql, i)
			b.WriteString(sql[i:end])
			i = end - 1
		default:
			flushSpace()
			b.WriteByte(c)
		}
	}
	return b.String()
}

// quotedEnd returns the index just past the literal opened at sql[start].
// An unterminated literal extends to the end of input.
func quotedEnd(sql string, start int) int {
	end, _ := scanQuoted(sql, start)
	return end
}

// scanQuoted scans the literal opened at sql[start] and reports whether it was
// closed. A doubled quote character is an escaped quote; inside single and
// double quotes a backslash escapes the next byte as MySQL does.
func scanQuoted(sql string, start int) (int, bool) {
	q := sql[start]
	for i := start + 1; i < len(sql); i++ {
		c := sql[i]
		if c == '\\' && q != '`' {
			i++
			continue
		}
		if c == q {
			if i+1 < len(sql) && sql[i+1] == q {
				i++
				continue
			}
			return i + 1, true
		}
	}
	return len(sql), false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
