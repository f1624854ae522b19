package main

import (
	"fmt"
	"regexp"
	"strings"
)

// createTableHeader matches the start of a CREATE TABLE statement, anchored at
// the scan position. The table name is parsed separately.
var createTableHeader = regexp.MustCompile(`(?i)^CREATE\s+(?:TEMPORARY\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?`)

// tableSource is a located CREATE TABLE statement: the unquoted table name and
// the text between the outermost parentheses of its body.
type tableSource struct {
	Name string
	Body string
}

// locateTables finds every CREATE TABLE statement in cleaned SQL text.
// Malformed statements are reported as warnings and skipped; scanning resumes
// right after the offending header.
func locateTables(sql string) ([]tableSource, []string) {
	var found []tableSource
	var warnings []string

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c == '\'' || c == '"' || c == '`' {
			i = quotedEnd(sql, i) - 1
			continue
		}
		if c != 'c' && c != 'C' || (i > 0 && isIdentByte(sql[i-1])) {
			continue
		}
		loc := createTableHeader.FindStringIndex(sql[i:])
		if loc == nil {
			continue
		}

		headerEnd := i + loc[1]
		src, next, err := readTableStatement(sql, headerEnd)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping CREATE TABLE at offset %d: %v", i, err))
			i = headerEnd - 1
			continue
		}
		found = append(found, src)
		i = next - 1
	}
	return found, warnings
}

// readTableStatement parses "name ( body )" starting at pos and returns the
// statement and the position just past the closing parenthesis.
func readTableStatement(sql string, pos int) (tableSource, int, error) {
	nameEnd := scanQualifiedName(sql, pos)
	rawName := sql[pos:nameEnd]
	name := lastIdentPart(rawName)
	if name == "" {
		return tableSource{}, 0, fmt.Errorf("missing table name")
	}

	open := nameEnd
	for open < len(sql) && sql[open] == ' ' {
		open++
	}
	if open >= len(sql) || sql[open] != '(' {
		rest := strings.TrimSpace(sql[open:min(len(sql), open+24)])
		return tableSource{}, 0, fmt.Errorf("table %s: expected '(' after name, found %q", name, rest)
	}

	closeIdx := matchingParen(sql, open)
	if closeIdx < 0 {
		return tableSource{}, 0, fmt.Errorf("table %s: unbalanced parentheses in body", name)
	}

	body := strings.TrimSpace(sql[open+1 : closeIdx])
	if body == "" {
		return tableSource{}, 0, fmt.Errorf("table %s: empty body", name)
	}
	return tableSource{Name: name, Body: body}, closeIdx + 1, nil
}

// scanQualifiedName returns the end of a possibly quoted, possibly dotted
// identifier starting at pos.
func scanQualifiedName(sql string, pos int) int {
	i := pos
	for i < len(sql) {
		switch c := sql[i]; {
		case c == '`' || c == '"':
			end, ok := scanQuoted(sql, i)
			if !ok {
				return i
			}
			i = end
		case c == '[':
			end := strings.IndexByte(sql[i:], ']')
			if end < 0 {
				return i
			}
			i += end + 1
		case c == '.' || isIdentByte(c):
			i++
		default:
			return i
		}
	}
	return i
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
