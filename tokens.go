package main

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokWord   tokenKind = iota // keyword, identifier, number or quoted literal
	tokGroup                   // parenthesised group, parentheses included
)

// token is one lexical unit of a table item. Start and End are byte offsets
// into the item text.
type token struct {
	Kind  tokenKind
	Text  string
	Start int
	End   int
}

// upper returns the token text upper-cased for keyword comparison.
func (t token) upper() string {
	return strings.ToUpper(t.Text)
}

// is reports whether the token is the given keyword (case-insensitive).
func (t token) is(kw string) bool {
	return t.Kind == tokWord && strings.EqualFold(t.Text, kw)
}

// inner returns the text between the parentheses of a group token.
func (t token) inner() string {
	if t.Kind != tokGroup || len(t.Text) < 2 {
		return ""
	}
	return t.Text[1 : len(t.Text)-1]
}

// splitTopLevel splits s on sep bytes at parenthesis depth zero that are not
// inside quoted literals. Pieces are trimmed and empty pieces dropped.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = quotedEnd(s, i) - 1
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			if p := strings.TrimSpace(s[start:i]); p != "" {
				parts = append(parts, p)
			}
			start = i + 1
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// matchingParen returns the index of the ')' closing the '(' at s[open],
// skipping quoted literals, or -1 when the parentheses are unbalanced.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'' || c == '"' || c == '`':
			end, ok := scanQuoted(s, i)
			if !ok {
				return -1
			}
			i = end - 1
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// tokenize breaks a table item into words and parenthesised groups.
// Quoted literals stay inside the word they touch, so 'a b' and b'0101'
// are single tokens.
func tokenize(item string) ([]token, error) {
	var toks []token
	for i := 0; i < len(item); {
		c := item[i]
		switch {
		case isSpace(c):
			i++
		case c == '(':
			end := matchingParen(item, i)
			if end < 0 {
				return nil, fmt.Errorf("unbalanced parentheses at offset %d", i)
			}
			toks = append(toks, token{Kind: tokGroup, Text: item[i : end+1], Start: i, End: end + 1})
			i = end + 1
		case c == ')':
			return nil, fmt.Errorf("unexpected ')' at offset %d", i)
		case c == ',':
			return nil, fmt.Errorf("unexpected ',' at offset %d", i)
		default:
			start := i
			for i < len(item) {
				c := item[i]
				if isSpace(c) || c == '(' || c == ')' || c == ',' {
					break
				}
				switch c {
				case '\'', '"', '`':
					end, ok := scanQuoted(item, i)
					if !ok {
						return nil, fmt.Errorf("unterminated quoted literal at offset %d", i)
					}
					i = end
				case '[':
					end := strings.IndexByte(item[i:], ']')
					if end < 0 {
						return nil, fmt.Errorf("unterminated bracket identifier at offset %d", i)
					}
					i += end + 1
				default:
					i++
				}
			}
			toks = append(toks, token{Kind: tokWord, Text: item[start:i], Start: start, End: i})
		}
	}
	return toks, nil
}

// identList parses a comma-separated identifier list such as "`a`, b(10) DESC"
// and returns the unquoted names, dropping key-part lengths and ordering.
func identList(s string) []string {
	var names []string
	for _, p := range splitTopLevel(s, ',') {
		name := p
		switch p[0] {
		case '`', '"':
			name = p[:quotedEnd(p, 0)]
		case '[':
			if end := strings.IndexByte(p, ']'); end > 0 {
				name = p[:end+1]
			}
		default:
			if i := strings.IndexAny(p, " ("); i > 0 {
				name = p[:i]
			}
		}
		if n := unquoteIdent(name); n != "" {
			names = append(names, n)
		}
	}
	return names
}
