package main

import (
	"fmt"
	"strings"
	"unicode"
)

// javaReservedWords are Java keywords and literals that cannot be used as
// field or class names.
var javaReservedWords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "false": true, "final": true, "finally": true,
	"float": true, "for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true, "long": true,
	"native": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "short": true, "static": true,
	"strictfp": true, "super": true, "switch": true, "synchronized": true, "this": true,
	"throw": true, "throws": true, "transient": true, "true": true, "try": true,
	"void": true, "volatile": true, "while": true, "_": true,
}

// toUpperCamel converts a DDL identifier to UpperCamelCase.
// Segments are split on '_', '-' and any other rune that cannot appear in a
// Java identifier; the first rune of each segment is upper-cased and the rest
// lower-cased.
// Examples: user_accounts -> UserAccounts, X-Y -> XY, a/b -> AB
func toUpperCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	capitalizeNext := true
	for _, r := range s {
		if r == '_' || !isJavaIdentRune(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			b.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// toLowerCamel converts a DDL identifier to lowerCamelCase.
// Examples: user_accounts -> userAccounts, X-Y -> xY
func toLowerCamel(s string) string {
	return lowerFirst(toUpperCamel(s))
}

func isJavaIdentRune(r rune) bool {
	return r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// javaClassName derives the entity class name of a table.
func javaClassName(table string) string {
	return javaIdentifier(toUpperCamel(table))
}

// javaFieldName derives the field name of a column or relation.
func javaFieldName(name string) string {
	return javaIdentifier(toLowerCamel(name))
}

// javaIdentifier makes a derived name legal Java: reserved words get a
// trailing underscore and a leading digit gets a leading one.
func javaIdentifier(name string) string {
	switch {
	case name == "":
		return name
	case javaReservedWords[name]:
		return name + "_"
	case unicode.IsDigit([]rune(name)[0]):
		return "_" + name
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// unquoteIdent strips one level of identifier quoting: `name`, "name" or [name].
func unquoteIdent(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '`' && s[len(s)-1] == '`':
			return strings.ReplaceAll(s[1:len(s)-1], "``", "`")
		case s[0] == '"' && s[len(s)-1] == '"':
			return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
		case s[0] == '[' && s[len(s)-1] == ']':
			return s[1 : len(s)-1]
		}
	}
	return s
}

// lastIdentPart returns the table part of a possibly schema-qualified name,
// e.g. `shop`.`orders` -> orders, dbo.users -> users.
func lastIdentPart(s string) string {
	parts := splitQualified(s)
	if len(parts) == 0 {
		return ""
	}
	return unquoteIdent(parts[len(parts)-1])
}

// splitQualified splits a dotted name on dots that are not inside quotes.
func splitQualified(s string) []string {
	var parts []string
	start := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '`' || c == '"':
			quote = c
		case c == '[':
			quote = ']'
		case c == '.':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// isBareIdent reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

// isQuotedIdent reports whether s is a complete `x`, "x" or [x] identifier.
func isQuotedIdent(s string) bool {
	if len(s) < 3 {
		return false
	}
	switch s[0] {
	case '`', '"':
		return s[len(s)-1] == s[0]
	case '[':
		return s[len(s)-1] == ']'
	}
	return false
}

// collectJavaNameWarnings reports tables and columns whose derived Java name
// had to be adjusted or is empty, and derived names that collide.
func collectJavaNameWarnings(schema *Schema) []string {
	if schema == nil {
		return nil
	}

	var warnings []string
	classes := make(map[string]string, len(schema.Tables))
	for _, t := range schema.Tables {
		switch {
		case t.ClassName == "":
			warnings = append(warnings, fmt.Sprintf(
				"table %s: no usable class name; entity skipped", t.SourceName))
		case t.ClassName != toUpperCamel(t.SourceName):
			warnings = append(warnings, fmt.Sprintf(
				"table %s: class name %q is not a valid Java identifier; using %s",
				t.SourceName, toUpperCamel(t.SourceName), t.ClassName))
		}
		if prev, ok := classes[t.ClassName]; ok {
			warnings = append(warnings, fmt.Sprintf(
				"tables %s and %s both map to class %s; %s.java is overwritten",
				prev, t.SourceName, t.ClassName, t.ClassName))
		} else if t.ClassName != "" {
			classes[t.ClassName] = t.SourceName
		}

		fields := make(map[string]string, len(t.Columns))
		for _, c := range t.Columns {
			switch {
			case c.FieldName == "":
				warnings = append(warnings, fmt.Sprintf(
					"%s.%s: no usable field name", t.SourceName, c.SourceName))
			case c.FieldName != toLowerCamel(c.SourceName):
				warnings = append(warnings, fmt.Sprintf(
					"%s.%s: field name %q is not a valid Java identifier; using %s",
					t.SourceName, c.SourceName, toLowerCamel(c.SourceName), c.FieldName))
			}
			if prev, ok := fields[c.FieldName]; ok {
				warnings = append(warnings, fmt.Sprintf(
					"%s: columns %s and %s both map to field %s", t.SourceName, prev, c.SourceName, c.FieldName))
			} else if c.FieldName != "" {
				fields[c.FieldName] = c.SourceName
			}
		}
	}
	return warnings
}
