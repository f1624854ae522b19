package main

import (
	"fmt"
	"strings"
)

// IgnoredStatements lists statements in the input that are not CREATE TABLE
// and therefore produce no entity.
type IgnoredStatements struct {
	Views    []string `json:"views,omitempty" yaml:"views,omitempty"`
	Indexes  []string `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Routines []string `json:"routines,omitempty" yaml:"routines,omitempty"`
	Triggers []string `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Alters   []string `json:"alters,omitempty" yaml:"alters,omitempty"`
}

func (s IgnoredStatements) count() int {
	return len(s.Views) + len(s.Indexes) + len(s.Routines) + len(s.Triggers) + len(s.Alters)
}

// splitStatements splits SQL text on semicolons, ignoring empty entries
// and semicolons inside quoted literals or parentheses.
func splitStatements(sql string) []string {
	return splitTopLevel(sql, ';')
}

// classifyStatements inventories the DDL statements that are recognised but
// not modelled: views, indexes, routines, triggers and ALTER TABLE.
func classifyStatements(sql string) IgnoredStatements {
	var out IgnoredStatements
	for _, stmt := range splitStatements(sql) {
		words := strings.Fields(stmt)
		if len(words) < 3 {
			continue
		}
		kw := make([]string, 0, 6)
		for _, w := range words[:min(len(words), 6)] {
			kw = append(kw, strings.ToUpper(w))
		}

		if kw[0] == "ALTER" && kw[1] == "TABLE" {
			out.Alters = append(out.Alters, objectName(words[2:]))
			continue
		}
		if kw[0] != "CREATE" {
			continue
		}

		// Skip modifiers: OR REPLACE, UNIQUE, DEFINER=..., ALGORITHM=...
		j := 1
	modifiers:
		for j < len(kw) {
			switch {
			case kw[j] == "OR" && j+1 < len(kw) && kw[j+1] == "REPLACE":
				j += 2
			case kw[j] == "UNIQUE", kw[j] == "FULLTEXT", kw[j] == "SPATIAL", kw[j] == "CLUSTERED", kw[j] == "NONCLUSTERED":
				j++
			case strings.HasPrefix(kw[j], "DEFINER="), strings.HasPrefix(kw[j], "ALGORITHM="):
				j++
			default:
				break modifiers
			}
		}
		if j >= len(kw) || j+1 >= len(words) {
			continue
		}
		name := objectName(words[j+1:])
		switch kw[j] {
		case "VIEW":
			out.Views = append(out.Views, name)
		case "INDEX":
			out.Indexes = append(out.Indexes, name)
		case "PROCEDURE", "FUNCTION":
			out.Routines = append(out.Routines, name)
		case "TRIGGER":
			out.Triggers = append(out.Triggers, name)
		}
	}
	return out
}

// objectName returns the unquoted object name that starts a word list,
// stripping IF [NOT] EXISTS and anything glued to the name.
func objectName(words []string) string {
	for len(words) > 0 && (strings.EqualFold(words[0], "IF") || strings.EqualFold(words[0], "NOT") || strings.EqualFold(words[0], "EXISTS")) {
		words = words[1:]
	}
	if len(words) == 0 {
		return "?"
	}
	w := words[0]
	w = w[:scanQualifiedName(w, 0)]
	if name := lastIdentPart(w); name != "" {
		return name
	}
	return "?"
}

func ignoredStatementWarnings(s IgnoredStatements) []string {
	if s.count() == 0 {
		return nil
	}

	warnings := []string{
		fmt.Sprintf(
			"input contains statements that produce no entity (%d views, %d indexes, %d routines, %d triggers, %d alter table)",
			len(s.Views), len(s.Indexes), len(s.Routines), len(s.Triggers), len(s.Alters),
		),
	}
	for _, v := range s.Views {
		warnings = append(warnings, fmt.Sprintf("view: %s", v))
	}
	for _, idx := range s.Indexes {
		warnings = append(warnings, fmt.Sprintf("index: %s", idx))
	}
	for _, r := range s.Routines {
		warnings = append(warnings, fmt.Sprintf("routine: %s", r))
	}
	for _, t := range s.Triggers {
		warnings = append(warnings, fmt.Sprintf("trigger: %s", t))
	}
	for _, a := range s.Alters {
		warnings = append(warnings, fmt.Sprintf("alter table: %s", a))
	}
	return warnings
}
