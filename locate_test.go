package main

import (
	"strings"
	"testing"
)

func TestLocateTables(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantNames []string
		wantBody  string // body of the first table, when set
	}{
		{
			name:      "two tables with options",
			sql:       "CREATE TABLE a ( id INT ) ENGINE=InnoDB; CREATE TABLE b (id INT);",
			wantNames: []string{"a", "b"},
			wantBody:  "id INT",
		},
		{
			name:      "temporary and if not exists",
			sql:       "create temporary table if not exists tmp (x INT);",
			wantNames: []string{"tmp"},
		},
		{
			name:      "qualified and quoted names",
			sql:       "CREATE TABLE `shop`.`orders` (id INT); CREATE TABLE [dbo].[users] (id INT); CREATE TABLE db.items(id INT);",
			wantNames: []string{"orders", "users", "items"},
		},
		{
			name:      "statement inside a literal is ignored",
			sql:       "INSERT INTO t VALUES ('CREATE TABLE x (a INT)'); CREATE TABLE y (a INT);",
			wantNames: []string{"y"},
		},
		{
			name:      "keyword must start a word",
			sql:       "MYCREATE TABLE z (a INT);",
			wantNames: nil,
		},
		{
			name:      "nested parentheses in body",
			sql:       "CREATE TABLE p (price DECIMAL(10,2), CHECK (price > (0)));",
			wantNames: []string{"p"},
			wantBody:  "price DECIMAL(10,2), CHECK (price > (0))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, warnings := locateTables(tt.sql)
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if len(found) != len(tt.wantNames) {
				t.Fatalf("found %d tables, want %d: %+v", len(found), len(tt.wantNames), found)
			}
			for i, name := range tt.wantNames {
				if found[i].Name != name {
					t.Errorf("table %d = %q, want %q", i, found[i].Name, name)
				}
			}
			if tt.wantBody != "" && found[0].Body != tt.wantBody {
				t.Errorf("body = %q, want %q", found[0].Body, tt.wantBody)
			}
		})
	}
}

func TestLocateTables_MalformedResumes(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		wantWarn string
	}{
		{
			name:     "missing body",
			sql:      "CREATE TABLE broken; CREATE TABLE ok (id INT);",
			wantWarn: "expected '('",
		},
		{
			name:     "unbalanced body",
			sql:      "CREATE TABLE broken (id INT; CREATE TABLE ok (id INT);",
			wantWarn: "unbalanced parentheses",
		},
		{
			name:     "create table as select",
			sql:      "CREATE TABLE broken AS SELECT 1; CREATE TABLE ok (id INT);",
			wantWarn: "expected '('",
		},
		{
			name:     "empty body",
			sql:      "CREATE TABLE broken (); CREATE TABLE ok (id INT);",
			wantWarn: "empty body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, warnings := locateTables(tt.sql)
			if len(found) != 1 || found[0].Name != "ok" {
				t.Fatalf("found = %+v, want only table ok", found)
			}
			if len(warnings) != 1 || !strings.Contains(warnings[0], tt.wantWarn) {
				t.Errorf("warnings = %v, want one containing %q", warnings, tt.wantWarn)
			}
		})
	}
}
