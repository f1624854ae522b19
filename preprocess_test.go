package main

import "testing"

func TestCleanSQL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line and block comments",
			in:   "CREATE TABLE a ( -- the id\n  id INT /* block */ NOT NULL\n);",
			want: "CREATE TABLE a ( id INT NOT NULL );",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  x\t\t\ny  \r\n",
			want: "x y",
		},
		{
			name: "comment markers inside literals are kept",
			in:   "DEFAULT '-- not  a /* comment */'",
			want: "DEFAULT '-- not  a /* comment */'",
		},
		{
			name: "quoted identifiers keep spacing",
			in:   "`my   col` \"other  col\"",
			want: "`my   col` \"other  col\"",
		},
		{
			name: "escaped quotes inside literal",
			in:   "'it''s -- here' , 'a\\'b -- c'",
			want: "'it''s -- here' , 'a\\'b -- c'",
		},
		{
			name: "unterminated block comment runs to end",
			in:   "a /* never closed",
			want: "a",
		},
		{
			name: "commented out table",
			in:   "-- comment with CREATE TABLE foo (x INT);\nCREATE TABLE bar (y INT);",
			want: "CREATE TABLE bar (y INT);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanSQL(tt.in); got != tt.want {
				t.Errorf("cleanSQL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScanQuoted(t *testing.T) {
	tests := []struct {
		in      string
		wantEnd int
		wantOK  bool
	}{
		{"'abc' rest", 5, true},
		{"'a''b'", 6, true},
		{`'a\'b'`, 6, true},
		{"`a\\`", 4, true},
		{"'open", 5, false},
	}
	for _, tt := range tests {
		end, ok := scanQuoted(tt.in, 0)
		if end != tt.wantEnd || ok != tt.wantOK {
			t.Errorf("scanQuoted(%q) = (%d, %t), want (%d, %t)", tt.in, end, ok, tt.wantEnd, tt.wantOK)
		}
	}
}
