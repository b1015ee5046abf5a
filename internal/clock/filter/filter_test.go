package filter

import (
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	tcs := []struct {
		filter string
		sql    string
		args   []any
	}{
		{filter: "", sql: ""},
		{filter: "  ", sql: ""},
		{filter: `name = "heist"`, sql: "name = ?", args: []any{"heist"}},
		{filter: `segments >= 4 AND color = "red"`, sql: "(segments >= ? AND color = ?)", args: []any{int64(4), "red"}},
		{filter: `color = "red" OR color = "blue"`, sql: "(color = ? OR color = ?)", args: []any{"red", "blue"}},
		{filter: `filled != 0`, sql: "filled != ?", args: []any{int64(0)}},
		{filter: `NOT (color = "red")`, sql: "(NOT color = ?)", args: []any{"red"}},
		{filter: `created_at > timestamp("2026-01-01T00:00:00Z")`, sql: "created_at > ?", args: []any{jan1}},
	}
	for _, tc := range tcs {
		t.Run(tc.filter, func(t *testing.T) {
			got, err := Parse(tc.filter)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.filter, err)
			}
			if got.SQL != tc.sql {
				t.Fatalf("SQL = %q, want %q", got.SQL, tc.sql)
			}
			if !reflect.DeepEqual(got.Args, tc.args) {
				t.Fatalf("Args = %v, want %v", got.Args, tc.args)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, filter := range []string{
		`owner = "x"`,
		`created_at = timestamp("not-a-time")`,
		`name =`,
	} {
		if _, err := Parse(filter); err == nil {
			t.Fatalf("expected error for %q", filter)
		}
	}
}
