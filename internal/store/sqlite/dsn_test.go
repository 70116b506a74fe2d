package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "memory", input: "sqlite://:memory:", expected: ":memory:"},
		{name: "absolute path", input: "sqlite:///var/lib/replayrec.db", expected: "/var/lib/replayrec.db"},
		{name: "dot relative", input: "sqlite://./exports.db", expected: "./exports.db"},
		{name: "bare relative", input: "sqlite://exports.db", expected: "./exports.db"},
		{name: "escaped path", input: "sqlite://my%20exports.db", expected: "./my exports.db"},
		{name: "query kept", input: "sqlite://exports.db?_pragma=foreign_keys(1)", expected: "./exports.db?_pragma=foreign_keys(1)"},
		{name: "wrong scheme", input: "postgres://localhost/db", wantErr: true},
		{name: "empty path", input: "sqlite://", wantErr: true},
		{name: "bad escape", input: "sqlite://bad%zz.db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
