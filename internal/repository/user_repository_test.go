package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	gate_errors "user-gate/pkg/errors"
)

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestFindAllShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "email map", content: `{"u1": "a@x.com", "u2": "b@x.com"}`, want: []string{"a@x.com", "b@x.com"}},
		{name: "record map", content: `{"u1": {"email": "a@x.com", "password": "h"}}`, want: []string{"a@x.com"}},
		{name: "record array", content: `[{"email": "a@x.com"}, {"email": "c@x.com"}]`, want: []string{"a@x.com", "c@x.com"}},
		{name: "empty object", content: `{}`, want: []string{}},
		{name: "record without email", content: `[{"password": "x"}, {"email": "a@x.com"}]`, want: []string{"a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFileUserRepository(writeData(t, tt.content))
			emails, err := repo.Emails(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sort.Strings(emails)
			if len(emails) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, emails)
			}
			for i := range emails {
				if emails[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, emails)
				}
			}
		})
	}
}

func TestFindAllFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{name: "invalid json", path: func(t *testing.T) string { return writeData(t, `{"u1": `) }},
		{name: "wrong shape", path: func(t *testing.T) string { return writeData(t, `"a@x.com"`) }},
		{name: "bad entry", path: func(t *testing.T) string { return writeData(t, `{"u1": 42}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFileUserRepository(tt.path(t))
			_, err := repo.FindAll(context.Background())
			if !errors.Is(err, gate_errors.ErrIO) {
				t.Fatalf("expected ErrIO, got %v", err)
			}
		})
	}
}

func TestExists(t *testing.T) {
	repo := NewFileUserRepository(writeData(t, `{"u1": "a@x.com"}`))

	found, err := repo.Exists(context.Background(), "a@x.com")
	if err != nil || !found {
		t.Fatalf("expected a@x.com to exist, got %v %v", found, err)
	}
	found, err = repo.Exists(context.Background(), "b@x.com")
	if err != nil || found {
		t.Fatalf("expected b@x.com to be absent, got %v %v", found, err)
	}
}

func TestExistsIgnoresRecordsWithoutEmail(t *testing.T) {
	repo := NewFileUserRepository(writeData(t, `[{"password": "x"}]`))

	found, err := repo.Exists(context.Background(), "")
	if err != nil || found {
		t.Fatalf("expected empty email to be absent, got %v %v", found, err)
	}
}
