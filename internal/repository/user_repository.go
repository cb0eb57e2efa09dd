package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"user-gate/internal/domain/user"
	gate_errors "user-gate/pkg/errors"

	"github.com/goccy/go-json"
)

// FileUserRepository reads users from a single JSON file. The file is read
// on every call and never written.
type FileUserRepository struct {
	path string
}

func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

func (r *FileUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", gate_errors.ErrIO, r.path, err)
	}

	users, err := decodeUsers(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", gate_errors.ErrIO, r.path, err)
	}
	return users, nil
}

// Exists reports whether a record carries email. Records without an email
// never match, so an empty email is never found.
func (r *FileUserRepository) Exists(ctx context.Context, email string) (bool, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Email != "" && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *FileUserRepository) Emails(ctx context.Context) ([]string, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		emails = append(emails, u.Email)
	}
	return emails, nil
}

// decodeUsers accepts an array of records, an object of records, or an
// object whose values are plain email strings.
func decodeUsers(data []byte) ([]user.User, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		var users []user.User
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, err
		}
		return users, nil
	case '{':
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		users := make([]user.User, 0, len(entries))
		for key, raw := range entries {
			u, err := decodeEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", key, err)
			}
			users = append(users, u)
		}
		return users, nil
	default:
		return nil, fmt.Errorf("expected a JSON object or array")
	}
}

func decodeEntry(raw json.RawMessage) (user.User, error) {
	var email string
	if err := json.Unmarshal(raw, &email); err == nil {
		return user.User{Email: email}, nil
	}
	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}
