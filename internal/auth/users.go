package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/handiism/tocadiscos/internal/codec"
	"github.com/handiism/tocadiscos/internal/errors"
	ioutils "github.com/handiism/tocadiscos/internal/io"
)

// AdminRole marks an authorized account in the admin column.
const AdminRole = "admin"

// User is one row of the credentials file.
type User struct {
	Username string `csv:"username"`
	Password string `csv:"password"`
	Role     string `csv:"admin"`
}

// IsAdmin reports whether the account may see restricted figures.
func (u User) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), AdminRole)
}

// LoadUsers reads the credentials file. A missing file yields no users.
func LoadUsers(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("read", path, err)
	}

	users, err := codec.ReadRows[User](data)
	if err != nil {
		return nil, errors.NewPersistenceError("decode", path, err)
	}
	for i := range users {
		users[i].Username = strings.TrimSpace(users[i].Username)
		users[i].Password = strings.TrimSpace(users[i].Password)
	}
	return users, nil
}

// AddUser appends an account with a hashed password.
func AddUser(ctx context.Context, path, username, password string, admin bool) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.NewValidationError("username", username, "must not be empty")
	}
	if password == "" {
		return errors.NewValidationError("password", "", "must not be empty")
	}

	users, err := LoadUsers(path)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == username {
			return fmt.Errorf("user %q: %w", username, errors.ErrAlreadyExists)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	role := ""
	if admin {
		role = AdminRole
	}
	users = append(users, User{Username: username, Password: hash, Role: role})

	data, err := codec.WriteRows(users)
	if err != nil {
		return errors.NewPersistenceError("encode", path, err)
	}
	if err := ioutils.WriteFileAtomic(ctx, path, data); err != nil {
		return errors.NewPersistenceError("write", path, err)
	}
	return nil
}
