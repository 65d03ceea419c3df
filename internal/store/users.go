package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sawantaditi24/RoomSync/internal/model"
)

// CreateUser creates a new user. Registration is idempotent by email: if a
// user with the given email already exists, the existing record is returned
// and created is false. Posts reference their owner by id, so this dedup is
// what keeps re-registrations from splitting a user's posts across accounts.
func CreateUser(ctx context.Context, db *sql.DB, name, email, contact string) (u *model.User, created bool, err error) {
	existing, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, contact) VALUES (?, ?, ?)`,
		name, email, contact,
	)
	if err != nil {
		return nil, false, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("getting user id: %w", err)
	}

	u, err = GetUser(ctx, db, id)
	return u, true, err
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, contact, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Contact, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, contact, created_at FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Contact, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}
