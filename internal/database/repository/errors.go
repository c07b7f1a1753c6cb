package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// Constraint names declared through uniqueIndex tags on the models
const (
	ConstraintUsersUsername  = "idx_users_username"
	ConstraintUsersEmail     = "idx_users_email"
	ConstraintCategoriesName = "idx_categories_name"
)

// UniqueViolation reports whether err is a unique constraint violation and,
// when the driver exposes it, the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// IsNotFound reports whether err means the row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
