package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors. Handlers translate these into the API error
// taxonomy.
var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrBoardNotFound     = errors.New("board not found")
	ErrListNotFound      = errors.New("list not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrMemberNotFound    = errors.New("member not found")

	// ErrAlreadyMember is returned when an invite targets a user who
	// already holds an active membership in the scope.
	ErrAlreadyMember = errors.New("user is already an active member")

	// ErrEmailTaken is returned when a registration races another for
	// the same email address.
	ErrEmailTaken = errors.New("email is already registered")
)

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505). The pre-insert existence checks race under
// concurrency; the loser's insert hits the index and lands here.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
