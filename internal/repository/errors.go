package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store error kinds. Match with errors.Is.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate key")
	ErrForeignKey   = errors.New("referenced record does not exist")
	ErrInvalidInput = errors.New("invalid column value")
)

// SQLSTATE codes the repositories classify.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeStringTooLong       = "22001"
	codeNumericOutOfRange   = "22003"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
	codeInvalidTextRepr     = "22P02"
)

// StoreError tags a driver error with its kind and the violated constraint.
type StoreError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%v (%s): %v", e.Kind, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &StoreError{Kind: ErrNotFound, Err: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return &StoreError{Kind: ErrDuplicate, Constraint: pgErr.ConstraintName, Err: err}
	case codeForeignKeyViolation:
		return &StoreError{Kind: ErrForeignKey, Constraint: pgErr.ConstraintName, Err: err}
	case codeNotNullViolation, codeCheckViolation, codeStringTooLong, codeNumericOutOfRange,
		codeInvalidDatetime, codeDatetimeOverflow, codeInvalidTextRepr:
		return &StoreError{Kind: ErrInvalidInput, Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}

func notFound(what string) error {
	return &StoreError{Kind: ErrNotFound, Err: errors.New(what)}
}
