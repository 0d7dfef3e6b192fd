package db

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"
)

var ErrConstraint = errors.New("storage constraint violation")

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintOther      ConstraintKind = "other"
)

// ConstraintError is a uniqueness or referential-integrity failure reported
// by the store.
type ConstraintError struct {
	Kind  ConstraintKind
	Table string
	Err   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s on %s (%s): %v", ErrConstraint, e.Table, e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}

// TranslateError turns driver constraint failures into *ConstraintError and
// returns every other error unchanged.
func TranslateError(table string, err error) error {
	if err == nil {
		return nil
	}
	if kind, ok := constraintKind(err); ok {
		return &ConstraintError{Kind: kind, Table: table, Err: err}
	}
	return err
}

func constraintKind(err error) (ConstraintKind, bool) {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		if !pgErr.IntegrityViolation() {
			return "", false
		}
		switch pgErr.Field('C') {
		case "23505":
			return ConstraintUnique, true
		case "23503":
			return ConstraintForeignKey, true
		case "23502":
			return ConstraintNotNull, true
		case "23514":
			return ConstraintCheck, true
		default:
			return ConstraintOther, true
		}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code != sqlite3.ErrConstraint {
			return "", false
		}
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ConstraintUnique, true
		case sqlite3.ErrConstraintForeignKey:
			return ConstraintForeignKey, true
		case sqlite3.ErrConstraintNotNull:
			return ConstraintNotNull, true
		case sqlite3.ErrConstraintCheck:
			return ConstraintCheck, true
		default:
			return ConstraintOther, true
		}
	}

	return "", false
}
