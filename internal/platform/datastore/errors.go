package datastore

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	invalidTextCode         = "22P02"
)

var (
	ErrNotFound         = errors.New("datastore: not found")
	ErrConflict         = errors.New("datastore: conflict")
	ErrMissingReference = errors.New("datastore: missing reference")
	ErrInvalidValue     = errors.New("datastore: invalid value")
	ErrUnknownColumn    = errors.New("datastore: unknown column")
	ErrEmptyPatch       = errors.New("datastore: empty patch")
)

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return errors.Join(ErrConflict, err)
		case foreignKeyViolationCode:
			return errors.Join(ErrMissingReference, err)
		case checkViolationCode, invalidTextCode:
			return errors.Join(ErrInvalidValue, err)
		}
	}
	return err
}
