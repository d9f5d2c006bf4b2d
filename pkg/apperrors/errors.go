package apperrors

import "errors"

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrNoColumns       = errors.New("table has no columns")
	ErrEmptyColumnName = errors.New("column name is empty")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrLengthMismatch  = errors.New("column length mismatch")
	ErrUnknownDriver   = errors.New("unknown table source driver")
)
