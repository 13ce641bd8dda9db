// Package common defines sentinel errors shared by the card adapter, the
// contact cache and the terminal UI. Callers should use errors.Is to match
// these values; every layer wraps them with context.
package common

import "errors"

var (
	// Card adapter errors.
	ErrParse      = errors.New("card parse failed")
	ErrValidation = errors.New("card validation failed")
	ErrCreation   = errors.New("card creation failed")
	ErrEdit       = errors.New("card editing failed")
	ErrWrite      = errors.New("writing card to file failed")

	// Cache errors.
	ErrNotFound    = errors.New("not found")
	ErrTransaction = errors.New("cache transaction failed")

	// Form preconditions.
	ErrDuplicateFile = errors.New("file already exists")
	ErrBlankField    = errors.New("required field is empty")
	ErrBadFileName   = errors.New("file name must not contain a path")

	// ErrCardsDirMissing is reported once at startup when the cards
	// directory does not exist. It is never fatal.
	ErrCardsDirMissing = errors.New("cards directory not found")
)
