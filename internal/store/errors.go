package store

import (
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

// Sentinel errors. They compare by code, so errors.Is(err, apperr.ErrNotFound)
// also matches ErrNotFound.
var (
	ErrNotFound      = apperr.New(apperr.CodeNotFound, "resource not found")
	ErrAlreadyExists = apperr.New(apperr.CodeConflict, "resource already exists")
	ErrClosed        = apperr.New(apperr.CodeInternal, "store is closed")
)
