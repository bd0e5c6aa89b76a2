package repository

import "errors"

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate indicates a unique index conflict.
var ErrDuplicate = errors.New("document already exists")
