package model

import "errors"

var (
	ErrNotOnShelf   = errors.New("book is not on the user's shelf")
	ErrInvalidState = errors.New("invalid shelf state")
)
