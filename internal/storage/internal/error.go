package internal

import "golang.org/x/xerrors"

var (
	ErrItemNotFound = xerrors.New("item not found")
)
