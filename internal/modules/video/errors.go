package video

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrVideoNotFound = errors.New("video not found")
	ErrNotOwner      = errors.New("not the owner of this video")
)
