package comment

import "errors"

var (
	ErrEmptyContent    = errors.New("comment cannot be empty")
	ErrCommentNotFound = errors.New("comment not found")
	ErrVideoNotFound   = errors.New("video not found")
	ErrNotOwner        = errors.New("not the owner of this comment")
)
