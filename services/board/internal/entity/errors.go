package entity

import "errors"

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrForbidden     = errors.New("you can only modify your own posts")
	ErrTooManyImages = errors.New("maximum 10 images allowed per post")
)
