package board

import "errors"

var (
	ErrInvalidCategory       = errors.New("invalid board category")
	ErrInvalidLostType       = errors.New("lost type must be missing or sighted")
	ErrCategoryFieldMismatch = errors.New("field is not allowed for this board category")
	ErrEmptyContent          = errors.New("board content is required")
	ErrEmptyNickname         = errors.New("nickname is required")
)
