package usecase

import (
	"context"
	"io"

	"pet-board/pkg/queue"
)

// ImageStore keeps uploaded pictures and hands back their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

type EventPublisher interface {
	PublishLostReport(ctx context.Context, report queue.LostReport) error
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type CreateBoardInput struct {
	UserID     int64
	CategoryID int
	Nickname   string
	Title      string
	Content    string

	SnsURL string

	Kind         string
	Gender       string
	Age          string
	Color        string
	LostLocation string
	LostDate     string
	LostType     string

	Images []ImageUpload
}

// UpdateBoardInput carries the fields to change. A nil field is left as is;
// an empty string clears an optional field.
type UpdateBoardInput struct {
	Title   *string
	Content *string

	SnsURL *string

	Kind         *string
	Gender       *string
	Age          *string
	Color        *string
	LostLocation *string
	LostDate     *string
	LostType     *string
}
