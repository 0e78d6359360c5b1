package entity

import (
	"time"

	"pet-board/pkg/board"
)

// MaxImages is the most pictures a single post may carry.
const MaxImages = 10

type Board struct {
	ID           int64
	CategoryID   int
	UserID       *int64
	Nickname     string
	Title        *string
	Content      string
	ThumbnailURL *string
	ViewCount    int64
	Images       []BoardImage

	SnsURL *string

	Kind         *string
	Gender       *string
	Age          *string
	Color        *string
	LostLocation *string
	LostDate     *string
	LostType     *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type BoardImage struct {
	ID        int64
	BoardID   int64
	ImageURL  string
	Order     int
	CreatedAt time.Time
}

func (b *Board) Category() board.Category {
	return board.Category(b.CategoryID)
}

func (b *Board) IsLost() bool {
	return b.Category() == board.CategoryLost
}

func (b *Board) OwnedBy(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

func (b *Board) ImageURLs() []string {
	urls := make([]string, 0, len(b.Images))
	for _, img := range b.Images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}

// Validate applies the view-model rules to the post as it would be served.
func (b *Board) Validate() error {
	return board.ToBoardPost(b.ToApiAnimal()).Validate()
}

func (b *Board) ToApiAnimal() board.ApiAnimal {
	return board.ApiAnimal{
		BoardID:      b.ID,
		CategoryID:   b.CategoryID,
		UserID:       b.UserID,
		NickName:     b.Nickname,
		BoardTitle:   b.Title,
		BoardContent: b.Content,
		ThumbnailURL: b.ThumbnailURL,
		ImageURLs:    b.ImageURLs(),
		ViewCount:    b.ViewCount,
		SnsURL:       b.SnsURL,
		Kind:         b.Kind,
		Gender:       b.Gender,
		Age:          b.Age,
		Color:        b.Color,
		LostLocation: b.LostLocation,
		LostDate:     b.LostDate,
		LostType:     b.LostType,
		CreatedAt:    b.CreatedAt,
		DeleteAt:     b.DeletedAt,
	}
}

func ToApiAnimals(boards []*Board) []board.ApiAnimal {
	animals := make([]board.ApiAnimal, len(boards))
	for i, b := range boards {
		animals[i] = b.ToApiAnimal()
	}
	return animals
}
