package board

import "fmt"

// BoardPost is the view model handed to renderers. It is built from the wire
// format by ToBoardPost and never mutated locally.
type BoardPost struct {
	ID             int64    `json:"id"`
	CategoryID     int      `json:"categoryId"`
	Nickname       string   `json:"nickname"`
	UserID         *int64   `json:"userId,omitempty"`
	BoardViewCount int64    `json:"boardViewCount"`
	ThumbnailURL   *string  `json:"thumbnailUrl,omitempty"`
	ImageURLs      []string `json:"imageUrls,omitempty"`
	BoardTitle     *string  `json:"boardTitle,omitempty"`
	BoardContent   string   `json:"boardContent"`
	CreatedAt      string   `json:"createdAt"`

	// sns board only
	SnsURL *string `json:"snsUrl,omitempty"`

	// lost board only
	Kind         *string   `json:"kind,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	Age          *string   `json:"age,omitempty"`
	Color        *string   `json:"color,omitempty"`
	LostLocation *string   `json:"lostLocation,omitempty"`
	LostDate     *string   `json:"lostDate,omitempty"`
	LostType     *LostType `json:"lostType,omitempty"`
}

func (p BoardPost) Category() Category {
	return Category(p.CategoryID)
}

func (p BoardPost) IsLost() bool {
	return p.Category() == CategoryLost
}

func (p BoardPost) Title() string {
	return deref(p.BoardTitle)
}

func (p BoardPost) Thumbnail() string {
	if p.ThumbnailURL != nil {
		return *p.ThumbnailURL
	}
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}

func (p BoardPost) HasLostFields() bool {
	return p.Kind != nil || p.Gender != nil || p.Age != nil || p.Color != nil ||
		p.LostLocation != nil || p.LostDate != nil || p.LostType != nil
}

// Validate checks the required fields and that category-specific fields only
// appear on their own board.
func (p BoardPost) Validate() error {
	if !p.Category().Valid() {
		return ErrInvalidCategory
	}
	if p.Nickname == "" {
		return ErrEmptyNickname
	}
	if p.BoardContent == "" {
		return ErrEmptyContent
	}
	if p.SnsURL != nil && p.Category() != CategorySNS {
		return fmt.Errorf("snsUrl on %s board: %w", p.Category(), ErrCategoryFieldMismatch)
	}
	if p.HasLostFields() && p.Category() != CategoryLost {
		return fmt.Errorf("lost-animal fields on %s board: %w", p.Category(), ErrCategoryFieldMismatch)
	}
	if p.LostType != nil && !p.LostType.Valid() {
		return ErrInvalidLostType
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
