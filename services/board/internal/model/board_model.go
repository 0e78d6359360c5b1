package model

import (
	"time"

	"gorm.io/gorm"
)

type BoardModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID   int     `gorm:"not null;index" json:"category_id"`
	UserID       *int64  `gorm:"index" json:"user_id"`
	Nickname     string  `gorm:"type:varchar(50);not null" json:"nickname"`
	Title        *string `gorm:"type:varchar(255)" json:"title"`
	Content      string  `gorm:"type:text;not null" json:"content"`
	ThumbnailURL *string `gorm:"type:varchar(500)" json:"thumbnail_url"`
	ViewCount    int64   `gorm:"not null;default:0;index" json:"view_count"`

	SnsURL *string `gorm:"type:varchar(500)" json:"sns_url"`

	Kind         *string `gorm:"type:varchar(50)" json:"kind"`
	Gender       *string `gorm:"type:varchar(10)" json:"gender"`
	Age          *string `gorm:"type:varchar(20)" json:"age"`
	Color        *string `gorm:"type:varchar(50)" json:"color"`
	LostLocation *string `gorm:"type:varchar(255)" json:"lost_location"`
	LostDate     *string `gorm:"type:varchar(20)" json:"lost_date"`
	LostType     *string `gorm:"type:varchar(10)" json:"lost_type"`

	CreatedAt time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
	Images    []BoardImageModel `gorm:"foreignKey:BoardID" json:"images,omitempty"`
}

func (BoardModel) TableName() string {
	return "boards"
}

type BoardImageModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID   int64     `gorm:"not null;index" json:"board_id"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func (BoardImageModel) TableName() string {
	return "board_images"
}
