package persistent

import (
	"time"

	"pet-board/services/board/internal/entity"
	"pet-board/services/board/internal/model"

	"gorm.io/gorm"
)

func ToBoardEntity(m *model.BoardModel) *entity.Board {
	if m == nil {
		return nil
	}

	b := &entity.Board{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		UserID:       m.UserID,
		Nickname:     m.Nickname,
		Title:        m.Title,
		Content:      m.Content,
		ThumbnailURL: m.ThumbnailURL,
		ViewCount:    m.ViewCount,
		SnsURL:       m.SnsURL,
		Kind:         m.Kind,
		Gender:       m.Gender,
		Age:          m.Age,
		Color:        m.Color,
		LostLocation: m.LostLocation,
		LostDate:     m.LostDate,
		LostType:     m.LostType,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		b.DeletedAt = &deletedAt
	}

	if len(m.Images) > 0 {
		b.Images = make([]entity.BoardImage, len(m.Images))
		for i, img := range m.Images {
			b.Images[i] = entity.BoardImage{
				ID:        img.ID,
				BoardID:   img.BoardID,
				ImageURL:  img.ImageURL,
				Order:     img.Order,
				CreatedAt: img.CreatedAt,
			}
		}
	}

	return b
}

func ToBoardModel(e *entity.Board) *model.BoardModel {
	if e == nil {
		return nil
	}

	m := &model.BoardModel{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		UserID:       e.UserID,
		Nickname:     e.Nickname,
		Title:        e.Title,
		Content:      e.Content,
		ThumbnailURL: e.ThumbnailURL,
		ViewCount:    e.ViewCount,
		SnsURL:       e.SnsURL,
		Kind:         e.Kind,
		Gender:       e.Gender,
		Age:          e.Age,
		Color:        e.Color,
		LostLocation: e.LostLocation,
		LostDate:     e.LostDate,
		LostType:     e.LostType,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	if len(e.Images) > 0 {
		m.Images = make([]model.BoardImageModel, len(e.Images))
		for i, img := range e.Images {
			m.Images[i] = model.BoardImageModel{
				ID:        img.ID,
				BoardID:   img.BoardID,
				ImageURL:  img.ImageURL,
				Order:     img.Order,
				CreatedAt: img.CreatedAt,
			}
		}
	}

	return m
}

// updatableColumns lists what an owner may change after posting.
func updatableColumns(e *entity.Board) map[string]interface{} {
	return map[string]interface{}{
		"category_id":   e.CategoryID,
		"title":         e.Title,
		"content":       e.Content,
		"sns_url":       e.SnsURL,
		"kind":          e.Kind,
		"gender":        e.Gender,
		"age":           e.Age,
		"color":         e.Color,
		"lost_location": e.LostLocation,
		"lost_date":     e.LostDate,
		"lost_type":     e.LostType,
		"updated_at":    time.Now(),
	}
}
