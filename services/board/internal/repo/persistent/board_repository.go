package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-board/pkg/board"
	"pet-board/services/board/internal/entity"
	"pet-board/services/board/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository interface {
	Create(ctx context.Context, b *entity.Board) error
	GetByID(ctx context.Context, id int64) (*entity.Board, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Board, error)
	Search(ctx context.Context, q board.Query) ([]*entity.Board, int64, error)
	Update(ctx context.Context, b *entity.Board) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	ListAfter(ctx context.Context, afterID int64, limit int) ([]*entity.Board, error)
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("board_images.sort_order ASC")
}

func sortColumn(key board.SortKey) string {
	if key == board.SortViewCount {
		return "view_count"
	}
	return "created_at"
}

func (r *boardRepository) Create(ctx context.Context, b *entity.Board) error {
	m := ToBoardModel(b)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	*b = *ToBoardEntity(m)
	return nil
}

func (r *boardRepository) GetByID(ctx context.Context, id int64) (*entity.Board, error) {
	var m model.BoardModel
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Where("id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToBoardEntity(&m), nil
}

// GetByIDs loads live posts and returns them in the order of ids. Unknown or
// deleted ids are skipped.
func (r *boardRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Board, error) {
	if len(ids) == 0 {
		return []*entity.Board{}, nil
	}

	var models []model.BoardModel
	if err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Where("id IN ?", ids).
		Find(&models).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]*entity.Board, len(models))
	for i := range models {
		byID[models[i].ID] = ToBoardEntity(&models[i])
	}

	boards := make([]*entity.Board, 0, len(models))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

func (r *boardRepository) Search(ctx context.Context, q board.Query) ([]*entity.Board, int64, error) {
	q = q.Normalize()

	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&model.BoardModel{})
		if q.Category != 0 {
			tx = tx.Where("category_id = ?", q.Category.ID())
		}
		if q.Keyword != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Keyword)) + "%"
			tx = tx.Where(`(LOWER(COALESCE(title, '')) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count boards: %w", err)
	}

	var models []model.BoardModel
	if err := filtered().
		Preload("Images", orderedImages).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn(q.Sort)}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(q.Size).
		Offset(q.Page * q.Size).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search boards: %w", err)
	}

	boards := make([]*entity.Board, len(models))
	for i := range models {
		boards[i] = ToBoardEntity(&models[i])
	}
	return boards, total, nil
}

func (r *boardRepository) Update(ctx context.Context, b *entity.Board) error {
	res := r.db.WithContext(ctx).
		Model(&model.BoardModel{}).
		Where("id = ?", b.ID).
		Updates(updatableColumns(b))
	if res.Error != nil {
		return fmt.Errorf("failed to update board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrBoardNotFound
	}
	return nil
}

func (r *boardRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.BoardModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrBoardNotFound
	}
	return nil
}

func (r *boardRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.BoardModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// ListAfter pages through live posts in id order, starting after afterID.
func (r *boardRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]*entity.Board, error) {
	var models []model.BoardModel
	if err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	boards := make([]*entity.Board, len(models))
	for i := range models {
		boards[i] = ToBoardEntity(&models[i])
	}
	return boards, nil
}
