package persistent

import (
	"context"
	"testing"
	"time"

	"pet-board/pkg/board"
	"pet-board/services/board/internal/entity"
	"pet-board/services/board/internal/model"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type BoardRepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	repo BoardRepository
	ctx  context.Context
}

func TestBoardRepositorySuite(t *testing.T) {
	suite.Run(t, new(BoardRepositorySuite))
}

func (s *BoardRepositorySuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(&model.BoardModel{}, &model.BoardImageModel{}))
	s.db = db
	s.repo = NewBoardRepository(db)
	s.ctx = context.Background()
}

func (s *BoardRepositorySuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func strPtr(v string) *string { return &v }

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func (s *BoardRepositorySuite) insert(category board.Category, title, content string, minutes int, views int64) *entity.Board {
	b := &entity.Board{
		CategoryID: category.ID(),
		Nickname:   "tester",
		Title:      strPtr(title),
		Content:    content,
		ViewCount:  views,
		CreatedAt:  base.Add(time.Duration(minutes) * time.Minute),
	}
	s.Require().NoError(s.repo.Create(s.ctx, b))
	return b
}

func (s *BoardRepositorySuite) TestCreateAndGetByID_KeepsImageOrder() {
	userID := int64(7)
	b := &entity.Board{
		CategoryID: board.CategoryLost.ID(),
		UserID:     &userID,
		Nickname:   "finder",
		Content:    "갈색 푸들을 찾습니다",
		Kind:       strPtr("푸들"),
		LostType:   strPtr("missing"),
		Images: []entity.BoardImage{
			{ImageURL: "http://img/a.jpg", Order: 0},
			{ImageURL: "http://img/b.jpg", Order: 1},
		},
	}
	s.Require().NoError(s.repo.Create(s.ctx, b))
	s.NotZero(b.ID)

	got, err := s.repo.GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal([]string{"http://img/a.jpg", "http://img/b.jpg"}, got.ImageURLs())
	s.Equal("푸들", *got.Kind)
	s.True(got.OwnedBy(7))
	s.Nil(got.DeletedAt)
}

func (s *BoardRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 999)
	s.ErrorIs(err, entity.ErrBoardNotFound)
}

func (s *BoardRepositorySuite) TestSearch_KeywordIsCaseInsensitiveOnTitleAndContent() {
	s.insert(board.CategoryAdoption, "Cute CAT", "needs a home", 0, 0)
	s.insert(board.CategoryAdoption, "dog", "a shy cat friend", 1, 0)
	s.insert(board.CategoryReview, "parrot", "loud", 2, 0)

	boards, total, err := s.repo.Search(s.ctx, board.Query{Keyword: "cat"})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(boards, 2)
	s.Equal("dog", *boards[0].Title)
	s.Equal("Cute CAT", *boards[1].Title)
}

func (s *BoardRepositorySuite) TestSearch_EscapesLikeWildcards() {
	s.insert(board.CategoryAdoption, "100% healthy", "x", 0, 0)
	s.insert(board.CategoryAdoption, "1000 healthy", "x", 1, 0)

	boards, total, err := s.repo.Search(s.ctx, board.Query{Keyword: "0%"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("100% healthy", *boards[0].Title)
}

func (s *BoardRepositorySuite) TestSearch_CategoryAndPaging() {
	for i := 0; i < 5; i++ {
		s.insert(board.CategoryLost, "lost", "content", i, 0)
	}
	s.insert(board.CategorySNS, "sns", "content", 10, 0)

	boards, total, err := s.repo.Search(s.ctx, board.Query{Category: board.CategoryLost, Page: 1, Size: 2})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(boards, 2)
	s.True(boards[0].CreatedAt.After(boards[1].CreatedAt))

	page := board.NewPage(entity.ToApiAnimals(boards), 1, 2, total, true)
	s.True(page.Consistent())
	s.Equal(3, page.TotalPages)
	s.False(page.Last)
}

func (s *BoardRepositorySuite) TestSearch_SortByViewCountThenID() {
	a := s.insert(board.CategoryReview, "a", "c", 0, 5)
	b := s.insert(board.CategoryReview, "b", "c", 1, 9)
	c := s.insert(board.CategoryReview, "c", "c", 2, 5)

	boards, _, err := s.repo.Search(s.ctx, board.Query{Sort: board.SortViewCount})
	s.Require().NoError(err)
	s.Require().Len(boards, 3)
	s.Equal([]int64{b.ID, c.ID, a.ID}, []int64{boards[0].ID, boards[1].ID, boards[2].ID})
}

func (s *BoardRepositorySuite) TestDelete_IsSoftAndHidesFromSearch() {
	b := s.insert(board.CategoryAdoption, "gone", "bye", 0, 0)

	s.Require().NoError(s.repo.Delete(s.ctx, b.ID))

	_, err := s.repo.GetByID(s.ctx, b.ID)
	s.ErrorIs(err, entity.ErrBoardNotFound)

	_, total, err := s.repo.Search(s.ctx, board.Query{})
	s.Require().NoError(err)
	s.Zero(total)

	var m model.BoardModel
	s.Require().NoError(s.db.Unscoped().First(&m, b.ID).Error)
	s.True(m.DeletedAt.Valid)

	s.ErrorIs(s.repo.Delete(s.ctx, b.ID), entity.ErrBoardNotFound)
}

func (s *BoardRepositorySuite) TestUpdate() {
	b := s.insert(board.CategoryAdoption, "old", "old content", 0, 3)
	b.Title = strPtr("new")
	b.Content = "new content"

	s.Require().NoError(s.repo.Update(s.ctx, b))

	got, err := s.repo.GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal("new", *got.Title)
	s.Equal("new content", got.Content)
	s.Equal(int64(3), got.ViewCount)

	missing := &entity.Board{ID: 12345, CategoryID: 1, Nickname: "x", Content: "y"}
	s.ErrorIs(s.repo.Update(s.ctx, missing), entity.ErrBoardNotFound)
}

func (s *BoardRepositorySuite) TestIncrementViews() {
	b := s.insert(board.CategoryAdoption, "t", "c", 0, 0)

	s.Require().NoError(s.repo.IncrementViews(s.ctx, b.ID))
	s.Require().NoError(s.repo.IncrementViews(s.ctx, b.ID))

	got, err := s.repo.GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), got.ViewCount)
}

func (s *BoardRepositorySuite) TestGetByIDs_PreservesOrderAndSkipsMissing() {
	a := s.insert(board.CategoryAdoption, "a", "c", 0, 0)
	b := s.insert(board.CategoryAdoption, "b", "c", 1, 0)

	boards, err := s.repo.GetByIDs(s.ctx, []int64{b.ID, 999, a.ID})
	s.Require().NoError(err)
	s.Require().Len(boards, 2)
	s.Equal(b.ID, boards[0].ID)
	s.Equal(a.ID, boards[1].ID)
}

func (s *BoardRepositorySuite) TestListAfter_PagesLiveBoardsByID() {
	a := s.insert(board.CategoryAdoption, "a", "c", 0, 0)
	b := s.insert(board.CategoryLost, "b", "c", 1, 0)
	c := s.insert(board.CategorySNS, "c", "c", 2, 0)
	s.Require().NoError(s.repo.Delete(s.ctx, b.ID))

	first, err := s.repo.ListAfter(s.ctx, 0, 1)
	s.Require().NoError(err)
	s.Require().Len(first, 1)
	s.Equal(a.ID, first[0].ID)

	rest, err := s.repo.ListAfter(s.ctx, a.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(c.ID, rest[0].ID)
}
