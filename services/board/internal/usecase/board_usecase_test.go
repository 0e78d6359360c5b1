package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pet-board/pkg/board"
	"pet-board/pkg/logger"
	"pet-board/pkg/queue"
	"pet-board/services/board/internal/entity"
	"pet-board/services/board/internal/repo/cache"
	"pet-board/services/board/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, b *entity.Board) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
		b.CreatedAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	}
	return args.Error(0)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id int64) (*entity.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, int64) *entity.Board); ok {
		return fn(ctx, id), args.Error(1)
	}
	return args.Get(0).(*entity.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Board, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Board), args.Error(1)
}

func (m *MockBoardRepository) Search(ctx context.Context, q board.Query) ([]*entity.Board, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Board), args.Get(1).(int64), args.Error(2)
}

func (m *MockBoardRepository) Update(ctx context.Context, b *entity.Board) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBoardRepository) IncrementViews(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBoardRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]*entity.Board, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Board), args.Error(1)
}

var _ persistent.BoardRepository = (*MockBoardRepository)(nil)

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type fakeIndex struct {
	ids      []int64
	total    int64
	err      error
	indexErr error
	indexed  []int64
	removed  []int64
	searched int
}

func (f *fakeIndex) EnsureIndex(ctx context.Context) error { return nil }

func (f *fakeIndex) Index(ctx context.Context, b *entity.Board) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, b.ID)
	return nil
}

func (f *fakeIndex) Remove(ctx context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, q board.Query) ([]int64, int64, error) {
	f.searched++
	return f.ids, f.total, f.err
}

type fakeSearchCache struct {
	pages         map[string]*board.Page[board.ApiAnimal]
	version       int64
	invalidations int
}

func newFakeSearchCache() *fakeSearchCache {
	return &fakeSearchCache{pages: map[string]*board.Page[board.ApiAnimal]{}}
}

func (f *fakeSearchCache) Get(ctx context.Context, q board.Query) (*board.Page[board.ApiAnimal], error) {
	page, ok := f.pages[cache.SearchKey(f.version, q)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return page, nil
}

func (f *fakeSearchCache) Set(ctx context.Context, q board.Query, page *board.Page[board.ApiAnimal]) error {
	f.pages[cache.SearchKey(f.version, q)] = page
	return nil
}

func (f *fakeSearchCache) Invalidate(ctx context.Context) error {
	f.version++
	f.invalidations++
	return nil
}

type fakeViewTracker struct {
	seen map[string]bool
	err  error
}

func (f *fakeViewTracker) MarkViewed(ctx context.Context, boardID int64, viewer string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	key := cache.ViewKey(boardID, viewer)
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type chanPublisher struct {
	reports chan queue.LostReport
}

func (p *chanPublisher) PublishLostReport(ctx context.Context, report queue.LostReport) error {
	p.reports <- report
	return nil
}

type fixture struct {
	repo      *MockBoardRepository
	images    *MockImageStore
	index     *fakeIndex
	cache     *fakeSearchCache
	views     *fakeViewTracker
	publisher *chanPublisher
	uc        BoardUseCase
}

func newFixture(withIndex bool) *fixture {
	f := &fixture{
		repo:      new(MockBoardRepository),
		images:    new(MockImageStore),
		cache:     newFakeSearchCache(),
		views:     &fakeViewTracker{seen: map[string]bool{}},
		publisher: &chanPublisher{reports: make(chan queue.LostReport, 1)},
	}
	opts := Options{SearchCache: f.cache, Views: f.views, Events: f.publisher}
	if withIndex {
		f.index = &fakeIndex{}
		opts.Index = f.index
	}
	f.uc = NewBoardUseCase(f.repo, f.images, opts, logger.NewWithWriter(io.Discard, "error"))
	return f
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func imageUpload(name string) ImageUpload {
	return ImageUpload{
		Filename:    name,
		ContentType: "image/png",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("png")), nil
		},
	}
}

func TestSearchBoards_BuildsConsistentPageAndCaches(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	boards := []*entity.Board{
		{ID: 2, CategoryID: 1, Nickname: "a", Content: "x"},
		{ID: 1, CategoryID: 1, Nickname: "b", Content: "y"},
	}
	f.repo.On("Search", ctx, board.Query{Size: 20, Sort: board.SortCreatedAt}).Return(boards, int64(2), nil).Once()

	page, err := f.uc.SearchBoards(ctx, board.Query{})
	require.NoError(t, err)
	assert.True(t, page.Consistent())
	assert.Equal(t, int64(2), page.TotalElements)
	assert.False(t, page.Empty)
	assert.True(t, page.First)
	assert.True(t, page.Last)

	again, err := f.uc.SearchBoards(ctx, board.Query{})
	require.NoError(t, err)
	assert.Same(t, page, again)
	f.repo.AssertNumberOfCalls(t, "Search", 1)
}

func TestSearchBoards_UsesIndexForKeyword(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.index.ids = []int64{5, 3}
	f.index.total = 2
	f.repo.On("GetByIDs", ctx, []int64{5, 3}).Return([]*entity.Board{
		{ID: 5, CategoryID: 4, Nickname: "a", Content: "x"},
		{ID: 3, CategoryID: 4, Nickname: "b", Content: "y"},
	}, nil)

	page, err := f.uc.SearchBoards(ctx, board.Query{Keyword: "cat"})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(5), page.Content[0].BoardID)
	f.repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchBoards_FallsBackToDatabaseWhenIndexFails(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.index.err = errors.New("cluster down")
	f.repo.On("Search", ctx, mock.AnythingOfType("board.Query")).Return([]*entity.Board{}, int64(0), nil)

	page, err := f.uc.SearchBoards(ctx, board.Query{Keyword: "cat"})
	require.NoError(t, err)
	assert.True(t, page.Empty)
	assert.NotNil(t, page.Content)
}

func TestSearchBoards_StaleIndexHitsFallBackToDatabase(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.index.ids = []int64{3, 2}
	f.index.total = 2
	f.repo.On("GetByIDs", ctx, []int64{3, 2}).Return([]*entity.Board{
		{ID: 3, CategoryID: 4, Nickname: "a", Content: "고양이"},
	}, nil)
	f.repo.On("Search", ctx, board.Query{Keyword: "고양", Size: 20, Sort: board.SortCreatedAt}).Return([]*entity.Board{
		{ID: 3, CategoryID: 4, Nickname: "a", Content: "고양이"},
	}, int64(1), nil).Once()

	page, err := f.uc.SearchBoards(ctx, board.Query{Keyword: "고양"})
	require.NoError(t, err)
	assert.True(t, page.Consistent())
	assert.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, []int64{2}, f.index.removed)
}

func TestSearchBoards_ViewCountSortSkipsIndex(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	q := board.Query{Keyword: "cat", Size: 20, Sort: board.SortViewCount}
	f.repo.On("Search", ctx, q).Return([]*entity.Board{}, int64(0), nil).Once()

	_, err := f.uc.SearchBoards(ctx, q)
	require.NoError(t, err)
	assert.Zero(t, f.index.searched)
	f.repo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestSearchBoards_RepositoryError(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.repo.On("Search", ctx, mock.Anything).Return(nil, int64(0), errors.New("db down"))

	_, err := f.uc.SearchBoards(ctx, board.Query{})
	assert.Error(t, err)
}

func TestGetBoard_CountsViewOncePerViewer(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(9)).Return(func(context.Context, int64) *entity.Board {
		return &entity.Board{ID: 9, CategoryID: 1, Nickname: "a", Content: "x", ViewCount: 4}
	}, nil)
	f.repo.On("IncrementViews", ctx, int64(9)).Return(nil).Once()

	first, err := f.uc.GetBoard(ctx, 9, "user:1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.ViewCount)

	second, err := f.uc.GetBoard(ctx, 9, "user:1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), second.ViewCount)

	f.repo.AssertNumberOfCalls(t, "IncrementViews", 1)
}

func TestGetBoard_SkipsCountWhenTrackerFails(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.views.err = errors.New("redis down")
	f.repo.On("GetByID", ctx, int64(9)).Return(&entity.Board{ID: 9, CategoryID: 1, Nickname: "a", Content: "x"}, nil)

	b, err := f.uc.GetBoard(ctx, 9, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Zero(t, b.ViewCount)
	f.repo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestGetBoard_NotFound(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(1)).Return(nil, entity.ErrBoardNotFound)

	_, err := f.uc.GetBoard(ctx, 1, "")
	assert.ErrorIs(t, err, entity.ErrBoardNotFound)
}

func TestCreateBoard_UploadsImagesAndPublishesLostReport(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.images.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "boards/7/") && strings.HasSuffix(key, ".png")
	}), mock.Anything, "image/png").Return("http://s3/a.png", nil).Once()
	f.images.On("Upload", ctx, mock.Anything, mock.Anything, "image/png").Return("http://s3/b.png", nil).Once()
	f.repo.On("Create", ctx, mock.AnythingOfType("*entity.Board")).Return(nil)

	b, err := f.uc.CreateBoard(ctx, CreateBoardInput{
		UserID:       7,
		CategoryID:   board.CategoryLost.ID(),
		Nickname:     "finder",
		Content:      "검은 고양이를 봤어요",
		Kind:         "고양이",
		LostLocation: "서울",
		LostType:     "sighted",
		Images:       []ImageUpload{imageUpload("A.PNG"), imageUpload("b.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://s3/a.png", *b.ThumbnailURL)
	assert.Equal(t, []string{"http://s3/a.png", "http://s3/b.png"}, b.ImageURLs())
	assert.Nil(t, b.Title)
	assert.True(t, b.OwnedBy(7))
	assert.Equal(t, []int64{1}, f.index.indexed)
	assert.Equal(t, 1, f.cache.invalidations)

	select {
	case report := <-f.publisher.reports:
		assert.Equal(t, "lost_report", report.Type)
		assert.Equal(t, int64(1), report.BoardID)
		assert.Equal(t, "sighted", report.LostType)
		assert.Equal(t, "서울", report.LostLocation)
	case <-time.After(time.Second):
		t.Fatal("lost report was not published")
	}
}

func TestCreateBoard_RejectsTooManyImages(t *testing.T) {
	f := newFixture(false)
	images := make([]ImageUpload, entity.MaxImages+1)
	for i := range images {
		images[i] = imageUpload("x.png")
	}

	_, err := f.uc.CreateBoard(context.Background(), CreateBoardInput{
		CategoryID: 1, Nickname: "a", Content: "b", Images: images,
	})
	assert.ErrorIs(t, err, entity.ErrTooManyImages)
	f.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBoard_ValidatesBeforeUploading(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateBoardInput
		want  error
	}{
		{"unknown category", CreateBoardInput{CategoryID: 9, Nickname: "a", Content: "b"}, board.ErrInvalidCategory},
		{"blank content", CreateBoardInput{CategoryID: 1, Nickname: "a", Content: "   "}, board.ErrEmptyContent},
		{"sns url on adoption", CreateBoardInput{CategoryID: 1, Nickname: "a", Content: "b", SnsURL: "http://x"}, board.ErrCategoryFieldMismatch},
		{"lost fields on review", CreateBoardInput{CategoryID: 2, Nickname: "a", Content: "b", Kind: "dog"}, board.ErrCategoryFieldMismatch},
		{"bad lost type", CreateBoardInput{CategoryID: 4, Nickname: "a", Content: "b", LostType: "stolen"}, board.ErrInvalidLostType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Images = []ImageUpload{imageUpload("a.png")}
			_, err := f.uc.CreateBoard(ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	f.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBoard_DeletesUploadsWhenInsertFails(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.images.On("Upload", ctx, mock.Anything, mock.Anything, "image/png").Return("http://s3/a.png", nil)
	f.images.On("Delete", mock.Anything, "http://s3/a.png").Return(nil)
	f.repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

	_, err := f.uc.CreateBoard(ctx, CreateBoardInput{
		UserID: 1, CategoryID: 1, Nickname: "a", Content: "b",
		Images: []ImageUpload{imageUpload("a.png")},
	})
	assert.Error(t, err)
	f.images.AssertCalled(t, "Delete", mock.Anything, "http://s3/a.png")
	assert.Zero(t, f.cache.invalidations)
}

func TestUpdateBoard_OwnerOnly(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(3)).Return(&entity.Board{ID: 3, CategoryID: 1, UserID: int64Ptr(7), Nickname: "a", Content: "b"}, nil)

	_, err := f.uc.UpdateBoard(ctx, 3, 8, UpdateBoardInput{Content: strPtr("hijack")})
	assert.ErrorIs(t, err, entity.ErrForbidden)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBoard_AppliesFieldsAndInvalidates(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(3)).Return(&entity.Board{
		ID: 3, CategoryID: 4, UserID: int64Ptr(7), Nickname: "a", Content: "b",
		Title: strPtr("old"), Color: strPtr("black"),
	}, nil)
	f.repo.On("Update", ctx, mock.AnythingOfType("*entity.Board")).Return(nil)

	b, err := f.uc.UpdateBoard(ctx, 3, 7, UpdateBoardInput{
		Title:    strPtr("found her"),
		Color:    strPtr(""),
		LostType: strPtr("missing"),
	})
	require.NoError(t, err)
	assert.Equal(t, "found her", *b.Title)
	assert.Nil(t, b.Color)
	assert.Equal(t, "missing", *b.LostType)
	assert.Equal(t, "b", b.Content)
	assert.Equal(t, []int64{3}, f.index.indexed)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestUpdateBoard_RejectsMismatchedField(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(3)).Return(&entity.Board{ID: 3, CategoryID: 1, UserID: int64Ptr(7), Nickname: "a", Content: "b"}, nil)

	_, err := f.uc.UpdateBoard(ctx, 3, 7, UpdateBoardInput{LostDate: strPtr("2024-05-01")})
	assert.ErrorIs(t, err, board.ErrCategoryFieldMismatch)
}

func TestDeleteBoard(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(3)).Return(&entity.Board{ID: 3, CategoryID: 1, UserID: int64Ptr(7), Nickname: "a", Content: "b"}, nil)
	f.repo.On("Delete", ctx, int64(3)).Return(nil)

	require.NoError(t, f.uc.DeleteBoard(ctx, 3, 7))
	assert.Equal(t, []int64{3}, f.index.removed)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestDeleteBoard_Forbidden(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.repo.On("GetByID", ctx, int64(3)).Return(&entity.Board{ID: 3, CategoryID: 1, Nickname: "anonymous", Content: "b"}, nil)

	assert.ErrorIs(t, f.uc.DeleteBoard(ctx, 3, 7), entity.ErrForbidden)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
