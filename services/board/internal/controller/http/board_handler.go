package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"pet-board/pkg/board"
	"pet-board/pkg/logger"
	"pet-board/services/board/internal/entity"
	"pet-board/services/board/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardUseCase usecase.BoardUseCase
	logger       *logger.Logger
}

func NewBoardHandler(boardUseCase usecase.BoardUseCase, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{
		boardUseCase: boardUseCase,
		logger:       logger,
	}
}

func respond[T any](c *gin.Context, status int, message string, data T) {
	c.JSON(status, board.ApiResponse[T]{Status: status, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	respond[any](c, status, message, nil)
}

// fail maps a usecase error onto a status code. Unknown errors are logged and
// hidden behind a generic message.
func (h *BoardHandler) fail(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, entity.ErrBoardNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, board.ErrInvalidCategory),
		errors.Is(err, board.ErrCategoryFieldMismatch),
		errors.Is(err, board.ErrInvalidLostType),
		errors.Is(err, board.ErrEmptyContent),
		errors.Is(err, board.ErrEmptyNickname),
		errors.Is(err, entity.ErrTooManyImages):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Failed to %s: %v", action, err)
		respondError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}

func boardID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid board id")
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetString("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid user id in token")
		return 0, false
	}
	return id, true
}

// viewer identifies who is reading a post for view deduplication.
func viewer(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// SearchBoards godoc
// @Summary      Search board posts
// @Description  Paginated search over live posts. The keyword matches title or content, case-insensitively. Results are ordered by the sort key, newest or most viewed first.
// @Tags         boards
// @Produce      json
// @Param        category query string false "Board category, name or id" Enums(adoption, review, sns, lost)
// @Param        keyword  query string false "Search keyword"
// @Param        page     query int    false "Page number, starting at 0" default(0)
// @Param        size     query int    false "Page size (1-100)" default(20)
// @Param        sort     query string false "Sort key" Enums(createdAt, viewCount) default(createdAt)
// @Success      200  {object}  board.ApiResponse[board.Page[board.ApiAnimal]]
// @Failure      400  {object}  board.ApiResponse[any]
// @Failure      500  {object}  board.ApiResponse[any]
// @Router       /boards [get]
func (h *BoardHandler) SearchBoards(c *gin.Context) {
	category, err := board.ParseCategory(c.Query("category"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, ok := intQuery(c, "page", 0)
	if !ok {
		return
	}
	size, ok := intQuery(c, "size", board.DefaultPageSize)
	if !ok {
		return
	}
	if page < 0 || size < 1 || size > board.MaxPageSize {
		respondError(c, http.StatusBadRequest, "page must be >= 0 and size between 1 and 100")
		return
	}

	sort := board.SortKey(c.DefaultQuery("sort", string(board.SortCreatedAt)))
	if !sort.Valid() {
		respondError(c, http.StatusBadRequest, "Invalid sort, use createdAt or viewCount")
		return
	}

	result, err := h.boardUseCase.SearchBoards(c.Request.Context(), board.Query{
		Keyword:  c.Query("keyword"),
		Category: category,
		Page:     page,
		Size:     size,
		Sort:     sort,
	})
	if err != nil {
		h.fail(c, "search boards", err)
		return
	}

	respond(c, http.StatusOK, "success", *result)
}

// GetBoard godoc
// @Summary      Get board post by ID
// @Description  Get one post. A view is counted once per viewer within the dedup window.
// @Tags         boards
// @Produce      json
// @Param        id path int true "Board ID"
// @Success      200  {object}  board.ApiResponse[board.ApiAnimal]
// @Failure      400  {object}  board.ApiResponse[any]
// @Failure      404  {object}  board.ApiResponse[any]
// @Router       /boards/{id} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}

	b, err := h.boardUseCase.GetBoard(c.Request.Context(), id, viewer(c))
	if err != nil {
		h.fail(c, "get board", err)
		return
	}

	respond(c, http.StatusOK, "success", b.ToApiAnimal())
}

type CreateBoardRequest struct {
	CategoryID   string `form:"categoryId" binding:"required"`
	NickName     string `form:"nickName" binding:"required"`
	BoardTitle   string `form:"boardTitle"`
	BoardContent string `form:"boardContent" binding:"required"`
	SnsURL       string `form:"snsUrl"`
	Kind         string `form:"kind"`
	Gender       string `form:"gender"`
	Age          string `form:"age"`
	Color        string `form:"color"`
	LostLocation string `form:"lostLocation"`
	LostDate     string `form:"lostDate"`
	LostType     string `form:"lostType"`
}

// CreateBoard godoc
// @Summary      Create a board post
// @Description  Create a post with up to 10 images. The first image becomes the thumbnail. snsUrl is only accepted on the sns board and the lost-animal fields only on the lost board.
// @Tags         boards
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        categoryId   formData string true  "Board category, name or id"
// @Param        nickName     formData string true  "Author nickname"
// @Param        boardTitle   formData string false "Title"
// @Param        boardContent formData string true  "Content"
// @Param        snsUrl       formData string false "SNS link (sns board)"
// @Param        kind         formData string false "Animal kind (lost board)"
// @Param        gender       formData string false "Gender (lost board)"
// @Param        age          formData string false "Age (lost board)"
// @Param        color        formData string false "Color (lost board)"
// @Param        lostLocation formData string false "Where it happened (lost board)"
// @Param        lostDate     formData string false "When it happened (lost board)"
// @Param        lostType     formData string false "missing or sighted (lost board)" Enums(missing, sighted)
// @Param        images       formData file   false "Images, up to 10"
// @Success      201  {object}  board.ApiResponse[board.ApiAnimal]
// @Failure      400  {object}  board.ApiResponse[any]
// @Failure      401  {object}  board.ApiResponse[any]
// @Failure      429  {object}  board.ApiResponse[any]
// @Failure      500  {object}  board.ApiResponse[any]
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := board.ParseCategory(req.CategoryID)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = append(files, form.File["images"]...)
		files = append(files, form.File["images[]"]...)
	}
	if len(files) > entity.MaxImages {
		respondError(c, http.StatusBadRequest, entity.ErrTooManyImages.Error())
		return
	}

	b, err := h.boardUseCase.CreateBoard(c.Request.Context(), usecase.CreateBoardInput{
		UserID:       userID,
		CategoryID:   category.ID(),
		Nickname:     req.NickName,
		Title:        req.BoardTitle,
		Content:      req.BoardContent,
		SnsURL:       req.SnsURL,
		Kind:         req.Kind,
		Gender:       req.Gender,
		Age:          req.Age,
		Color:        req.Color,
		LostLocation: req.LostLocation,
		LostDate:     req.LostDate,
		LostType:     req.LostType,
		Images:       toImageUploads(files),
	})
	if err != nil {
		h.fail(c, "create board", err)
		return
	}

	respond(c, http.StatusCreated, "created", b.ToApiAnimal())
}

func toImageUploads(files []*multipart.FileHeader) []usecase.ImageUpload {
	uploads := make([]usecase.ImageUpload, len(files))
	for i, file := range files {
		file := file
		uploads[i] = usecase.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return file.Open()
			},
		}
	}
	return uploads
}

type UpdateBoardRequest struct {
	BoardTitle   *string `json:"boardTitle"`
	BoardContent *string `json:"boardContent"`
	SnsURL       *string `json:"snsUrl"`
	Kind         *string `json:"kind"`
	Gender       *string `json:"gender"`
	Age          *string `json:"age"`
	Color        *string `json:"color"`
	LostLocation *string `json:"lostLocation"`
	LostDate     *string `json:"lostDate"`
	LostType     *string `json:"lostType"`
}

// UpdateBoard godoc
// @Summary      Update a board post
// @Description  Update title, content or category fields. Omitted fields are kept and empty strings clear optional fields. Only the author can update a post.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                true "Board ID"
// @Param        request body UpdateBoardRequest true "Fields to change"
// @Success      200  {object}  board.ApiResponse[board.ApiAnimal]
// @Failure      400  {object}  board.ApiResponse[any]
// @Failure      403  {object}  board.ApiResponse[any]
// @Failure      404  {object}  board.ApiResponse[any]
// @Failure      500  {object}  board.ApiResponse[any]
// @Router       /boards/{id} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := boardID(c)
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.boardUseCase.UpdateBoard(c.Request.Context(), id, userID, usecase.UpdateBoardInput{
		Title:        req.BoardTitle,
		Content:      req.BoardContent,
		SnsURL:       req.SnsURL,
		Kind:         req.Kind,
		Gender:       req.Gender,
		Age:          req.Age,
		Color:        req.Color,
		LostLocation: req.LostLocation,
		LostDate:     req.LostDate,
		LostType:     req.LostType,
	})
	if err != nil {
		h.fail(c, "update board", err)
		return
	}

	respond(c, http.StatusOK, "updated", b.ToApiAnimal())
}

// DeleteBoard godoc
// @Summary      Delete a board post
// @Description  Soft delete a post. Only the author can delete a post.
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Board ID"
// @Success      200  {object}  board.ApiResponse[any]
// @Failure      403  {object}  board.ApiResponse[any]
// @Failure      404  {object}  board.ApiResponse[any]
// @Failure      500  {object}  board.ApiResponse[any]
// @Router       /boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := boardID(c)
	if !ok {
		return
	}

	if err := h.boardUseCase.DeleteBoard(c.Request.Context(), id, userID); err != nil {
		h.fail(c, "delete board", err)
		return
	}

	respond[any](c, http.StatusOK, "deleted", nil)
}
