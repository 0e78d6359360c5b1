package board

import "time"

// ApiAnimal is a board post exactly as the service puts it on the wire.
type ApiAnimal struct {
	BoardID      int64      `json:"boardId"`
	CategoryID   int        `json:"categoryId"`
	UserID       *int64     `json:"userId"`
	NickName     string     `json:"nickName"`
	BoardTitle   *string    `json:"boardTitle"`
	BoardContent string     `json:"boardContent"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	ImageURLs    []string   `json:"imageUrls"`
	ViewCount    int64      `json:"viewCount"`
	SnsURL       *string    `json:"snsUrl,omitempty"`
	Kind         *string    `json:"kind,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	Age          *string    `json:"age,omitempty"`
	Color        *string    `json:"color,omitempty"`
	LostLocation *string    `json:"lostLocation,omitempty"`
	LostDate     *string    `json:"lostDate,omitempty"`
	LostType     *string    `json:"lostType,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	DeleteAt     *time.Time `json:"deleteAt"`
}

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type Sort struct {
	Empty    bool `json:"empty"`
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
}

type Pageable struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Sort       Sort  `json:"sort"`
	Offset     int64 `json:"offset"`
	Paged      bool  `json:"paged"`
	Unpaged    bool  `json:"unpaged"`
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Content          []T      `json:"content"`
	Pageable         Pageable `json:"pageable"`
	Last             bool     `json:"last"`
	TotalElements    int64    `json:"totalElements"`
	TotalPages       int      `json:"totalPages"`
	Size             int      `json:"size"`
	Number           int      `json:"number"`
	Sort             Sort     `json:"sort"`
	First            bool     `json:"first"`
	NumberOfElements int      `json:"numberOfElements"`
	Empty            bool     `json:"empty"`
}

// NewPage derives every pagination flag from the content and the total so
// the envelope cannot contradict itself. A nil content slice is sent as [].
func NewPage[T any](content []T, pageNumber, pageSize int, total int64, sorted bool) Page[T] {
	if content == nil {
		content = []T{}
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageNumber < 0 {
		pageNumber = 0
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	sort := Sort{Empty: !sorted, Sorted: sorted, Unsorted: !sorted}

	return Page[T]{
		Content: content,
		Pageable: Pageable{
			PageNumber: pageNumber,
			PageSize:   pageSize,
			Sort:       sort,
			Offset:     int64(pageNumber) * int64(pageSize),
			Paged:      true,
			Unpaged:    false,
		},
		Last:             pageNumber+1 >= totalPages,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             pageSize,
		Number:           pageNumber,
		Sort:             sort,
		First:            pageNumber == 0,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}

// Consistent reports whether a decoded page obeys the relations NewPage
// guarantees.
func (p Page[T]) Consistent() bool {
	if p.Size < 1 || p.Number < 0 {
		return false
	}
	if p.Empty != (len(p.Content) == 0) || p.NumberOfElements != len(p.Content) {
		return false
	}
	if int64(len(p.Content)) > int64(p.Size) {
		return false
	}
	wantPages := int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
	if p.TotalPages != wantPages {
		return false
	}
	if p.First != (p.Number == 0) || p.Last != (p.Number+1 >= p.TotalPages) {
		return false
	}
	if p.Pageable.Offset != int64(p.Number)*int64(p.Size) {
		return false
	}
	if len(p.Content) == 0 {
		return true
	}
	seen := p.Pageable.Offset + int64(len(p.Content))
	if p.Last {
		return seen == p.TotalElements
	}
	return len(p.Content) == p.Size && seen < p.TotalElements
}

func OK[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{Status: 200, Message: "success", Data: data}
}
