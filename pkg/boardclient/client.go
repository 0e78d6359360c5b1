package boardclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-board/pkg/board"
)

// APIError is a non-2xx answer from the board service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("board service returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of raw wire records.
func (c *Client) Search(ctx context.Context, q board.Query) (*board.ApiResponse[board.Page[board.ApiAnimal]], error) {
	q = q.Normalize()

	params := url.Values{}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.Category.Valid() {
		params.Set("category", q.Category.String())
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	params.Set("sort", string(q.Sort))

	var resp board.ApiResponse[board.Page[board.ApiAnimal]]
	if err := c.get(ctx, "/api/v1/boards?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchPosts runs Search and maps the page onto view models.
func (c *Client) SearchPosts(ctx context.Context, q board.Query) (*board.SearchResult, error) {
	resp, err := c.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	result := board.NewSearchResult(resp.Data)
	return &result, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*board.BoardPost, error) {
	var resp board.ApiResponse[board.ApiAnimal]
	if err := c.get(ctx, "/api/v1/boards/"+strconv.FormatInt(id, 10), &resp); err != nil {
		return nil, err
	}
	post := board.ToBoardPost(resp.Data)
	return &post, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call board service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var envelope board.ApiResponse[json.RawMessage]
		if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
			return &APIError{Status: resp.StatusCode, Message: envelope.Message}
		}
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode board response: %w", err)
	}
	return nil
}
