package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pet-board/pkg/board"
	"pet-board/services/board/internal/entity"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// BoardIndex mirrors live posts into a search index. Search returns post ids
// newest first; the posts themselves are loaded from the database. The index
// does not track view counts.
type BoardIndex interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, b *entity.Board) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q board.Query) ([]int64, int64, error)
}

type esBoardIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewESBoardIndex(client *elasticsearch.Client, index string) BoardIndex {
	return &esBoardIndex{client: client, index: index}
}

type boardDocument struct {
	BoardID    int64     `json:"board_id"`
	CategoryID int       `json:"category_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func toDocument(b *entity.Board) boardDocument {
	doc := boardDocument{
		BoardID:    b.ID,
		CategoryID: b.CategoryID,
		Content:    b.Content,
		CreatedAt:  b.CreatedAt,
	}
	if b.Title != nil {
		doc.Title = *b.Title
	}
	return doc
}

// title and content carry a wildcard subfield so a keyword matches any
// substring, the same way the database search does.
var indexMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"board_id":    map[string]interface{}{"type": "long"},
			"category_id": map[string]interface{}{"type": "integer"},
			"title":       substringField,
			"content":     substringField,
			"created_at":  map[string]interface{}{"type": "date"},
		},
	},
}

var substringField = map[string]interface{}{
	"type": "text",
	"fields": map[string]interface{}{
		"wc": map[string]interface{}{"type": "wildcard"},
	},
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func containsQuery(field, keyword string) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			field + ".wc": map[string]interface{}{
				"value":            "*" + wildcardEscaper.Replace(keyword) + "*",
				"case_insensitive": true,
			},
		},
	}
}

func (r *esBoardIndex) EnsureIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	data, err := json.Marshal(indexMapping)
	if err != nil {
		return fmt.Errorf("failed to encode index mapping: %w", err)
	}

	res, err = r.client.Indices.Create(r.index,
		r.client.Indices.Create.WithBody(bytes.NewReader(data)),
		r.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(body), "resource_already_exists_exception") {
			return fmt.Errorf("create index error [%s]: %s", res.Status(), string(body))
		}
	}
	return nil
}

func (r *esBoardIndex) Index(ctx context.Context, b *entity.Board) error {
	data, err := json.Marshal(toDocument(b))
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: strconv.FormatInt(b.ID, 10),
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index board %d: %w", b.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

func (r *esBoardIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{
		Index:      r.index,
		DocumentID: strconv.FormatInt(id, 10),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to remove board %d: %w", id, err)
	}
	defer res.Body.Close()

	// already gone
	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("delete error: %s", res.String())
	}
	return nil
}

func searchBody(q board.Query) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"should": []interface{}{
			containsQuery("title", q.Keyword),
			containsQuery("content", q.Keyword),
		},
		"minimum_should_match": 1,
	}
	if q.Category != 0 {
		boolQuery["filter"] = map[string]interface{}{
			"term": map[string]interface{}{"category_id": q.Category.ID()},
		}
	}

	return map[string]interface{}{
		"from":             q.Page * q.Size,
		"size":             q.Size,
		"track_total_hits": true,
		"_source":          false,
		"query":            map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{"created_at": "desc"},
			map[string]interface{}{"board_id": "desc"},
		},
	}
}

func (r *esBoardIndex) Search(ctx context.Context, q board.Query) ([]int64, int64, error) {
	q = q.Normalize()

	data, err := json.Marshal(searchBody(q))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search boards: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var result esResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, result.Hits.Total.Value, nil
}

type esResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}
