// Package search keeps an Elasticsearch index of bookmarks for full-text
// lookup by their owners.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
)

const (
	DefaultIndex = "bookmarks"

	defaultSize = 10
	maxSize     = 50
	callTimeout = 3 * time.Second
)

type BookmarkIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewBookmarkIndex(es *elasticsearch.Client, index string) *BookmarkIndex {
	if index == "" {
		index = DefaultIndex
	}
	return &BookmarkIndex{es: es, index: index}
}

type bookmarkDoc struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Favicon   string    `json:"favicon"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

const mapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "long"},
      "user_id":    {"type": "long"},
      "url":        {"type": "text", "fields": {"raw": {"type": "keyword", "ignore_above": 2048}}},
      "title":      {"type": "text"},
      "favicon":    {"type": "keyword", "index": false},
      "summary":    {"type": "text"},
      "created_at": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (i *BookmarkIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es index exists: %w", err)
	}
	_ = exists.Body.Close()
	switch exists.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("es index exists: %s", exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{Index: i.index, Body: strings.NewReader(mapping)}.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	// lost a race with another instance
	if res.StatusCode == http.StatusBadRequest {
		b, _ := io.ReadAll(res.Body)
		if bytes.Contains(b, []byte("resource_already_exists_exception")) {
			return nil
		}
		return fmt.Errorf("es create index: %s: %s", res.Status(), b)
	}
	if res.IsError() {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}

func toDoc(b entity.Bookmark) bookmarkDoc {
	return bookmarkDoc{ID: b.ID, UserID: b.UserID, URL: b.URL, Title: b.Title, Favicon: b.Favicon, Summary: b.Summary, CreatedAt: b.CreatedAt}
}

func (d bookmarkDoc) toEntity() entity.Bookmark {
	return entity.Bookmark{ID: d.ID, UserID: d.UserID, URL: d.URL, Title: d.Title, Favicon: d.Favicon, Summary: d.Summary, CreatedAt: d.CreatedAt}
}

// Index upserts the bookmark document under its id.
func (i *BookmarkIndex) Index(ctx context.Context, b entity.Bookmark) error {
	body, err := json.Marshal(toDoc(b))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(b.ID, 10),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Delete removes the document. A missing document is not an error.
func (i *BookmarkIndex) Delete(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over title, summary and url, filtered to userID.
func (i *BookmarkIndex) Search(ctx context.Context, userID int64, q string, size int) ([]entity.Bookmark, error) {
	switch {
	case size <= 0:
		size = defaultSize
	case size > maxSize:
		size = maxSize
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "summary", "url"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	res, err := i.es.Search(i.es.Search.WithContext(c), i.es.Search.WithIndex(i.index), i.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source bookmarkDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}

	out := make([]entity.Bookmark, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		// the filter already scopes by owner; never trust the index alone
		if h.Source.UserID != userID {
			continue
		}
		out = append(out, h.Source.toEntity())
	}
	return out, nil
}
