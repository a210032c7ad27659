package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   []byte
}

func newIndex(t *testing.T, status int, respBody string) (*BookmarkIndex, *[]recorded) {
	t.Helper()
	calls := &[]recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*calls = append(*calls, recorded{method: r.Method, path: r.URL.Path, body: b})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewBookmarkIndex(es, "bookmarks"), calls
}

func TestIndexPutsDocument(t *testing.T) {
	idx, calls := newIndex(t, http.StatusCreated, `{"result":"created"}`)

	b := entity.Bookmark{ID: 11, UserID: 2, URL: "example.com", Title: "Example", Summary: "s", CreatedAt: time.Unix(1700000000, 0).UTC()}
	require.NoError(t, idx.Index(context.Background(), b))
	require.Len(t, *calls, 1)
	require.Equal(t, http.MethodPut, (*calls)[0].method)
	require.Equal(t, "/bookmarks/_doc/11", (*calls)[0].path)

	var doc bookmarkDoc
	require.NoError(t, json.Unmarshal((*calls)[0].body, &doc))
	require.Equal(t, toDoc(b), doc)
}

func TestDeleteToleratesMissingDocument(t *testing.T) {
	idx, calls := newIndex(t, http.StatusNotFound, `{"result":"not_found"}`)

	require.NoError(t, idx.Delete(context.Background(), 5))
	require.Equal(t, http.MethodDelete, (*calls)[0].method)
	require.Equal(t, "/bookmarks/_doc/5", (*calls)[0].path)
}

func TestSearchFiltersByOwner(t *testing.T) {
	resp := `{"hits":{"hits":[
		{"_id":"1","_source":{"id":1,"user_id":2,"url":"a.com","title":"Go tips","summary":"x","created_at":"2024-01-01T00:00:00Z"}},
		{"_id":"9","_source":{"id":9,"user_id":3,"url":"b.com","title":"Go news","summary":"y","created_at":"2024-01-01T00:00:00Z"}}
	]}}`
	idx, calls := newIndex(t, http.StatusOK, resp)

	got, err := idx.Search(context.Background(), 2, "go", 500)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "Go tips", got[0].Title)

	require.Equal(t, "/bookmarks/_search", (*calls)[0].path)
	var q map[string]any
	require.NoError(t, json.Unmarshal((*calls)[0].body, &q))
	require.EqualValues(t, maxSize, q["size"], "oversized request is clamped")
	filter := q["query"].(map[string]any)["bool"].(map[string]any)["filter"].(map[string]any)
	require.EqualValues(t, 2, filter["term"].(map[string]any)["user_id"])
}

func TestSearchSizeBounds(t *testing.T) {
	cases := map[int]int{0: defaultSize, -3: defaultSize, 1: 1, 25: 25, maxSize: maxSize, 500: maxSize}
	for in, want := range cases {
		idx, calls := newIndex(t, http.StatusOK, `{"hits":{"hits":[]}}`)
		_, err := idx.Search(context.Background(), 1, "go", in)
		require.NoError(t, err)

		var q map[string]any
		require.NoError(t, json.Unmarshal((*calls)[0].body, &q))
		require.EqualValues(t, want, q["size"], "size %d", in)
	}
}

func TestSearchSurfacesErrors(t *testing.T) {
	idx, _ := newIndex(t, http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := idx.Search(context.Background(), 1, "go", 10)
	require.Error(t, err)
}

func newRoutedIndex(t *testing.T, routes map[string]int, body string) (*BookmarkIndex, *[]recorded) {
	t.Helper()
	calls := &[]recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*calls = append(*calls, recorded{method: r.Method, path: r.URL.Path, body: b})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(routes[r.Method])
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewBookmarkIndex(es, "bookmarks"), calls
}

func TestEnsureIndexExisting(t *testing.T) {
	idx, calls := newRoutedIndex(t, map[string]int{http.MethodHead: http.StatusOK}, "")

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *calls, 1)
	require.Equal(t, http.MethodHead, (*calls)[0].method)
}

func TestEnsureIndexCreates(t *testing.T) {
	idx, calls := newRoutedIndex(t, map[string]int{
		http.MethodHead: http.StatusNotFound,
		http.MethodPut:  http.StatusOK,
	}, `{"acknowledged":true}`)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *calls, 2)
	require.Equal(t, http.MethodPut, (*calls)[1].method)
	require.Equal(t, "/bookmarks", (*calls)[1].path)
	require.Contains(t, string((*calls)[1].body), `"user_id"`)
}

func TestEnsureIndexLostRace(t *testing.T) {
	idx, _ := newRoutedIndex(t, map[string]int{
		http.MethodHead: http.StatusNotFound,
		http.MethodPut:  http.StatusBadRequest,
	}, `{"error":{"type":"resource_already_exists_exception"}}`)

	require.NoError(t, idx.EnsureIndex(context.Background()))
}
