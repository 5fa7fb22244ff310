package tmdb_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/tmdb"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func mockServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(baseURL string) *tmdb.Client {
	return tmdb.NewClient(tmdb.Options{
		APIKey:  "test_key",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Rate:    1000,
	})
}

func browseRequest(page int) model.RequestDescriptor {
	s := catalog.NewSearchState()
	s.Page = page
	return catalog.RequestBuilder{}.Build(s)
}

func searchRequest(q string) model.RequestDescriptor {
	s := catalog.NewSearchState()
	s.Mode = model.ModeSearch
	s.Query = q
	return catalog.RequestBuilder{}.Build(s)
}

// ─── Success paths ────────────────────────────────────────────────────────────

func TestFetch_DiscoverSendsParams(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			want := map[string]string{
				"api_key":       "test_key",
				"include_adult": "false",
				"include_video": "false",
				"language":      "en-US",
				"page":          "3",
				"sort_by":       "popularity.desc",
			}
			for k, v := range want {
				if q.Get(k) != v {
					t.Errorf("%s param: got %q, want %q", k, q.Get(k), v)
				}
			}
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept header: got %q", r.Header.Get("Accept"))
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"page":          3,
				"total_pages":   812,
				"total_results": 16233,
				"results": []map[string]interface{}{
					{"id": 550, "title": "Fight Club", "release_date": "1999-10-15", "vote_average": 8.4, "poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"},
					{"id": 551, "title": "", "release_date": "", "vote_average": nil},
				},
			})
		},
	})

	page, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(3))
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if page.TotalPages != 812 {
		t.Errorf("total_pages: expected 812, got %d", page.TotalPages)
	}
	if len(page.Results) != 2 {
		t.Fatalf("results: expected 2, got %d", len(page.Results))
	}
	m := page.Results[0]
	if m.ID != 550 || m.Title != "Fight Club" || m.ReleaseDate != "1999-10-15" {
		t.Errorf("first result parsed wrong: %+v", m)
	}
	if m.Rating == nil || *m.Rating != 8.4 {
		t.Errorf("rating: expected 8.4, got %v", m.Rating)
	}
	if page.Results[1].Rating != nil {
		t.Errorf("null vote_average should decode to nil, got %v", *page.Results[1].Rating)
	}
}

func TestFetch_SearchSendsQuery(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/search/movie": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("query") != "la haine" {
				t.Errorf("query param: got %q", q.Get("query"))
			}
			if q.Has("sort_by") {
				t.Errorf("search must not send sort_by")
			}
			w.Write([]byte(`{"page":1,"results":[]}`))
		},
	})

	page, err := newClient(srv.URL).Fetch(context.Background(), searchRequest("la haine"))
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if page.TotalPages != 0 {
		t.Errorf("absent total_pages should stay zero at the client, got %d", page.TotalPages)
	}
	if page.Results == nil {
		t.Errorf("results should be empty, not nil")
	}
}

func TestFetch_MissingResultsIsEmpty(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"page":1,"total_pages":1}`))
		},
	})
	page, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(1))
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if page.Results == nil || len(page.Results) != 0 {
		t.Errorf("expected empty results, got %v", page.Results)
	}
}

func TestFetch_InvalidTotalPagesKeepsResults(t *testing.T) {
	for _, raw := range []string{`"7"`, `3.5`, `true`, `null`, `0`, `-2`} {
		t.Run(raw, func(t *testing.T) {
			srv := mockServer(t, map[string]http.HandlerFunc{
				"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(`{"page":1,"total_pages":` + raw + `,"results":[{"id":7,"title":"Se7en","vote_average":8.3}]}`))
				},
			})
			page, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(1))
			if err != nil {
				t.Fatalf("Fetch: unexpected error: %v", err)
			}
			if page.TotalPages != 0 {
				t.Errorf("TotalPages = %d, want 0", page.TotalPages)
			}
			if len(page.Results) != 1 || page.Results[0].Title != "Se7en" {
				t.Errorf("results not kept: %+v", page.Results)
			}
		})
	}
}

func TestFetch_NullRatingIsAbsent(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":1,"vote_average":0},{"id":2,"vote_average":null},{"id":3,"vote_average":7.2}]}`))
		},
	})
	page, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(1))
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	sorted := catalog.SortResults(page.Results, model.SortRatingAsc)
	var ids []int64
	for _, m := range sorted {
		ids = append(ids, m.ID)
	}
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 1 || ids[2] != 3 {
		t.Errorf("rating.asc order = %v, want [2 1 3]", ids)
	}
	if sorted[0].Rating != nil {
		t.Errorf("null vote_average decoded as %v", *sorted[0].Rating)
	}
}

func TestFetch_BearerTokenReplacesAPIKey(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
				t.Errorf("Authorization header: got %q", got)
			}
			if r.URL.Query().Has("api_key") {
				t.Errorf("api_key should not be sent with a bearer token")
			}
			w.Write([]byte(`{"page":1,"total_pages":1,"results":[]}`))
		},
	})
	c := tmdb.NewClient(tmdb.Options{APIKey: "k", AccessToken: "tok123", BaseURL: srv.URL, Rate: 1000})
	if _, err := c.Fetch(context.Background(), browseRequest(1)); err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
}

// ─── Failure paths ────────────────────────────────────────────────────────────

func TestFetch_ServiceErrorCarriesStatus(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`))
		},
	})

	_, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(1))
	var se *tmdb.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.StatusCode != 401 || se.Code != 7 {
		t.Errorf("status: expected 401/7, got %d/%d", se.StatusCode, se.Code)
	}
	if !strings.HasPrefix(err.Error(), "HTTP 401: Invalid API key") {
		t.Errorf("message: got %q", err.Error())
	}
	if !tmdb.IsUnauthorized(err) {
		t.Errorf("IsUnauthorized should be true")
	}
}

func TestFetch_ServerErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("upstream exploded"))
		},
	})

	_, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(1))
	if err == nil || err.Error() != "HTTP 500" {
		t.Errorf("expected bare \"HTTP 500\", got %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly one attempt, got %d", n)
	}
}

func TestFetch_MalformedBodyIsTransportError(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"page":`))
		},
	})

	_, err := newClient(srv.URL).Fetch(context.Background(), browseRequest(1))
	var te *tmdb.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if te.Op != "decoding response" {
		t.Errorf("op: got %q", te.Op)
	}
}

func TestFetch_UnreachableIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url).Fetch(context.Background(), browseRequest(1))
	var te *tmdb.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(srv.URL).Fetch(ctx, browseRequest(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

// ─── Helpers under test ───────────────────────────────────────────────────────

func TestImageURL(t *testing.T) {
	if got := tmdb.ImageURL("", "/abc.jpg"); got != "https://image.tmdb.org/t/p/w342/abc.jpg" {
		t.Errorf("default base: got %q", got)
	}
	if got := tmdb.ImageURL("https://img.example/w92/", "abc.jpg"); got != "https://img.example/w92/abc.jpg" {
		t.Errorf("custom base: got %q", got)
	}
	if got := tmdb.ImageURL("", ""); got != "" {
		t.Errorf("no poster: expected empty, got %q", got)
	}
}

func TestDescribe(t *testing.T) {
	got := tmdb.Describe(searchRequest("up"))
	want := "search/movie?include_adult=false&language=en-US&page=1&query=up"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
