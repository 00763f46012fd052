package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/pkg/sb"
)

type fakeCreds struct {
	token string
}

func (f fakeCreds) Resolve() (string, bool) {
	return f.token, f.token != ""
}

func newTestClient(handler http.Handler) *http.Client {
	return &http.Client{Transport: roundTripper{handler: handler}}
}

type roundTripper struct {
	handler http.Handler
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	recorder := httptest.NewRecorder()
	rt.handler.ServeHTTP(recorder, req)
	return recorder.Result(), nil
}

func testClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	client, err := NewClient(zap.NewNop(), fakeCreds{token: token}, Config{BaseURL: "http://catalog.test"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	client.http = newTestClient(handler)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestSearchBuildsRequest(t *testing.T) {
	var gotURL string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		writeJSON(t, w, ResultPage{
			Count:   25,
			Results: []sb.SoundSummary{{ID: 1, Name: "thunder crack"}},
		})
	})

	client := testClient(t, handler, "key")
	filters := sb.SearchFilters{
		Duration: &sb.DurationRange{Min: 1, Max: 5},
		Sort:     sb.SortDownloadsDesc,
	}
	page, err := client.Search(context.Background(), "thunder", 2, filters)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Count != 25 || len(page.Results) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}

	req, err := http.NewRequest(http.MethodGet, gotURL, nil)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := req.URL.Query()
	if q.Get("query") != "thunder" {
		t.Fatalf("expected query param, got %q", q.Get("query"))
	}
	if q.Get("page") != "2" || q.Get("page_size") != "12" {
		t.Fatalf("unexpected paging params: %s", gotURL)
	}
	if q.Get("sort") != "downloads_desc" {
		t.Fatalf("unexpected sort %q", q.Get("sort"))
	}
	if q.Get("filter") != "duration:[1 TO 5]" {
		t.Fatalf("unexpected filter %q", q.Get("filter"))
	}
	if q.Get("token") != "key" {
		t.Fatalf("expected token in query string")
	}
}

func TestSearchNoDurationFilterOmitsParam(t *testing.T) {
	var gotURL string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		writeJSON(t, w, ResultPage{})
	})

	client := testClient(t, handler, "key")
	if _, err := client.Search(context.Background(), "rain", 1, sb.SearchFilters{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	req, _ := http.NewRequest(http.MethodGet, gotURL, nil)
	if _, present := req.URL.Query()["filter"]; present {
		t.Fatalf("expected no filter param in %s", gotURL)
	}
}

func TestSearchShortCircuitsWithoutCredential(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client := testClient(t, handler, "")
	_, err := client.Search(context.Background(), "thunder", 1, sb.SearchFilters{})
	if !IsKind(err, KindNoCredential) {
		t.Fatalf("expected no-credential error, got %v", err)
	}
	if called {
		t.Fatalf("expected no network call")
	}
}

func TestSearchAuthFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := testClient(t, handler, "bad-key")
	_, err := client.Search(context.Background(), "thunder", 1, sb.SearchFilters{})
	if !IsKind(err, KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestSearchRequestFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := testClient(t, handler, "key")
	_, err := client.Search(context.Background(), "thunder", 1, sb.SearchFilters{})
	if !IsKind(err, KindRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestSearchNetworkFailure(t *testing.T) {
	client, err := NewClient(zap.NewNop(), fakeCreds{token: "key"}, Config{BaseURL: "http://catalog.test"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	client.http = &http.Client{Transport: failingTripper{}}

	_, err = client.Search(context.Background(), "thunder", 1, sb.SearchFilters{})
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

type failingTripper struct{}

func (failingTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestFetchDetail(t *testing.T) {
	rating := 4.5
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sounds/42/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, sb.SoundDetail{
			SoundSummary: sb.SoundSummary{ID: 42, Name: "door slam", AvgRating: &rating},
			NumRatings:   12,
			SampleRate:   44100,
			Channels:     2,
			FileSize:     123456,
		})
	})

	client := testClient(t, handler, "key")
	detail, err := client.FetchDetail(context.Background(), 42)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.ID != 42 || detail.NumRatings != 12 || detail.Channels != 2 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.AvgRating == nil || *detail.AvgRating != 4.5 {
		t.Fatalf("expected rating present")
	}
}

func TestFetchDetailNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "{}")
	})

	client := testClient(t, handler, "key")
	_, err := client.FetchDetail(context.Background(), 999)
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestFetchDetailNoCredential(t *testing.T) {
	client := testClient(t, http.NotFoundHandler(), "")
	_, err := client.FetchDetail(context.Background(), 1)
	if !IsKind(err, KindNoCredential) {
		t.Fatalf("expected no-credential error, got %v", err)
	}
}
