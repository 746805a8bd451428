package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func TestSearchParsesResultsAndFetchesContent(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><script>ignored()</script></head><body><p>Contenuto della pagina di prova.</p></body></html>`)
	})
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "equazioni di secondo grado" {
			t.Errorf("unexpected query: %q", r.URL.Query().Get("q"))
		}
		redirect := "/l/?uddg=" + url.QueryEscape(srv.URL+"/page")
		fmt.Fprintf(w, `<html><body>
			<div class="result">
				<h2 class="result__title"><a href="%s">Equazioni di secondo grado</a></h2>
				<a class="result__snippet">La formula risolutiva spiegata semplice.</a>
			</div>
			<div class="result">
				<h2 class="result__title"><a href="%s/page">Altro risultato</a></h2>
				<a class="result__snippet">Secondo snippet.</a>
			</div>
		</body></html>`, redirect, srv.URL)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("SEARCH_BASE_URL", srv.URL+"/html/")
	svc := NewDuckDuckGo(testLogger(t))

	results, err := svc.Search(context.Background(), "equazioni di secondo grado", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first := results[0]
	if first.Title != "Equazioni di secondo grado" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.URL != srv.URL+"/page" {
		t.Fatalf("expected uddg redirect unwrapped, got %q", first.URL)
	}
	if first.Snippet != "La formula risolutiva spiegata semplice." {
		t.Fatalf("unexpected snippet: %q", first.Snippet)
	}
	if first.Content == "" || first.Content == "ignored()" {
		t.Fatalf("expected fetched visible text, got %q", first.Content)
	}
}

func TestSearchEmptyResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><p>Nessun risultato.</p></body></html>`)
	}))
	defer srv.Close()

	t.Setenv("SEARCH_BASE_URL", srv.URL+"/html/")
	svc := NewDuckDuckGo(testLogger(t))

	results, err := svc.Search(context.Background(), "qualcosa di introvabile", 5)
	if err != nil {
		t.Fatalf("no results must not be an error, got: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result list, got %d", len(results))
	}
}

func TestSearchFetchFailureKeepsResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	var srv *httptest.Server
	mux.HandleFunc("/html/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="result">
			<h2 class="result__title"><a href="%s/page">Titolo</a></h2>
			<a class="result__snippet">Snippet superstite.</a>
		</div></body></html>`, srv.URL)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("SEARCH_BASE_URL", srv.URL+"/html/")
	svc := NewDuckDuckGo(testLogger(t))

	results, err := svc.Search(context.Background(), "pagina rotta", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Content != "" {
		t.Fatalf("expected empty content after fetch failure, got %q", results[0].Content)
	}
	if results[0].Snippet != "Snippet superstite." {
		t.Fatal("snippet must survive a fetch failure")
	}
}

func TestUnwrapRedirect(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/l/?uddg=https%3A%2F%2Fexample.it%2Fpagina", "https://example.it/pagina"},
		{"https://example.it/diretto", "https://example.it/diretto"},
		{"//duckduckgo.com/relativo", "https://duckduckgo.com/relativo"},
	}
	for _, c := range cases {
		if got := unwrapRedirect(c.in); got != c.want {
			t.Fatalf("unwrapRedirect(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
