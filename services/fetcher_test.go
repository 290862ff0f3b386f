package services_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fake-news-detector/services"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Rates</title><script>var tracking = 1;</script></head>
<body>
<nav><a href="/">Home</a> <a href="/world">World</a></nav>
<div class="cookie-banner">We use cookies</div>
<article>
  <h1>Fed holds rates steady</h1>
  <p>The Federal Reserve announced today that it would maintain interest rates.</p>
  <div class="advertisement">Buy now</div>
  <p>Chairman Jerome Powell stated that the decision reflects economic conditions.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestExtractText_PrefersArticle(t *testing.T) {
	got := services.ExtractText(articlePage)
	want := "Fed holds rates steady\nThe Federal Reserve announced today that it would maintain interest rates.\nChairman Jerome Powell stated that the decision reflects economic conditions."
	if got != want {
		t.Errorf("ExtractText:\n got: %q\nwant: %q", got, want)
	}
}

func TestExtractText_SkipsJunkWithoutArticle(t *testing.T) {
	page := `<html><body><script>alert(1)</script><div id="popup">Subscribe!</div><p>Plain paragraph.</p></body></html>`
	if got := services.ExtractText(page); got != "Plain paragraph." {
		t.Errorf("ExtractText = %q", got)
	}
}

func TestFetchURL(t *testing.T) {
	long := "<article><p>" + strings.Repeat("Officials said the report was published in March. ", 10) + "</p></article>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/long":
			io.WriteString(w, long)
		case "/short":
			io.WriteString(w, "<p>Too short.</p>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := services.NewContentFetcher(5 * time.Second)
	ctx := context.Background()

	text, err := f.FetchURL(ctx, srv.URL+"/long")
	if err != nil {
		t.Fatalf("FetchURL(long): %v", err)
	}
	if !strings.HasPrefix(text, "Officials said") {
		t.Errorf("text = %q", text)
	}

	if _, err := f.FetchURL(ctx, srv.URL+"/short"); !errors.Is(err, services.ErrNotEnoughText) {
		t.Errorf("FetchURL(short) err = %v, want ErrNotEnoughText", err)
	}
	if _, err := f.FetchURL(ctx, srv.URL+"/missing"); err == nil {
		t.Error("FetchURL(missing) should fail on 404")
	}
	if _, err := f.FetchURL(ctx, "ftp://example.com/file"); err == nil {
		t.Error("FetchURL should reject non-http schemes")
	}
}
