package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	minArticleChars = 200
	maxArticleChars = 20000
	maxPageBytes    = 8 << 20
)

var ErrNotEnoughText = errors.New("page has too little readable text")

// ContentFetcher downloads a news page and reduces it to article text so it
// can be used as session input.
type ContentFetcher struct {
	client *http.Client
}

func NewContentFetcher(timeout time.Duration) *ContentFetcher {
	return &ContentFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *ContentFetcher) FetchURL(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("unsupported url %q", url)
	}
	log.Printf("[FETCHER] 🌐 loading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; fake-news-detector/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}

	text := ExtractText(string(body))
	log.Printf("[FETCHER] ✓ %d bytes → %d chars of text", len(body), len([]rune(text)))

	if len([]rune(text)) < minArticleChars {
		return "", fmt.Errorf("%w (%d chars)", ErrNotEnoughText, len([]rune(text)))
	}
	return text, nil
}

// Subtrees that never contain article text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"svg": true, "canvas": true, "audio": true, "video": true,
	"nav": true, "footer": true, "aside": true, "form": true,
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"div": true, "section": true, "article": true, "main": true,
	"blockquote": true, "li": true, "tr": true, "br": true, "figcaption": true,
}

var junkMarkers = []string{"advertisement", "ad-banner", "popup", "modal", "cookie-banner", "newsletter", "sponsored"}

var (
	spaceRe   = regexp.MustCompile(`[ \t]+`)
	newlineRe = regexp.MustCompile(`\n{3,}`)
)

// ExtractText returns the readable text of an HTML page, preferring the
// <article> or <main> element when one exists.
func ExtractText(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}

	root := findElement(doc, "article")
	if root == nil {
		root = findElement(doc, "main")
	}
	if root == nil {
		root = doc
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if skipTags[tag] || isJunkNode(n) {
				return
			}
			if blockTags[tag] {
				sb.WriteByte('\n')
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if blockTags[tag] {
				sb.WriteByte('\n')
			}
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteByte(' ')
			}
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(root)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	text := strings.TrimSpace(newlineRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))

	if runes := []rune(text); len(runes) > maxArticleChars {
		text = string(runes[:maxArticleChars])
	}
	return text
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func isJunkNode(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "class", "id":
			val := strings.ToLower(attr.Val)
			for _, m := range junkMarkers {
				if strings.Contains(val, m) {
					return true
				}
			}
		case "aria-hidden":
			if attr.Val == "true" {
				return true
			}
		}
	}
	return false
}
