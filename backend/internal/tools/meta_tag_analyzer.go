package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	apperrors "aiotoolsuite/backend/pkg/errors"
	"aiotoolsuite/backend/pkg/logger"
)

const maxAnalyzedPageBytes = 2 << 20

// MetaTagAnalyzerInput is the argument object of the meta-tag-analyzer tool
type MetaTagAnalyzerInput struct {
	URL string `json:"url"`
}

// MetaTagAnalyzerOutput reports the SEO-relevant head tags of a page
type MetaTagAnalyzerOutput struct {
	URL         string            `json:"url"`
	StatusCode  int               `json:"statusCode"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Canonical   string            `json:"canonical"`
	Robots      string            `json:"robots"`
	Language    string            `json:"language"`
	OpenGraph   map[string]string `json:"openGraph"`
	Twitter     map[string]string `json:"twitter"`
	H1Count     int               `json:"h1Count"`
	ImagesNoAlt int               `json:"imagesWithoutAlt"`
	Issues      []string          `json:"issues"`
}

// MetaTagAnalyzer fetches a page and inspects its meta tags
type MetaTagAnalyzer struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMetaTagAnalyzer creates an analyzer using the shared HTTP client
func NewMetaTagAnalyzer(client *http.Client) *MetaTagAnalyzer {
	return &MetaTagAnalyzer{httpClient: client, logger: logger.Named("meta-tag-analyzer")}
}

// MetaTagAnalyzerLoader returns the loader registered for meta-tag-analyzer
func MetaTagAnalyzerLoader(deps Deps) Loader {
	return func(context.Context) (*Module, error) {
		if deps.HTTPClient == nil {
			return nil, fmt.Errorf("meta-tag-analyzer requires an HTTP client")
		}
		return &Module{Run: Typed(NewMetaTagAnalyzer(deps.HTTPClient).Run)}, nil
	}
}

// Run fetches in.URL and analyzes its head
func (a *MetaTagAnalyzer) Run(ctx context.Context, in MetaTagAnalyzerInput) (MetaTagAnalyzerOutput, error) {
	urlStr := strings.TrimSpace(in.URL)
	if urlStr == "" {
		return MetaTagAnalyzerOutput{}, apperrors.NewInvalidInput("url", "is required")
	}
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}
	if u, err := url.Parse(urlStr); err != nil || u.Host == "" {
		return MetaTagAnalyzerOutput{}, apperrors.NewInvalidInput("url", "is not a valid URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return MetaTagAnalyzerOutput{}, apperrors.NewInvalidInput("url", err.Error())
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AIOToolSuiteBot/1.0)")
	req.Header.Set("Accept", "text/html")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return MetaTagAnalyzerOutput{}, apperrors.NewUpstreamFailed(urlStr, 0, err)
	}
	defer resp.Body.Close()

	a.logger.Debug("Fetched page for analysis",
		zap.String("url", urlStr),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 400 {
		return MetaTagAnalyzerOutput{}, apperrors.NewUpstreamFailed(urlStr, resp.StatusCode, nil)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxAnalyzedPageBytes))
	if err != nil {
		return MetaTagAnalyzerOutput{}, apperrors.NewToolExecutionFailed("meta-tag-analyzer", "could not parse HTML", err)
	}

	out := AnalyzeDocument(doc)
	out.URL = urlStr
	out.StatusCode = resp.StatusCode
	return out, nil
}

// AnalyzeDocument extracts meta information from a parsed page and lists issues
func AnalyzeDocument(doc *goquery.Document) MetaTagAnalyzerOutput {
	out := MetaTagAnalyzerOutput{
		OpenGraph: map[string]string{},
		Twitter:   map[string]string{},
		Issues:    []string{},
	}

	out.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	out.Language, _ = doc.Find("html").Attr("lang")
	out.Canonical, _ = doc.Find(`link[rel="canonical"]`).Attr("href")

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		content = strings.TrimSpace(content)
		if name, ok := s.Attr("name"); ok {
			name = strings.ToLower(name)
			switch {
			case name == "description":
				out.Description = content
			case name == "robots":
				out.Robots = content
			case strings.HasPrefix(name, "twitter:"):
				out.Twitter[strings.TrimPrefix(name, "twitter:")] = content
			}
		}
		if prop, ok := s.Attr("property"); ok && strings.HasPrefix(strings.ToLower(prop), "og:") {
			out.OpenGraph[strings.TrimPrefix(strings.ToLower(prop), "og:")] = content
		}
	})

	out.H1Count = doc.Find("h1").Length()
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			out.ImagesNoAlt++
		}
	})

	switch n := utf8.RuneCountInString(out.Title); {
	case n == 0:
		out.Issues = append(out.Issues, "missing <title>")
	case n > maxTitleLength:
		out.Issues = append(out.Issues, fmt.Sprintf("title is %d characters (recommended <= %d)", n, maxTitleLength))
	}
	switch n := utf8.RuneCountInString(out.Description); {
	case n == 0:
		out.Issues = append(out.Issues, "missing meta description")
	case n > maxDescriptionLength:
		out.Issues = append(out.Issues, fmt.Sprintf("meta description is %d characters (recommended <= %d)", n, maxDescriptionLength))
	}
	if out.Canonical == "" {
		out.Issues = append(out.Issues, "missing canonical link")
	}
	if out.H1Count == 0 {
		out.Issues = append(out.Issues, "no <h1> heading")
	} else if out.H1Count > 1 {
		out.Issues = append(out.Issues, fmt.Sprintf("%d <h1> headings (recommended 1)", out.H1Count))
	}
	if len(out.OpenGraph) == 0 {
		out.Issues = append(out.Issues, "no Open Graph tags")
	}
	if out.ImagesNoAlt > 0 {
		out.Issues = append(out.Issues, fmt.Sprintf("%d images without alt text", out.ImagesNoAlt))
	}
	if strings.Contains(strings.ToLower(out.Robots), "noindex") {
		out.Issues = append(out.Issues, "page is marked noindex")
	}

	return out
}
