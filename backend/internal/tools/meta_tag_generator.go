package tools

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// Recommended upper bounds used by search engines when truncating snippets
const (
	maxTitleLength       = 60
	maxDescriptionLength = 160
)

// MetaTagGeneratorInput is the argument object of the meta-tag-generator tool
type MetaTagGeneratorInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	URL           string   `json:"url"`
	Image         string   `json:"image"`
	Author        string   `json:"author"`
	Robots        string   `json:"robots"`
	SiteName      string   `json:"siteName"`
	TwitterHandle string   `json:"twitterHandle"`
}

// MetaTag is one rendered tag
type MetaTag struct {
	Attr    string `json:"attr"` // name, property or rel
	Key     string `json:"key"`
	Content string `json:"content"`
}

// MetaTagGeneratorOutput is the rendered HTML block plus advisory warnings
type MetaTagGeneratorOutput struct {
	HTML     string    `json:"html"`
	Tags     []MetaTag `json:"tags"`
	Warnings []string  `json:"warnings"`
}

// MetaTagGeneratorLoader returns the loader registered for meta-tag-generator
func MetaTagGeneratorLoader() Loader {
	return Static(Typed(GenerateMetaTags))
}

// GenerateMetaTags renders standard, Open Graph and Twitter card tags
func GenerateMetaTags(_ context.Context, in MetaTagGeneratorInput) (MetaTagGeneratorOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return MetaTagGeneratorOutput{}, apperrors.NewInvalidInput("title", "is required")
	}
	description := strings.TrimSpace(in.Description)

	if in.URL != "" {
		if u, err := url.Parse(in.URL); err != nil || u.Scheme == "" || u.Host == "" {
			return MetaTagGeneratorOutput{}, apperrors.NewInvalidInput("url", "must be an absolute URL")
		}
	}

	out := MetaTagGeneratorOutput{Warnings: []string{}}
	if n := utf8.RuneCountInString(title); n > maxTitleLength {
		out.Warnings = append(out.Warnings, fmt.Sprintf("title is %d characters; search engines usually show %d", n, maxTitleLength))
	}
	if description == "" {
		out.Warnings = append(out.Warnings, "description is empty")
	} else if n := utf8.RuneCountInString(description); n > maxDescriptionLength {
		out.Warnings = append(out.Warnings, fmt.Sprintf("description is %d characters; search engines usually show %d", n, maxDescriptionLength))
	}

	add := func(attr, key, content string) {
		if content != "" {
			out.Tags = append(out.Tags, MetaTag{Attr: attr, Key: key, Content: content})
		}
	}

	add("name", "description", description)
	if len(in.Keywords) > 0 {
		kw := make([]string, 0, len(in.Keywords))
		for _, k := range in.Keywords {
			if k = strings.TrimSpace(k); k != "" {
				kw = append(kw, k)
			}
		}
		add("name", "keywords", strings.Join(kw, ", "))
	}
	add("name", "author", in.Author)
	robots := in.Robots
	if robots == "" {
		robots = "index, follow"
	}
	add("name", "robots", robots)
	add("rel", "canonical", in.URL)

	add("property", "og:type", "website")
	add("property", "og:title", title)
	add("property", "og:description", description)
	add("property", "og:url", in.URL)
	add("property", "og:image", in.Image)
	add("property", "og:site_name", in.SiteName)

	card := "summary"
	if in.Image != "" {
		card = "summary_large_image"
	}
	add("name", "twitter:card", card)
	add("name", "twitter:title", title)
	add("name", "twitter:description", description)
	add("name", "twitter:image", in.Image)
	if handle := strings.TrimSpace(in.TwitterHandle); handle != "" {
		if !strings.HasPrefix(handle, "@") {
			handle = "@" + handle
		}
		add("name", "twitter:site", handle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	for _, tag := range out.Tags {
		if tag.Attr == "rel" {
			fmt.Fprintf(&b, "<link rel=\"%s\" href=\"%s\">\n", tag.Key, html.EscapeString(tag.Content))
			continue
		}
		fmt.Fprintf(&b, "<meta %s=\"%s\" content=\"%s\">\n", tag.Attr, tag.Key, html.EscapeString(tag.Content))
	}
	out.HTML = b.String()

	return out, nil
}
