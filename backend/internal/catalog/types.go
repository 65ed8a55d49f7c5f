// Package catalog declares the static tool metadata: the category table and one
// descriptor per tool, each bound to the loader that builds its logic.
package catalog

import (
	"time"

	"aiotoolsuite/backend/internal/tools"
)

// Category is the closed set of category keys a tool may belong to
type Category string

const (
	CategoryText       Category = "text"
	CategorySEO        Category = "seo"
	CategoryConverters Category = "converters"
	CategorySecurity   Category = "security"
	CategoryDeveloper  Category = "developer"
	CategoryMedia      Category = "media"
	CategoryAI         Category = "ai"
)

// Plan tiers
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// CategoryMeta describes a category independently of the tools in it
type CategoryMeta struct {
	Key         Category `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Path        string   `json:"path"`
	Color       string   `json:"color"`
}

// ToolDescriptor is one tool's metadata plus its implementation binding.
// Loader and Timeout never leave the process.
type ToolDescriptor struct {
	ID               string
	Slug             string
	Category         Category
	Title            string
	ShortDescription string
	Description      string
	Icon             string
	Template         string
	Keywords         []string
	Tags             []string
	IsHidden         bool
	IsExperimental   bool
	Plan             string
	UIProps          map[string]any
	InputSchema      map[string]any

	Loader  tools.Loader
	Timeout time.Duration
}

// PublicToolView is the client-safe projection of a ToolDescriptor
type PublicToolView struct {
	ID               string         `json:"id"`
	Slug             string         `json:"slug"`
	Category         Category       `json:"category"`
	Title            string         `json:"title"`
	ShortDescription string         `json:"shortDescription"`
	Description      string         `json:"description,omitempty"`
	Icon             string         `json:"icon,omitempty"`
	Template         string         `json:"template,omitempty"`
	Keywords         []string       `json:"keywords,omitempty"`
	Tags             []string       `json:"tags"`
	IsHidden         bool           `json:"isHidden"`
	IsExperimental   bool           `json:"isExperimental"`
	Plan             string         `json:"plan,omitempty"`
	UIProps          map[string]any `json:"uiProps,omitempty"`
	InputSchema      map[string]any `json:"inputSchema,omitempty"`
}

// Public projects the descriptor. Slices and maps are deep-copied so callers
// cannot reach back into the registry's descriptors.
func (d ToolDescriptor) Public() PublicToolView {
	return PublicToolView{
		ID:               d.ID,
		Slug:             d.Slug,
		Category:         d.Category,
		Title:            d.Title,
		ShortDescription: d.ShortDescription,
		Description:      d.Description,
		Icon:             d.Icon,
		Template:         d.Template,
		Keywords:         append([]string(nil), d.Keywords...),
		Tags:             append([]string{}, d.Tags...),
		IsHidden:         d.IsHidden,
		IsExperimental:   d.IsExperimental,
		Plan:             d.Plan,
		UIProps:          cloneMap(d.UIProps),
		InputSchema:      cloneMap(d.InputSchema),
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes schema and UI documents are built from
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case props:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// ToolSummary is the minimal display shape used inside the category index
type ToolSummary struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Icon             string `json:"icon,omitempty"`
	Path             string `json:"path"`
}

// Summary projects a public view to its index entry
func (v PublicToolView) Summary() ToolSummary {
	return ToolSummary{
		ID:               v.ID,
		Slug:             v.Slug,
		Title:            v.Title,
		ShortDescription: v.ShortDescription,
		Icon:             v.Icon,
		Path:             "/" + v.Slug,
	}
}

// CategoryWithTools is a category and its visible tools
type CategoryWithTools struct {
	CategoryMeta
	Tools []ToolSummary `json:"tools"`
}
