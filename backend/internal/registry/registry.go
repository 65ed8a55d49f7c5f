// Package registry holds the validated set of tool descriptors and answers
// slug and category queries over it. A Registry is immutable once built.
package registry

import (
	"aiotoolsuite/backend/internal/catalog"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

// Registry is the read-only tool catalog
type Registry struct {
	categories  []catalog.CategoryMeta
	descriptors []catalog.ToolDescriptor
	bySlug      map[string]int
}

// New validates descriptors and builds a registry. Duplicate slugs or ids are
// rejected rather than shadowed.
func New(categories []catalog.CategoryMeta, descriptors []catalog.ToolDescriptor) (*Registry, error) {
	known := make(map[catalog.Category]bool, len(categories))
	for _, c := range categories {
		if c.Key == "" {
			return nil, apperrors.NewConfigValidationFailed("category", "empty category key")
		}
		if known[c.Key] {
			return nil, apperrors.NewConfigValidationFailed("category", "duplicate category "+string(c.Key))
		}
		known[c.Key] = true
	}

	r := &Registry{
		categories:  append([]catalog.CategoryMeta(nil), categories...),
		descriptors: append([]catalog.ToolDescriptor(nil), descriptors...),
		bySlug:      make(map[string]int, len(descriptors)),
	}
	ids := make(map[string]bool, len(descriptors))

	for i, d := range r.descriptors {
		switch {
		case d.Slug == "":
			return nil, apperrors.NewConfigValidationFailed("slug", "descriptor "+d.ID+" has an empty slug")
		case d.ID == "":
			return nil, apperrors.NewConfigValidationFailed("id", "tool "+d.Slug+" has an empty id")
		case !known[d.Category]:
			return nil, apperrors.NewConfigValidationFailed("category", "tool "+d.Slug+" has unknown category "+string(d.Category))
		case d.Loader == nil:
			return nil, apperrors.NewConfigValidationFailed("loader", "tool "+d.Slug+" has no loader")
		}
		if _, dup := r.bySlug[d.Slug]; dup {
			return nil, apperrors.NewDuplicateTool("slug", d.Slug)
		}
		if ids[d.ID] {
			return nil, apperrors.NewDuplicateTool("id", d.ID)
		}
		r.bySlug[d.Slug] = i
		ids[d.ID] = true
	}

	return r, nil
}

// Lookup finds a descriptor by slug
func (r *Registry) Lookup(slug string) (catalog.ToolDescriptor, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return catalog.ToolDescriptor{}, false
	}
	return r.descriptors[i], true
}

// Descriptors returns every descriptor in registration order
func (r *Registry) Descriptors() []catalog.ToolDescriptor {
	return append([]catalog.ToolDescriptor(nil), r.descriptors...)
}

// Categories returns the category table
func (r *Registry) Categories() []catalog.CategoryMeta {
	return append([]catalog.CategoryMeta(nil), r.categories...)
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// ListPublicTools projects every descriptor in registration order. Hidden tools
// are included; presentation decides what to show.
func (r *Registry) ListPublicTools() []catalog.PublicToolView {
	views := make([]catalog.PublicToolView, len(r.descriptors))
	for i, d := range r.descriptors {
		views[i] = d.Public()
	}
	return views
}

// BuildCategoryIndex lists every category once, in table order, with its
// non-hidden tools in registration order. Empty categories are kept.
func (r *Registry) BuildCategoryIndex() []catalog.CategoryWithTools {
	byCategory := make(map[catalog.Category][]catalog.ToolSummary, len(r.categories))
	for _, v := range r.ListPublicTools() {
		if v.IsHidden {
			continue
		}
		byCategory[v.Category] = append(byCategory[v.Category], v.Summary())
	}

	index := make([]catalog.CategoryWithTools, len(r.categories))
	for i, c := range r.categories {
		summaries := byCategory[c.Key]
		if summaries == nil {
			summaries = []catalog.ToolSummary{}
		}
		index[i] = catalog.CategoryWithTools{CategoryMeta: c, Tools: summaries}
	}
	return index
}
