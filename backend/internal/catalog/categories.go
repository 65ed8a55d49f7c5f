package catalog

var categories = []CategoryMeta{
	{
		Key:         CategoryText,
		Title:       "Text Tools",
		Description: "Transform, count and generate text",
		Icon:        "type",
		Path:        "/category/text",
		Color:       "#3b82f6",
	},
	{
		Key:         CategorySEO,
		Title:       "SEO Tools",
		Description: "Generate and audit page metadata",
		Icon:        "search",
		Path:        "/category/seo",
		Color:       "#10b981",
	},
	{
		Key:         CategoryConverters,
		Title:       "Converters",
		Description: "Convert between data formats, colors and currencies",
		Icon:        "repeat",
		Path:        "/category/converters",
		Color:       "#f59e0b",
	},
	{
		Key:         CategorySecurity,
		Title:       "Security Tools",
		Description: "Passwords, hashes, identifiers and encryption",
		Icon:        "shield",
		Path:        "/category/security",
		Color:       "#ef4444",
	},
	{
		Key:         CategoryDeveloper,
		Title:       "Developer Tools",
		Description: "Format, encode and inspect developer data",
		Icon:        "code",
		Path:        "/category/developer",
		Color:       "#8b5cf6",
	},
	{
		Key:         CategoryMedia,
		Title:       "Media Tools",
		Description: "Cut and clean up audio",
		Icon:        "music",
		Path:        "/category/media",
		Color:       "#ec4899",
	},
	{
		Key:         CategoryAI,
		Title:       "AI Tools",
		Description: "Language model assisted writing",
		Icon:        "sparkles",
		Path:        "/category/ai",
		Color:       "#14b8a6",
	},
}

// Categories returns the category table in display order
func Categories() []CategoryMeta {
	return append([]CategoryMeta(nil), categories...)
}

// KnownCategory reports whether key is in the category table
func KnownCategory(key Category) bool {
	for _, c := range categories {
		if c.Key == key {
			return true
		}
	}
	return false
}
