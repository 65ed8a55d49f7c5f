package catalog

import (
	"time"

	"aiotoolsuite/backend/internal/tools"
)

// Per-tool deadlines; descriptors without one use the configured default
const (
	networkTimeout = 15 * time.Second
	mediaTimeout   = 90 * time.Second
	aiTimeout      = 60 * time.Second
)

const maxTextLength = 100000

// All returns every descriptor, grouped by category in category table order
func All(deps tools.Deps) []ToolDescriptor {
	var all []ToolDescriptor
	all = append(all, textTools()...)
	all = append(all, seoTools(deps)...)
	all = append(all, converterTools(deps)...)
	all = append(all, securityTools()...)
	all = append(all, developerTools()...)
	all = append(all, mediaTools(deps)...)
	all = append(all, aiTools(deps)...)
	return all
}

func textTools() []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "text-001",
			Slug:             "case-converter",
			Category:         CategoryText,
			Title:            "Case Converter",
			ShortDescription: "Convert text between upper, lower, title, camel, snake and more",
			Description:      "Switch any text between eleven letter cases, including programming identifier styles.",
			Icon:             "case-sensitive",
			Template:         "text-transform",
			Keywords:         []string{"uppercase", "lowercase", "camelcase", "snake case"},
			Tags:             []string{"text", "case", "formatting"},
			Plan:             PlanFree,
			UIProps:          map[string]any{"options": []string{tools.CaseUpper, tools.CaseLower, tools.CaseTitle, tools.CaseSentence, tools.CaseCamel, tools.CasePascal, tools.CaseSnake, tools.CaseKebab, tools.CaseConstant, tools.CaseAlternating, tools.CaseInverse}},
			InputSchema: object(props{
				"text": strMax("Text to convert", maxTextLength),
				"caseType": enum("Target case", tools.CaseUpper, tools.CaseLower, tools.CaseTitle, tools.CaseSentence,
					tools.CaseCamel, tools.CasePascal, tools.CaseSnake, tools.CaseKebab, tools.CaseConstant,
					tools.CaseAlternating, tools.CaseInverse),
			}, "text", "caseType"),
			Loader: tools.CaseConverterLoader(),
		},
		{
			ID:               "text-002",
			Slug:             "word-counter",
			Category:         CategoryText,
			Title:            "Word Counter",
			ShortDescription: "Count words, characters, sentences and reading time",
			Icon:             "hash",
			Template:         "text-stats",
			Keywords:         []string{"character count", "reading time"},
			Tags:             []string{"text", "statistics"},
			Plan:             PlanFree,
			InputSchema:      object(props{"text": strMax("Text to analyze", maxTextLength)}, "text"),
			Loader:           tools.WordCounterLoader(),
		},
		{
			ID:               "text-003",
			Slug:             "slug-generator",
			Category:         CategoryText,
			Title:            "Slug Generator",
			ShortDescription: "Turn titles into clean URL slugs",
			Icon:             "link",
			Template:         "text-transform",
			Keywords:         []string{"permalink", "url slug"},
			Tags:             []string{"text", "url", "seo"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"text":      strMax("Text to slugify", 2000),
				"separator": enum("Word separator", "-", "_", "."),
				"maxLength": integer("Maximum slug length, 0 for no limit", 0, 500),
			}, "text"),
			Loader: tools.SlugGeneratorLoader(),
		},
		{
			ID:               "text-004",
			Slug:             "lorem-ipsum",
			Category:         CategoryText,
			Title:            "Lorem Ipsum Generator",
			ShortDescription: "Generate placeholder paragraphs, sentences or words",
			Icon:             "align-left",
			Template:         "generator",
			Keywords:         []string{"placeholder text", "dummy text"},
			Tags:             []string{"text", "generator"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"count":          integer("How many units to generate", 1, 100),
				"unit":           enum("Unit of text", "paragraphs", "sentences", "words"),
				"startWithLorem": boolean("Start with the classic opening"),
			}),
			Loader: tools.LoremIpsumLoader(),
		},
	}
}

func seoTools(deps tools.Deps) []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "seo-001",
			Slug:             "meta-tag-generator",
			Category:         CategorySEO,
			Title:            "Meta Tag Generator",
			ShortDescription: "Build SEO, Open Graph and Twitter card tags",
			Icon:             "tags",
			Template:         "form-output",
			Keywords:         []string{"open graph", "twitter card", "meta description"},
			Tags:             []string{"seo", "html"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"title":         strMax("Page title", 300),
				"description":   strMax("Page description", 1000),
				"keywords":      stringArray("Keywords"),
				"url":           str("Canonical URL"),
				"image":         str("Social preview image URL"),
				"author":        str("Author"),
				"robots":        str("Robots directive"),
				"siteName":      str("Site name"),
				"twitterHandle": str("Twitter handle"),
			}, "title"),
			Loader: tools.MetaTagGeneratorLoader(),
		},
		{
			ID:               "seo-002",
			Slug:             "meta-tag-analyzer",
			Category:         CategorySEO,
			Title:            "Meta Tag Analyzer",
			ShortDescription: "Audit the meta tags of any public page",
			Icon:             "scan-search",
			Template:         "url-report",
			Keywords:         []string{"seo audit", "meta checker"},
			Tags:             []string{"seo", "audit"},
			Plan:             PlanFree,
			InputSchema:      object(props{"url": strMax("Page URL", 2048)}, "url"),
			Loader:           tools.MetaTagAnalyzerLoader(deps),
			Timeout:          networkTimeout,
		},
	}
}

func converterTools(deps tools.Deps) []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "conv-001",
			Slug:             "json-to-csv",
			Category:         CategoryConverters,
			Title:            "JSON to CSV",
			ShortDescription: "Flatten a JSON array of objects into CSV",
			Icon:             "table",
			Template:         "code-transform",
			Keywords:         []string{"json csv", "spreadsheet"},
			Tags:             []string{"json", "csv", "data"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"data":          map[string]any{"description": "JSON array of objects, or a string holding one", "type": []string{"array", "string"}},
				"delimiter":     strMax("Column delimiter", 1),
				"includeHeader": boolean("Write a header row"),
			}, "data"),
			Loader: tools.JSONToCSVLoader(),
		},
		{
			ID:               "conv-002",
			Slug:             "currency-converter",
			Category:         CategoryConverters,
			Title:            "Currency Converter",
			ShortDescription: "Convert between currencies at current exchange rates",
			Icon:             "banknote",
			Template:         "form-output",
			Keywords:         []string{"exchange rate", "forex"},
			Tags:             []string{"currency", "finance"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"amount": number("Amount to convert", 0),
				"from":   map[string]any{"type": "string", "pattern": "^[A-Za-z]{3}$"},
				"to":     map[string]any{"type": "string", "pattern": "^[A-Za-z]{3}$"},
			}, "amount", "from", "to"),
			Loader:  tools.CurrencyConverterLoader(deps),
			Timeout: networkTimeout,
		},
		{
			ID:               "conv-003",
			Slug:             "base64-converter",
			Category:         CategoryConverters,
			Title:            "Base64 Encoder / Decoder",
			ShortDescription: "Encode text to Base64 or decode it back",
			Icon:             "binary",
			Template:         "text-transform",
			Tags:             []string{"base64", "encoding"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"text":    strMax("Input text", maxTextLength),
				"mode":    enum("Direction", "encode", "decode"),
				"urlSafe": boolean("Use the URL-safe alphabet"),
			}, "text"),
			Loader: tools.Base64Loader(),
		},
		{
			ID:               "conv-004",
			Slug:             "color-converter",
			Category:         CategoryConverters,
			Title:            "Color Converter",
			ShortDescription: "Convert HEX, RGB and HSL and build tint and shade palettes",
			Icon:             "palette",
			Template:         "color",
			Keywords:         []string{"hex to rgb", "hsl", "palette"},
			Tags:             []string{"color", "design"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"color":       strMax("Color as #rgb, #rrggbb or rgb(r, g, b)", 32),
				"paletteSize": integer("Tints and shades to generate", 1, 20),
			}, "color"),
			Loader: tools.ColorConverterLoader(),
		},
	}
}

func securityTools() []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "sec-001",
			Slug:             "password-generator",
			Category:         CategorySecurity,
			Title:            "Password Generator",
			ShortDescription: "Generate strong random passwords",
			Icon:             "key-round",
			Template:         "generator",
			Keywords:         []string{"random password", "strong password"},
			Tags:             []string{"security", "password"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"length":         integer("Password length", 4, 256),
				"count":          integer("Number of passwords", 1, 50),
				"lowercase":      boolean("Include lowercase letters"),
				"uppercase":      boolean("Include uppercase letters"),
				"numbers":        boolean("Include digits"),
				"symbols":        boolean("Include symbols"),
				"excludeSimilar": boolean("Skip look-alike characters"),
			}),
			Loader: tools.PasswordGeneratorLoader(),
		},
		{
			ID:               "sec-002",
			Slug:             "hash-generator",
			Category:         CategorySecurity,
			Title:            "Hash Generator",
			ShortDescription: "MD5, SHA and bcrypt hashes with verification",
			Icon:             "fingerprint",
			Template:         "text-transform",
			Keywords:         []string{"md5", "sha256", "bcrypt"},
			Tags:             []string{"security", "hash"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"text":      strMax("Text to hash", maxTextLength),
				"algorithm": enum("Algorithm; empty for all digests", "", "md5", "sha1", "sha256", "sha512", "bcrypt"),
				"cost":      integer("bcrypt cost", 4, 14),
				"compareTo": str("Hash to verify against"),
			}, "text"),
			Loader: tools.HashGeneratorLoader(),
		},
		{
			ID:               "sec-003",
			Slug:             "text-encryptor",
			Category:         CategorySecurity,
			Title:            "Text Encryptor",
			ShortDescription: "Encrypt and decrypt text with a passphrase",
			Icon:             "lock",
			Template:         "text-transform",
			Keywords:         []string{"aes", "encrypt text"},
			Tags:             []string{"security", "encryption"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"text":       strMax("Plaintext or envelope", maxTextLength),
				"passphrase": strMax("Passphrase", 1024),
				"mode":       enum("Direction", "encrypt", "decrypt"),
			}, "text", "passphrase"),
			Loader: tools.TextEncryptorLoader(),
		},
		{
			ID:               "sec-004",
			Slug:             "id-generator",
			Category:         CategorySecurity,
			Title:            "UUID / ID Generator",
			ShortDescription: "Generate UUID v4, UUID v7 or NanoID identifiers",
			Icon:             "fingerprint-pattern",
			Template:         "generator",
			Keywords:         []string{"uuid", "guid", "nanoid"},
			Tags:             []string{"identifier", "generator"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"format":    enum("Identifier format", "uuid", "uuidv4", "uuidv7", "nanoid"),
				"count":     integer("How many identifiers", 1, 100),
				"size":      integer("NanoID length", 2, 64),
				"uppercase": boolean("Upper-case the output"),
			}),
			Loader: tools.IDGeneratorLoader(),
		},
	}
}

func developerTools() []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "dev-001",
			Slug:             "json-formatter",
			Category:         CategoryDeveloper,
			Title:            "JSON Formatter",
			ShortDescription: "Pretty print, minify and validate JSON",
			Icon:             "braces",
			Template:         "code-transform",
			Keywords:         []string{"json beautifier", "json validator"},
			Tags:             []string{"json", "developer"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"json":   strMax("JSON document", maxTextLength),
				"mode":   enum("Operation", "pretty", "minify", "validate"),
				"indent": integer("Indent width", 1, 8),
			}, "json"),
			Loader: tools.JSONFormatterLoader(),
		},
		{
			ID:               "dev-002",
			Slug:             "url-encoder",
			Category:         CategoryDeveloper,
			Title:            "URL Encoder / Decoder",
			ShortDescription: "Percent-encode or decode URL components",
			Icon:             "link-2",
			Template:         "text-transform",
			Tags:             []string{"url", "encoding"},
			Plan:             PlanFree,
			InputSchema: object(props{
				"text":      strMax("Input text", maxTextLength),
				"mode":      enum("Direction", "encode", "decode"),
				"component": boolean("Query component escaping instead of path segment escaping"),
			}, "text"),
			Loader: tools.URLEncoderLoader(),
		},
		{
			ID:               "dev-999",
			Slug:             "echo",
			Category:         CategoryDeveloper,
			Title:            "Echo",
			ShortDescription: "Returns its arguments; used for diagnostics",
			Template:         "none",
			Tags:             []string{"internal"},
			IsHidden:         true,
			Loader:           tools.EchoLoader(),
		},
	}
}

func mediaTools(deps tools.Deps) []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "media-001",
			Slug:             "mp3-cutter",
			Category:         CategoryMedia,
			Title:            "MP3 Cutter",
			ShortDescription: "Trim audio clips to a start and end time",
			Icon:             "scissors",
			Template:         "audio-editor",
			Keywords:         []string{"audio trimmer", "ringtone maker"},
			Tags:             []string{"audio", "mp3"},
			Plan:             PlanFree,
			UIProps:          map[string]any{"accept": "audio/*", "clientSide": true},
			InputSchema: object(props{
				"audio":  str("Base64 audio or data: URL"),
				"start":  number("Start time in seconds", 0),
				"end":    number("End time in seconds", 0),
				"format": enum("Output format", "mp3", "wav", "ogg", "flac"),
			}, "audio", "end"),
			Loader:  tools.MP3CutterLoader(deps),
			Timeout: mediaTimeout,
		},
		{
			ID:               "media-002",
			Slug:             "noise-remover",
			Category:         CategoryMedia,
			Title:            "Noise Remover",
			ShortDescription: "Reduce background noise in recordings",
			Icon:             "audio-waveform",
			Template:         "audio-editor",
			Keywords:         []string{"denoise", "background noise"},
			Tags:             []string{"audio", "cleanup"},
			Plan:             PlanFree,
			UIProps:          map[string]any{"accept": "audio/*", "clientSide": true},
			InputSchema: object(props{
				"audio":    str("Base64 audio or data: URL"),
				"strength": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"format":   enum("Output format", "mp3", "wav", "ogg", "flac"),
			}, "audio"),
			Loader:  tools.NoiseRemoverLoader(deps),
			Timeout: mediaTimeout,
		},
	}
}

func aiTools(deps tools.Deps) []ToolDescriptor {
	return []ToolDescriptor{
		{
			ID:               "ai-001",
			Slug:             "ai-rewriter",
			Category:         CategoryAI,
			Title:            "AI Rewriter",
			ShortDescription: "Rewrite text in a different tone",
			Icon:             "wand-sparkles",
			Template:         "text-transform",
			Keywords:         []string{"paraphrase", "rewrite"},
			Tags:             []string{"ai", "writing"},
			IsExperimental:   true,
			Plan:             PlanPro,
			InputSchema: object(props{
				"text": strMax("Text to rewrite", 8000),
				"tone": enum("Tone", "professional", "casual", "formal", "friendly", "concise", "simple"),
			}, "text"),
			Loader:  tools.AIRewriterLoader(deps),
			Timeout: aiTimeout,
		},
	}
}
