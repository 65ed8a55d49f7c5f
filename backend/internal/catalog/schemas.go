package catalog

// Small builders for the JSON Schema documents attached to descriptors.
// The documents are plain maps so they serialize unchanged into public views.

type props map[string]any

func object(p props, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": map[string]any(p),
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func strMax(description string, maxLength int) map[string]any {
	s := str(description)
	s["maxLength"] = maxLength
	return s
}

func enum(description string, values ...string) map[string]any {
	s := str(description)
	s["enum"] = values
	return s
}

func number(description string, minimum float64) map[string]any {
	return map[string]any{"type": "number", "description": description, "minimum": minimum}
}

func integer(description string, minimum, maximum int) map[string]any {
	return map[string]any{"type": "integer", "description": description, "minimum": minimum, "maximum": maximum}
}

func boolean(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func stringArray(description string) map[string]any {
	return map[string]any{"type": "array", "description": description, "items": map[string]any{"type": "string"}}
}
