package tools

import (
	"context"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// IDGeneratorInput is the argument object of the id-generator tool
type IDGeneratorInput struct {
	Format    string `json:"format"` // uuid, uuidv7 or nanoid
	Count     int    `json:"count"`
	Size      int    `json:"size"` // nanoid only
	Uppercase bool   `json:"uppercase"`
}

// IDGeneratorOutput lists the generated identifiers
type IDGeneratorOutput struct {
	IDs    []string `json:"ids"`
	Format string   `json:"format"`
}

// IDGeneratorLoader returns the loader registered for id-generator
func IDGeneratorLoader() Loader {
	return Static(Typed(GenerateIDs))
}

// GenerateIDs produces count random UUIDs (v4 or v7) or nanoids
func GenerateIDs(_ context.Context, in IDGeneratorInput) (IDGeneratorOutput, error) {
	count := in.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > 100 {
		return IDGeneratorOutput{}, apperrors.NewInvalidInput("count", "must be between 1 and 100")
	}

	format := strings.ToLower(in.Format)
	if format == "" {
		format = "uuid"
	}

	var next func() (string, error)
	switch format {
	case "uuid", "uuidv4":
		format = "uuid"
		next = func() (string, error) { return uuid.NewString(), nil }
	case "uuidv7":
		next = func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		}
	case "nanoid":
		size := in.Size
		if size == 0 {
			size = 21
		}
		if size < 2 || size > 64 {
			return IDGeneratorOutput{}, apperrors.NewInvalidInput("size", "must be between 2 and 64")
		}
		next = func() (string, error) { return gonanoid.New(size) }
	default:
		return IDGeneratorOutput{}, apperrors.NewInvalidInput("format", "must be uuid, uuidv7 or nanoid")
	}

	out := IDGeneratorOutput{IDs: make([]string, 0, count), Format: format}
	for range count {
		id, err := next()
		if err != nil {
			return IDGeneratorOutput{}, apperrors.NewToolExecutionFailed("id-generator", format, err)
		}
		if in.Uppercase {
			id = strings.ToUpper(id)
		}
		out.IDs = append(out.IDs, id)
	}
	return out, nil
}
