package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"aiotoolsuite/backend/internal/adapter"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

const maxRewriteChars = 8000

var rewriteTones = map[string]string{
	"professional": "Rewrite the text in a clear, professional tone.",
	"casual":       "Rewrite the text in a relaxed, conversational tone.",
	"formal":       "Rewrite the text in a formal register suitable for official correspondence.",
	"friendly":     "Rewrite the text in a warm and friendly tone.",
	"concise":      "Rewrite the text as concisely as possible without losing meaning.",
	"simple":       "Rewrite the text in plain language a twelve-year-old could follow.",
}

// AIRewriterInput is the argument object of the ai-rewriter tool
type AIRewriterInput struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// AIRewriterOutput is the rewritten text
type AIRewriterOutput struct {
	Result string `json:"result"`
	Tone   string `json:"tone"`
}

// AIRewriter rewrites text through a language model
type AIRewriter struct {
	gen adapter.TextGenerator
}

// NewAIRewriter creates a rewriter backed by gen
func NewAIRewriter(gen adapter.TextGenerator) *AIRewriter {
	return &AIRewriter{gen: gen}
}

// AIRewriterLoader returns the loader registered for ai-rewriter. It fails when no
// model endpoint is configured.
func AIRewriterLoader(deps Deps) Loader {
	return func(context.Context) (*Module, error) {
		if deps.AI == nil {
			return nil, errors.New("ai-rewriter requires AI_API_KEY to be configured")
		}
		return &Module{Run: Typed(NewAIRewriter(deps.AI).Run)}, nil
	}
}

// Run rewrites in.Text in the requested tone
func (r *AIRewriter) Run(ctx context.Context, in AIRewriterInput) (AIRewriterOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return AIRewriterOutput{}, apperrors.NewInvalidInput("text", "is required")
	}
	if utf8.RuneCountInString(text) > maxRewriteChars {
		return AIRewriterOutput{}, apperrors.NewInvalidInput("text", fmt.Sprintf("must be at most %d characters", maxRewriteChars))
	}

	tone := strings.ToLower(in.Tone)
	if tone == "" {
		tone = "professional"
	}
	instruction, ok := rewriteTones[tone]
	if !ok {
		return AIRewriterOutput{}, apperrors.NewInvalidInput("tone", "must be professional, casual, formal, friendly, concise or simple")
	}

	system := instruction + " Keep the original language. Reply with the rewritten text only, without quotes or commentary."
	out, err := r.gen.Complete(ctx, system, text)
	if err != nil {
		return AIRewriterOutput{}, err
	}
	if out == "" {
		return AIRewriterOutput{}, apperrors.NewToolExecutionFailed("ai-rewriter", "model returned an empty rewrite", nil)
	}
	return AIRewriterOutput{Result: out, Tone: tone}, nil
}
