package phrase

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/prompts"
	"github.com/refundflow/server/internal/refund/tree"
)

// Gemini is the model-backed Phraser. One chat completion call per Render;
// any failure is returned so the caller can fall back to Question.
type Gemini struct {
	cm        einomodel.BaseChatModel
	modelName string
}

// NewGemini wraps an Eino chat model as a Phraser.
func NewGemini(cm einomodel.BaseChatModel, modelName string) *Gemini {
	return &Gemini{cm: cm, modelName: modelName}
}

// Render implements model.Phraser.
func (g *Gemini) Render(ctx context.Context, slot tree.Slot, domain []string) (string, error) {
	sys, err := prompts.RenderQuestionSystem(ctx, slot, domain)
	if err != nil {
		return "", fmt.Errorf("render question prompt: %w", err)
	}

	out, err := g.cm.Generate(ctx, []*schema.Message{
		schema.SystemMessage(sys),
		schema.UserMessage(fmt.Sprintf("Generate the question for %s.", slot)),
	})
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("Phrasing model call failed")
		return "", fmt.Errorf("phrasing model call: %w", err)
	}
	if out == nil {
		return "", fmt.Errorf("phrasing model returned no message")
	}

	question := strings.TrimSpace(out.Content)
	if strings.HasPrefix(question, "\"") && strings.HasSuffix(question, "\"") && len(question) > 1 {
		question = question[1 : len(question)-1]
	}
	if !enumeratesDomain(question, domain) {
		logx.Warn().
			Str("slot", string(slot)).
			Str("model", g.modelName).
			Msg("Phrased question does not enumerate the domain")
		return "", fmt.Errorf("question for %s does not enumerate valid values", slot)
	}
	return question, nil
}

// enumeratesDomain checks that every canonical value appears in the question.
func enumeratesDomain(question string, domain []string) bool {
	q := strings.ToLower(question)
	for _, v := range domain {
		if !strings.Contains(q, strings.ToLower(v)) {
			return false
		}
	}
	return true
}

var _ model.Phraser = (*Gemini)(nil)
