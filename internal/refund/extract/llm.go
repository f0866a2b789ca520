// Package extract maps user utterances to candidate slot values, either with
// a Gemini-backed extractor or a deterministic keyword fallback.
package extract

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

// Gemini is the model-backed Extractor. It makes exactly one chat completion
// call per Extract invocation; any failure, including malformed output, is
// returned to the caller, which is expected to fall back to Fallback.
type Gemini struct {
	cm        einomodel.BaseChatModel
	modelName string
}

// NewGemini wraps an Eino chat model as an Extractor.
func NewGemini(cm einomodel.BaseChatModel, modelName string) *Gemini {
	return &Gemini{cm: cm, modelName: modelName}
}

// Extract implements model.Extractor.
func (g *Gemini) Extract(ctx context.Context, utterance string, ec model.ExtractionContext) (map[tree.Slot]string, error) {
	sys, err := prompts.RenderExtractorSystem(ctx)
	if err != nil {
		return nil, fmt.Errorf("render extractor prompt: %w", err)
	}

	out, err := g.cm.Generate(ctx, []*schema.Message{
		schema.SystemMessage(sys),
		schema.UserMessage(buildContext(utterance, ec)),
	})
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("Extraction model call failed")
		return nil, fmt.Errorf("extraction model call: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("extraction model returned no message")
	}

	candidates, err := ParseCandidates(out.Content)
	if err != nil {
		logx.Warn().Err(err).Str("model", g.modelName).Msg("Malformed extraction response")
		return nil, err
	}
	return candidates, nil
}

// buildContext assembles the per-turn user message: recent history, the
// facts gathered so far, the question last asked and the message to analyse.
func buildContext(utterance string, ec model.ExtractionContext) string {
	var b strings.Builder

	b.WriteString("<conversation_context>\n")
	for _, t := range ec.RecentHistory {
		if t.Text == "" {
			continue
		}
		switch t.Role {
		case model.RoleUser:
			b.WriteString("UserMessage(" + t.Text + ")\n")
		case model.RoleAssistant:
			b.WriteString("AssistantMessage(" + t.Text + ")\n")
		}
	}
	b.WriteString("</conversation_context>\n")

	b.WriteString("<known_slots>\n")
	for slot, value := range ec.SlotsSoFar {
		b.WriteString(string(slot) + " = " + value + "\n")
	}
	b.WriteString("</known_slots>\n")

	if ec.LastAskedSlot != "" {
		b.WriteString("<last_question_asked_about>" + string(ec.LastAskedSlot) + "</last_question_asked_about>\n")
	}

	b.WriteString("<current_message_to_analyze>\n")
	b.WriteString("UserMessage(" + utterance + ")\n")
	b.WriteString("</current_message_to_analyze>")

	return b.String()
}

var _ model.Extractor = (*Gemini)(nil)
