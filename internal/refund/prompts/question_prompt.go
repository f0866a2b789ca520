package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/refundflow/server/internal/refund/tree"
)

//go:embed template/question_prompt.txt
var questionSystemPrompt string

// RenderQuestionSystem renders the question-generation system prompt for the
// given missing slot and triggers prompt callbacks.
func RenderQuestionSystem(ctx context.Context, slot tree.Slot, domain []string) (string, error) {
	content := strings.NewReplacer(
		"{slot}", string(slot),
		"{valid_values}", strings.Join(domain, ", "),
	).Replace(questionSystemPrompt)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("question prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("question prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
