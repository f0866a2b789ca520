package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/refundflow/server/internal/refund/tree"
)

//go:embed template/extractor_prompt.txt
var extractorSystemPrompt string

// RenderExtractorSystem renders the extraction system prompt via the Eino
// prompt component. This triggers Prompt callbacks and returns the final
// system prompt string.
func RenderExtractorSystem(ctx context.Context) (string, error) {
	table, err := slotTable()
	if err != nil {
		return "", fmt.Errorf("render slot table: %w", err)
	}

	// Render known tokens only, to avoid interfering with the JSON braces in
	// the template.
	content := strings.NewReplacer(
		"{valid_slots}", table,
	).Replace(extractorSystemPrompt)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("extractor prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("extractor prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}

// slotTable renders the full slot registry as indented JSON for the prompt.
func slotTable() (string, error) {
	table := make(map[string][]string, len(tree.Slots()))
	for _, s := range tree.Slots() {
		table[string(s)] = tree.Domain(s)
	}
	b, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
