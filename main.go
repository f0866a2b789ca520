package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/refundflow/server/internal/core"
	"github.com/refundflow/server/internal/refund/extract"
	"github.com/refundflow/server/internal/refund/llm"
	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/observers"
	"github.com/refundflow/server/internal/refund/phrase"
	"github.com/refundflow/server/internal/refund/profile"
	"github.com/refundflow/server/internal/refund/repo"
	"github.com/refundflow/server/internal/refund/session"
	logx "github.com/refundflow/server/pkg/logger"
	pkgredis "github.com/refundflow/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the refund bot, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Collaborator configs
	Extractor model.ExtractorModelConfig
	Phraser   model.PhraserModelConfig
	Session   model.SessionConfig
	Profile   model.ProfileConfig
}

func main() {
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(os.Getenv("ENVIRONMENT"))})
	callbacks.AppendGlobalHandlers(observers.NewAllCallbacks())
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
	}
	sessions := repo.NewRedisSessionRepository(rdb, ttl)

	cms, err := llm.NewChatModels(ctx, llm.ChatModelConfig{
		APIKey:    envCfg.APIKey,
		BaseURL:   envCfg.BaseURL,
		Extractor: &envCfg.Extractor,
		Phraser:   &envCfg.Phraser,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	facts := profile.Load(envCfg.Profile.Path)
	sess := session.New(session.Config{
		Profile:         facts,
		Extractor:       extract.NewGemini(cms.Extractor, cms.ExtractorModelName),
		Phraser:         phrase.NewGemini(cms.Phraser, cms.PhraserModelName),
		HistoryMaxTurns: envCfg.Session.History.MaxTurns,
	})

	printBanner()
	fmt.Println("Please describe your refund request, or type 'help' for more information.")
	fmt.Println("Type 'quit' to exit at any time.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit":
			fmt.Println("Goodbye! Thank you for using the refund bot.")
			return
		case "help":
			printHelp()
			continue
		case "status":
			printStatus(sess)
			continue
		case "reset":
			sess.Reset()
			fmt.Println("\nConversation reset. You can start a new refund request.")
			fmt.Println()
			continue
		case "export":
			exportToFile(sess)
			continue
		}

		reply := sess.ReceiveUtterance(ctx, input)

		// Best-effort persistence; the conversation continues regardless.
		if err := sessions.Save(ctx, sess.Export()); err != nil {
			logx.Warn().Err(err).Str("session_id", sess.ID()).Msg("Failed to persist session snapshot")
		}

		printReply(sess, reply)
	}
}

func printReply(sess *session.Session, reply session.Reply) {
	fmt.Println("\n" + strings.Repeat("=", 60))

	switch reply.Status {
	case model.StatusNeedInfo:
		fmt.Println("MORE INFORMATION NEEDED")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Bot: %s\n", reply.Question)
		printSlots(sess, "Information collected so far")

	case model.StatusDecided:
		fmt.Println("FINAL DECISION")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Decision: %s (%s)\n", reply.Outcome.ID, reply.Outcome.Kind)
		fmt.Printf("Reason: %s\n", reply.Outcome.Reason)
		fmt.Printf("Path: %s\n", joinPath(reply))
		printSlots(sess, "Information processed")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Println("You can start a new refund request or type 'quit' to exit.")
		sess.Reset()

	case model.StatusError:
		fmt.Println("ERROR OCCURRED")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Error: %s\n", reply.Diagnostic)
		fmt.Println("Please try rephrasing your request or type 'help' for assistance.")
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}

func joinPath(reply session.Reply) string {
	parts := make([]string, len(reply.Path))
	for i, n := range reply.Path {
		parts[i] = string(n)
	}
	return strings.Join(parts, " -> ")
}

func printSlots(sess *session.Session, title string) {
	values := sess.Slots()
	if len(values) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for slot, value := range values {
		fmt.Printf("   - %s: %s\n", slot, value)
	}
}

func printStatus(sess *session.Session) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("CONVERSATION STATUS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Customer ID: %s\n", sess.Profile().CustomerID)
	fmt.Printf("Session ID: %s\n", sess.ID())
	fmt.Printf("Conversation turns: %d\n", len(sess.History()))
	fmt.Printf("Current state: %s\n", sess.Status())
	values := sess.Slots()
	fmt.Println("Extracted information:")
	if len(values) == 0 {
		fmt.Println("   - No information extracted yet")
	}
	for slot, value := range values {
		fmt.Printf("   - %s: %s\n", slot, value)
	}
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}

// exportToFile writes the session snapshot to a timestamped JSON file. A
// failed export is reported and leaves the session untouched.
func exportToFile(sess *session.Session) {
	filename := fmt.Sprintf("conversation_%s.json", time.Now().Format("20060102_150405"))
	b, err := json.MarshalIndent(sess.Export(), "", "  ")
	if err == nil {
		err = os.WriteFile(filename, b, 0o644)
	}
	if err != nil {
		logx.Error().Err(err).Msg("Error exporting conversation")
		fmt.Println("\nError exporting conversation. Session state is unaffected.")
		fmt.Println()
		return
	}
	fmt.Printf("\nConversation exported to: %s\n\n", filename)
}

func printBanner() {
	fmt.Println(strings.Repeat("=", 68))
	fmt.Println("           REFUND ELIGIBILITY DECISION BOT")
	fmt.Println("           Conversational Refund Adjudication")
	fmt.Println(strings.Repeat("=", 68))
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  'status'  - Show conversation progress")
	fmt.Println("  'reset'   - Start new conversation")
	fmt.Println("  'export'  - Save conversation history")
	fmt.Println("  'help'    - Show detailed help")
	fmt.Println("  'quit'    - Exit the system")
	fmt.Println(strings.Repeat("-", 68))
}

func printHelp() {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("HELP - How to use the refund bot")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("\nDescribe your refund request:")
	fmt.Println("- Be specific about what you bought and why you want a refund")
	fmt.Println("- Include details like item type, condition, delivery status")
	fmt.Println("\nExamples:")
	fmt.Println("  - 'I want to return my broken laptop'")
	fmt.Println("  - 'Requesting refund for software that doesn't work'")
	fmt.Println("  - 'My package was lost in transit'")
	fmt.Println("\nThe bot will ask questions like:")
	fmt.Println("- What type of item is this? (Perishable/Digital/Physical)")
	fmt.Println("- Has the item been delivered?")
	fmt.Println("- Who was the seller? (In-house/Third-party)")
	fmt.Println("- How did you pay? (CreditCard/GiftCard/BNPL/Prepaid)")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}
