package model

// ================ Config ================
type SessionConfig struct {
	TTL     string `envconfig:"SESSION_TTL" default:"15m"`
	History struct {
		MaxTurns int `envconfig:"SESSION_HISTORY_MAX_TURNS" default:"6"`
	}
}

type ExtractorModelConfig struct {
	Model       string  `envconfig:"EXTRACTOR_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"EXTRACTOR_MAX_TOKENS" default:"300"`
	Temperature float32 `envconfig:"EXTRACTOR_TEMPERATURE" default:"0.1"`
}

type PhraserModelConfig struct {
	Model       string  `envconfig:"PHRASER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"PHRASER_MAX_TOKENS" default:"150"`
	Temperature float32 `envconfig:"PHRASER_TEMPERATURE" default:"0.3"`
}

type ProfileConfig struct {
	Path string `envconfig:"CUSTOMER_PROFILE_PATH" default:"data/customer_data.json"`
}
