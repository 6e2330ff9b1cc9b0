package openai

// Config contains OpenAI chat completion configuration.
// Fields map to OpenAI SDK options:
//   - APIKey: option.WithAPIKey()
//   - BaseURL: option.WithBaseURL()
//   - MaxRetries: option.WithMaxRetries()
type Config struct {
	APIKey      string  `env:"OPENAI_API_KEY"`
	BaseURL     string  `env:"OPENAI_BASE_URL"`
	Model       string  `env:"LLM_MODEL"          envDefault:"gpt-4o-mini"`
	Temperature float64 `env:"LLM_TEMPERATURE"    envDefault:"0"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS"     envDefault:"1024"`
	MaxRetries  int     `env:"OPENAI_MAX_RETRIES" envDefault:"2"`
}
