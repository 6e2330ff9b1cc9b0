package openai

// Config holds configuration for the OpenAI embedding generator.
type Config struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	// Dimensions overrides the model's native dimension when non-zero (text-embedding-3 only).
	Dimensions int `env:"EMBEDDING_DIMENSIONS" envDefault:"0"`
}
