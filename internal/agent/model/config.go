package model

// ================ Config ================
type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"720h"`
}

type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
}

type NarrationModelConfig struct {
	Model       string  `envconfig:"NARRATION_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"NARRATION_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"NARRATION_TEMPERATURE" default:"0.6"`
}

type GuidePromptConfig struct {
	CityName      string `envconfig:"PROMPT_CITY_NAME" default:"Mangaluru"`
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"Mangaluru Mitra"`
}

type WeatherConfig struct {
	APIKey         string `envconfig:"OPENWEATHER_API_KEY"`
	BaseURL        string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	TimeoutSeconds int    `envconfig:"OPENWEATHER_TIMEOUT_SECONDS" default:"10"`
}
