package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
	Premium PremiumConfig `mapstructure:"premium"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// Dir is the directory holding all momentum data files.
	Dir string `mapstructure:"dir" validate:"required"`
	// PlansFile is the goal-plan collection file inside Dir.
	PlansFile string `mapstructure:"plansFile" validate:"required"`
	// EvolutionFile persists the last seen character stage index.
	EvolutionFile string `mapstructure:"evolutionFile" validate:"required"`
	// ProgramFile persists the active creator-program enrollment.
	ProgramFile string `mapstructure:"programFile" validate:"required"`
	// BadgesFile persists which badge celebrations have been seen.
	BadgesFile string `mapstructure:"badgesFile" validate:"required"`
	// TemplatesDir optionally holds user prompt overrides.
	TemplatesDir string `mapstructure:"templatesDir"`
}

// LLMConfig holds configuration for the challenge generation capability.
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"omitempty,oneof=openai"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// MaxOutputTokens caps the completion size per generation call.
	MaxOutputTokens int     `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
	Temperature     float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for LLM calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables extra request/response logging within the LLM provider
	Debug bool `mapstructure:"debug"`
}

// PremiumConfig stands in for the subscription subsystem: a boolean
// entitlement oracle consulted by the command layer, never by the store.
type PremiumConfig struct {
	Entitled bool `mapstructure:"entitled"`
}

// DebugConfig holds development-only switches.
type DebugConfig struct {
	// DayOffset shifts the engine's notion of "today" by N days. Applied
	// uniformly through the clock abstraction so day-key gating stays
	// consistent. Zero in production use.
	DayOffset int `mapstructure:"dayOffset"`
}
