package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// FetchStrategy describes one physical way to reach the WordPress REST API.
// Strategies are data so that new fallback endpoints are config edits, not
// code edits.
type FetchStrategy struct {
	Name    string `mapstructure:"name" json:"name"`
	Kind    string `mapstructure:"kind" json:"kind"` // "direct" or "proxy"
	BaseURL string `mapstructure:"base_url" json:"base_url"`
}

// Strategy kinds.
const (
	StrategyDirect = "direct"
	StrategyProxy  = "proxy"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or a SQLite file path
	}
	WordPress struct {
		Strategies     []FetchStrategy `mapstructure:"strategies"`
		TimeoutSeconds int             `mapstructure:"timeout_seconds"`
		PerPage        int             `mapstructure:"per_page"`
		CacheVersion   string          `mapstructure:"cache_version"`
	} `mapstructure:"wordpress"`
	LLM struct {
		APIKeyEnv string `mapstructure:"api_key_env"` // name of the env var holding the key
		APIKey    string `mapstructure:"-"`
		BaseURL   string `mapstructure:"base_url"`
		Model     string `mapstructure:"model"`
	} `mapstructure:"llm"`
	AssistantInstructions string `mapstructure:"assistant_instructions"`
	AdminPassword         string `mapstructure:"admin_password"`
	GuestChatQuota        int    `mapstructure:"guest_chat_quota"`
	RefreshIntervalMin    int    `mapstructure:"refresh_interval_min"`
	ChatRate              struct {
		PerSecond float64 `mapstructure:"per_second"`
		Burst     int     `mapstructure:"burst"`
	} `mapstructure:"chat_rate"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// defaultInstructions is the assistant persona used when config.yaml does not
// override it. It steers pricing/scheduling questions to the WhatsApp channel.
const defaultInstructions = "Você é o assistente virtual de Paulo Donassolo. Seu tom deve ser profissional, elegante e prestativo (estilo Apple). Priorize informações sobre os 4 pilares: Professor Paulo, Consultoria Imobiliária, 4050oumais e Academia do Gás. Se o usuário perguntar sobre preços ou detalhes muito específicos de agenda, sugira clicar no botão de WhatsApp para falar diretamente com o Prof. Paulo."

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // for running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("wordpress.timeout_seconds", 10)
	viper.SetDefault("wordpress.per_page", 50)
	viper.SetDefault("wordpress.cache_version", "v12")
	viper.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	viper.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai")
	viper.SetDefault("llm.model", "gemini-2.0-flash")
	viper.SetDefault("assistant_instructions", defaultInstructions)
	viper.SetDefault("guest_chat_quota", 20)
	viper.SetDefault("refresh_interval_min", 30)
	viper.SetDefault("chat_rate.per_second", 1.0)
	viper.SetDefault("chat_rate.burst", 5)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if pwd := os.Getenv("ADMIN_PASSWORD"); pwd != "" {
		AppConfig.AdminPassword = pwd
	}
	if AppConfig.AdminPassword == "" {
		log.Println("WARN: [Config] Admin password not set (admin_password / ADMIN_PASSWORD). Admin login is disabled.")
	}

	// The YAML names the env var; the actual key only ever lives in the environment.
	if key := os.Getenv(AppConfig.LLM.APIKeyEnv); key != "" {
		AppConfig.LLM.APIKey = key
		log.Printf("INFO: [Config] Loaded assistant API key from environment variable '%s'.", AppConfig.LLM.APIKeyEnv)
	} else {
		log.Printf("WARN: [Config] Assistant API key env var '%s' is not set. The assistant will answer with its fallback message.", AppConfig.LLM.APIKeyEnv)
	}

	if len(AppConfig.WordPress.Strategies) == 0 {
		AppConfig.WordPress.Strategies = DefaultStrategies()
		log.Printf("INFO: [Config] No wordpress.strategies configured, using the %d built-in strategies.", len(AppConfig.WordPress.Strategies))
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}

// DefaultStrategies returns the built-in ordered strategy list: direct calls
// first (with and without the www host), then public CORS relays. Ordering
// encodes a preference for trust over convenience.
func DefaultStrategies() []FetchStrategy {
	return []FetchStrategy{
		{Name: "direct-www", Kind: StrategyDirect, BaseURL: "https://www.phdonassolo.com/wordpress/wp-json/wp/v2"},
		{Name: "direct", Kind: StrategyDirect, BaseURL: "https://phdonassolo.com/wordpress/wp-json/wp/v2"},
		{Name: "allorigins", Kind: StrategyProxy, BaseURL: "https://api.allorigins.win/get?url="},
		{Name: "corsproxy", Kind: StrategyProxy, BaseURL: "https://corsproxy.io/?url="},
	}
}
