package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings holds everything resolved once at startup and passed into
// constructors. Nothing reads ambient globals after Load returns.
type Settings struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GroqAPIKey   string `yaml:"groq_api_key"`
	RedisAddr    string `yaml:"redis_addr"`
	UploadDir    string `yaml:"upload_dir"`
	IndexDir     string `yaml:"index_dir"`
	ListenAddr   string `yaml:"listen_addr"`
	AuthToken    string `yaml:"auth_token"`
}

// Load resolves settings from an optional config.yaml, a .env file if present,
// and environment variables (env wins). The two API keys are mandatory.
func Load(configPath string) (Settings, error) {
	_ = godotenv.Load()

	s := Settings{
		RedisAddr:  RedisAddr,
		UploadDir:  UploadDir,
		IndexDir:   IndexDir,
		ListenAddr: ServerListenAddr,
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Settings{}, err
			}
		}
	}

	overrideFromEnv(&s.GeminiAPIKey, "GEMINI_API_KEY")
	overrideFromEnv(&s.GroqAPIKey, "GROQ_API_KEY")
	overrideFromEnv(&s.RedisAddr, "REDIS_ADDR")
	overrideFromEnv(&s.UploadDir, "UPLOAD_DIR")
	overrideFromEnv(&s.IndexDir, "INDEX_DIR")
	overrideFromEnv(&s.ListenAddr, "LISTEN_ADDR")
	overrideFromEnv(&s.AuthToken, "API_AUTH_TOKEN")

	if s.GeminiAPIKey == "" {
		return Settings{}, errors.New("GEMINI_API_KEY not set")
	}
	if s.GroqAPIKey == "" {
		return Settings{}, errors.New("GROQ_API_KEY not set")
	}
	return s, nil
}

// AuthEnabled reports whether bearer auth should be enforced. Dev setups that
// configure no token run open.
func (s Settings) AuthEnabled() bool {
	return s.AuthToken != ""
}

func overrideFromEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
