package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration lets TOML files carry values like "10s" or "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type ServerConfig struct {
	Port string `toml:"port"`
	Mode string `toml:"mode"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

type Prompts struct {
	ToArabic   string `toml:"to_arabic"`
	FromArabic string `toml:"from_arabic"`
	Correct    string `toml:"correct"`
	Generate   string `toml:"generate"`
}

type ChatConfig struct {
	AdapterTimeout    Duration `toml:"adapter_timeout"`
	MaxAnswerLength   int      `toml:"max_answer_length"`
	MinGeneratedRunes int      `toml:"min_generated_runes"`
	LogAnswerLimit    int      `toml:"log_answer_limit"`
	ForceFallback     bool     `toml:"force_fallback"`
	HumanContact      string   `toml:"human_contact"`
	Translate         bool     `toml:"translate"`
	Correct           bool     `toml:"correct"`
	DetectLanguage    bool     `toml:"detect_language"`
	Prompts           Prompts  `toml:"prompts"`
}

type S3Config struct {
	Bucket       string `toml:"bucket"`
	Key          string `toml:"key"`
	Region       string `toml:"region"`
	AWSAccessKey string `toml:"aws_access_key"`
	AWSSecretKey string `toml:"aws_secret_key"`
}

type KnowledgeConfig struct {
	Path  string   `toml:"path"`
	Watch bool     `toml:"watch"`
	S3    S3Config `toml:"s3"`
}

type DatabaseConfig struct {
	Driver       string   `toml:"driver"`
	DSN          string   `toml:"dsn"`
	QueueSize    int      `toml:"queue_size"`
	WriteTimeout Duration `toml:"write_timeout"`
}

type NeedsConfig struct {
	SheetCSV      string   `toml:"sheet_csv"`
	JSONPath      string   `toml:"json_path"`
	CampaignsPath string   `toml:"campaigns_path"`
	Timeout       Duration `toml:"timeout"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// Ready reports whether enough is configured to attempt a send.
func (s SMTPConfig) Ready() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

type EligibilityConfig struct {
	IntervalDays int `toml:"interval_days"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
	LLM         LLMConfig         `toml:"llm"`
	Chat        ChatConfig        `toml:"chat"`
	Knowledge   KnowledgeConfig   `toml:"knowledge"`
	Database    DatabaseConfig    `toml:"database"`
	Needs       NeedsConfig       `toml:"needs"`
	SMTP        SMTPConfig        `toml:"smtp"`
	Eligibility EligibilityConfig `toml:"eligibility"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Mode: "release"},
		Log:    LogConfig{Level: "info", Format: "json"},
		Chat: ChatConfig{
			AdapterTimeout:    Duration{10 * time.Second},
			MaxAnswerLength:   250,
			MinGeneratedRunes: 10,
			LogAnswerLimit:    800,
			HumanContact:      "info@zomra.org",
			Translate:         true,
			Correct:           true,
			DetectLanguage:    true,
			Prompts: Prompts{
				ToArabic:   "Translate to clear standard Arabic. Return only the translation:\n\n%s",
				FromArabic: "Translate this Arabic text to %s. Return only the translation:\n\n%s",
				Correct:    "صحح الأخطاء الإملائية بالنص العربي وأعد النص فقط:\n\n%s",
				Generate:   "أجب باختصار وبدقة عن سؤال حول التبرع بالدم:\n\n%s",
			},
		},
		Knowledge: KnowledgeConfig{Path: "data/knowledge.json", Watch: true},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          "zomra.db",
			QueueSize:    256,
			WriteTimeout: Duration{3 * time.Second},
		},
		Needs: NeedsConfig{
			JSONPath:      "data/urgent_needs.json",
			CampaignsPath: "data/campaigns.json",
			Timeout:       Duration{6 * time.Second},
		},
		SMTP:        SMTPConfig{Port: 587},
		Eligibility: EligibilityConfig{IntervalDays: 90},
	}
}

// Load reads a TOML file on top of Default. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default. The returned
// bool is false when defaults were used.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Log.Level, "LOG_LEVEL")

	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL", "OPENAI_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY", "OPENAI_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	// An OpenAI key alone is enough to enable the historical default provider.
	if c.LLM.Provider == "" && getenv("OPENAI_API_KEY") != "" {
		c.LLM.Provider = "openai"
	}

	if v := getenv("FORCE_AI_FALLBACK"); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("FORCE_AI_FALLBACK: %w", err)
		}
		c.Chat.ForceFallback = b
	}

	set(&c.Knowledge.Path, "KNOWLEDGE_PATH")
	set(&c.Database.Driver, "DB_DRIVER")
	set(&c.Database.DSN, "DB_DSN")
	set(&c.Needs.SheetCSV, "URGENT_NEEDS_SHEET_CSV")
	set(&c.Needs.JSONPath, "URGENT_NEEDS_JSON")
	set(&c.Needs.CampaignsPath, "CAMPAIGNS_JSON")

	set(&c.SMTP.Host, "SMTP_HOST")
	set(&c.SMTP.User, "SMTP_USER")
	set(&c.SMTP.Password, "SMTP_PASS")
	set(&c.SMTP.From, "EMAIL_FROM")
	if v := strings.TrimSpace(getenv("SMTP_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMTP_PORT: %w", err)
		}
		c.SMTP.Port = port
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.User
	}

	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", v)
}
