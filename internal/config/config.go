package config

import (
    "errors"
    "fmt"
    "io/fs"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/spf13/viper"

    "github.com/example/research-institute/internal/contact"
)

// ServerConfig defines the HTTP server configuration.
type ServerConfig struct {
    Port        int           `mapstructure:"port"`
    CORSOrigin  string        `mapstructure:"cors_origin"`
    SessionIdle time.Duration `mapstructure:"session_idle"`
}

// GeminiConfig defines the text-generation transport. The API key is not part
// of it: it is read from CredentialEnv on every call.
type GeminiConfig struct {
    Model     string `mapstructure:"model"`
    Transport string `mapstructure:"transport"`
    // BaseURL is the REST base (https://host/v1beta) for transport=http only.
    BaseURL string `mapstructure:"base_url"`
    // Endpoint is the SDK host endpoint for transport=sdk only.
    Endpoint string `mapstructure:"endpoint"`

    Timeout       time.Duration `mapstructure:"timeout"`
    CredentialEnv []string      `mapstructure:"credential_env"`
}

type ContactConfig struct {
    Phone        string `mapstructure:"phone"`
    Owner        string `mapstructure:"owner"`
    Organization string `mapstructure:"organization"`
}

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
    Level  string `mapstructure:"level"`
    Format string `mapstructure:"format"`
    Output string `mapstructure:"output"`
}

// Config is the top-level configuration struct.
type Config struct {
    Server  ServerConfig  `mapstructure:"server"`
    Gemini  GeminiConfig  `mapstructure:"gemini"`
    Contact ContactConfig `mapstructure:"contact"`
    Logging LoggingConfig `mapstructure:"logging"`
}

func (c ContactConfig) Channel() contact.Channel {
    return contact.Channel{Phone: c.Phone, Owner: c.Owner, Organization: c.Organization}
}

// Target returns the address setting that applies to the configured transport.
func (g GeminiConfig) Target() string {
    switch strings.ToLower(strings.TrimSpace(g.Transport)) {
    case "", "sdk":
        return g.Endpoint
    case "http":
        return g.BaseURL
    }
    return ""
}

func (c ServerConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

const EnvPrefix = "CONSULT"

func setDefaults(v *viper.Viper) {
    def := contact.Default()
    v.SetDefault("server.port", 8080)
    v.SetDefault("server.cors_origin", "*")
    v.SetDefault("server.session_idle", 30*time.Minute)
    v.SetDefault("gemini.model", "gemini-3-flash-preview")
    v.SetDefault("gemini.transport", "sdk")
    v.SetDefault("gemini.base_url", "")
    v.SetDefault("gemini.endpoint", "")
    v.SetDefault("gemini.timeout", 45*time.Second)
    v.SetDefault("gemini.credential_env", []string{"API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"})
    v.SetDefault("contact.phone", def.Phone)
    v.SetDefault("contact.owner", def.Owner)
    v.SetDefault("contact.organization", def.Organization)
    v.SetDefault("logging.level", "info")
    v.SetDefault("logging.format", "text")
    v.SetDefault("logging.output", "stdout")
}

// Load reads configuration from defaults, an optional YAML file at path and the
// environment (CONSULT_SERVER_PORT, CONSULT_GEMINI_MODEL, ...; PORT is also
// honoured). A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
    if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
        return nil, fmt.Errorf("load .env: %w", err)
    }

    v := viper.New()
    setDefaults(v)
    v.SetEnvPrefix(EnvPrefix)
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()
    if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil { return nil, err }

    if path == "" { path = os.Getenv(EnvPrefix + "_CONFIG") }
    if path != "" {
        v.SetConfigFile(path)
        if err := v.ReadInConfig(); err != nil { return nil, fmt.Errorf("read config %s: %w", path, err) }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil { return nil, fmt.Errorf("decode config: %w", err) }
    if err := cfg.Validate(); err != nil { return nil, err }
    return &cfg, nil
}

func (c *Config) Validate() error {
    if c.Server.Port <= 0 || c.Server.Port > 65535 { return fmt.Errorf("invalid server.port %d", c.Server.Port) }
    if strings.TrimSpace(c.Gemini.Model) == "" { return errors.New("gemini.model must be set") }
    if strings.Trim(c.Contact.Phone, "+0123456789") != "" || c.Contact.Phone == "" {
        return fmt.Errorf("contact.phone must be digits, got %q", c.Contact.Phone)
    }
    if len(c.Gemini.CredentialEnv) == 0 { return errors.New("gemini.credential_env must name at least one variable") }
    return nil
}
