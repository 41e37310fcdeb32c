package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Endpoints   EndpointsConfig
	HTTP        HTTPConfig
	Log         LogConfig
	Agenda      AgendaConfig
	Credentials CredentialsConfig
	Metrics     MetricsConfig
}

// EndpointsConfig holds the five fixed base URLs of the legacy backend.
// Operations are partitioned by subsystem, not by REST path; every call is a
// form-encoded POST to one of these controllers.
type EndpointsConfig struct {
	Main           string `validate:"required,url"`
	WorkClass      string `validate:"required,url"`
	Notices        string `validate:"required,url"`
	Nursing        string `validate:"required,url"`
	Communications string `validate:"required,url"`
}

type HTTPConfig struct {
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// AgendaConfig tunes the agenda day-index behaviour.
// LegacyTodayOffset reproduces the original home screen's shifted "today"
// lookup (yesterday's bucket plus the day-3 works bucket). Kept only for
// parity testing against the legacy app; defaults to exact-today.
type AgendaConfig struct {
	LegacyTodayOffset bool
}

// CredentialsConfig locates the encrypted credential store used by the
// biometric login convenience flow.
type CredentialsConfig struct {
	Path   string `validate:"required"`
	Secret string `validate:"required,min=8"`
}

type MetricsConfig struct {
	Namespace string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Running without a .env file is the normal case for a library;
		// only a malformed file is an error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Endpoints = EndpointsConfig{
		Main:           v.GetString("API_MAIN_URL"),
		WorkClass:      v.GetString("API_WORK_CLASS_URL"),
		Notices:        v.GetString("API_NOTICES_URL"),
		Nursing:        v.GetString("API_NURSING_URL"),
		Communications: v.GetString("API_COMMUNICATIONS_URL"),
	}

	cfg.HTTP = HTTPConfig{
		Timeout: parseDuration(v.GetString("HTTP_TIMEOUT"), 30*time.Second),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Agenda = AgendaConfig{
		LegacyTodayOffset: v.GetBool("AGENDA_LEGACY_TODAY_OFFSET"),
	}

	cfg.Credentials = CredentialsConfig{
		Path:   v.GetString("CREDENTIALS_PATH"),
		Secret: v.GetString("CREDENTIALS_SECRET"),
	}

	cfg.Metrics = MetricsConfig{
		Namespace: v.GetString("METRICS_NAMESPACE"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg.Endpoints); err != nil {
		return err
	}
	return v.Struct(cfg.Credentials)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_MAIN_URL", "https://www.comunidadvirtualcaa.co/controller/cont.php")
	v.SetDefault("API_WORK_CLASS_URL", "https://www.comunidadvirtualcaa.co/Work_classV1/controller/cont.php")
	v.SetDefault("API_NOTICES_URL", "https://www.comunidadvirtualcaa.co/Notices/controller/cont.php")
	v.SetDefault("API_NURSING_URL", "https://www.comunidadvirtualcaa.co/enfermeriaNewStudentV2/controller/cont.php")
	v.SetDefault("API_COMMUNICATIONS_URL", "https://www.comunidadvirtualcaa.co/Comunicaciones/controller/cont.php")

	v.SetDefault("HTTP_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("AGENDA_LEGACY_TODAY_OFFSET", false)

	v.SetDefault("CREDENTIALS_PATH", ".caa_credentials")
	v.SetDefault("CREDENTIALS_SECRET", "dev_secret_change_me")

	v.SetDefault("METRICS_NAMESPACE", "caa")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
