package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"plate-service/internal/model"
)

const (
	CommandScan  = "scan"
	CommandServe = "serve"

	InputModeFile   = "file"
	InputModeCamera = "camera"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type CaptureConfig struct {
	Mode              string
	ImagePath         string
	CameraSnapshotURL string
	Timeout           time.Duration
}

type OCRConfig struct {
	Languages   []string
	PageSegMode int
}

type NotifyConfig struct {
	URL     string
	Timeout time.Duration
	On      []model.OutcomeStatus
}

type Config struct {
	Command      string
	Environment  string
	PlateLogPath string
	HTTP         HTTPConfig
	DB           DBConfig
	Auth         AuthConfig
	Capture      CaptureConfig
	OCR          OCRConfig
	Notify       NotifyConfig
}

// RegisterFlags adds the command line overrides understood by Load.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("mode", "", "input mode: file or camera")
	flags.String("image", "", "image path for file mode")
	flags.String("env", "", "environment name")
	flags.String("config", "", "path to an env-style config file")
}

// Load reads app.env, the environment and flags, in increasing priority.
// The first positional argument selects the command.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	command := CommandScan
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
		if path, _ := flags.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			_ = v.ReadInConfig()
		}
		if arg := flags.Arg(0); arg != "" {
			command = arg
		}
	} else {
		_ = v.ReadInConfig()
	}

	cfg := &Config{
		Command:      command,
		Environment:  v.GetString("APP_ENV"),
		PlateLogPath: v.GetString("PLATE_LOG_PATH"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Capture: CaptureConfig{
			Mode:              strings.ToLower(strings.TrimSpace(v.GetString("INPUT_MODE"))),
			ImagePath:         v.GetString("IMAGE_PATH"),
			CameraSnapshotURL: v.GetString("CAMERA_SNAPSHOT_URL"),
			Timeout:           v.GetDuration("CAPTURE_TIMEOUT"),
		},
		OCR: OCRConfig{
			Languages:   splitList(v.GetString("OCR_LANGUAGES")),
			PageSegMode: v.GetInt("OCR_PAGE_SEG_MODE"),
		},
		Notify: NotifyConfig{
			URL:     v.GetString("NOTIFY_URL"),
			Timeout: v.GetDuration("NOTIFY_TIMEOUT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if !v.IsSet("PLATE_LOG_PATH") {
		cfg.PlateLogPath = "plate_log.txt"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Capture.Mode == "" {
		cfg.Capture.Mode = InputModeFile
	}
	if cfg.Capture.ImagePath == "" {
		cfg.Capture.ImagePath = "wel.jpg"
	}
	if cfg.Capture.Timeout == 0 {
		cfg.Capture.Timeout = 10 * time.Second
	}
	if len(cfg.OCR.Languages) == 0 {
		cfg.OCR.Languages = []string{"eng"}
	}
	if cfg.OCR.PageSegMode == 0 {
		cfg.OCR.PageSegMode = 11
	}
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = 5 * time.Second
	}

	notifyOn := "NO_INPUT,VALID"
	if v.IsSet("NOTIFY_ON") {
		notifyOn = v.GetString("NOTIFY_ON")
	}
	statuses, err := parseStatuses(notifyOn)
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_ON: %w", err)
	}
	cfg.Notify.On = statuses

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"INPUT_MODE": "mode",
		"IMAGE_PATH": "image",
		"APP_ENV":    "env",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func parseStatuses(raw string) ([]model.OutcomeStatus, error) {
	var statuses []model.OutcomeStatus
	for _, item := range splitList(raw) {
		status, err := model.ParseOutcomeStatus(item)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func validate(cfg *Config) error {
	switch cfg.Command {
	case CommandScan, CommandServe:
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
	switch cfg.Capture.Mode {
	case InputModeFile:
	case InputModeCamera:
		if cfg.Capture.CameraSnapshotURL == "" {
			return fmt.Errorf("CAMERA_SNAPSHOT_URL is required in camera mode")
		}
	default:
		return fmt.Errorf("INPUT_MODE must be %q or %q, got %q", InputModeFile, InputModeCamera, cfg.Capture.Mode)
	}
	return nil
}
