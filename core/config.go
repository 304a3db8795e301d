package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all client settings. The only knob deployments are expected
// to set is APIBaseURL; everything else has a sane default.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (local; default), TEST, QA, PROD
	AppName  string
	Build    string

	// APIBaseURL is the origin (plus prefix) of the REST backend,
	// e.g. http://localhost:8000/api
	APIBaseURL  string
	HTTPTimeout time.Duration

	// SessionFile is where the authenticated session is persisted.
	SessionFile string

	// ChatMode is the default assistant mode: internal | external.
	ChatMode string

	RollbarToken string
}

// NewConfig loads configuration from defaults, an optional .env.<env> file
// and ELIMU_-prefixed environment variables, in increasing precedence.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Elimu")
	conf.SetDefault("build", "dev")
	conf.SetDefault("apiBaseUrl", "http://localhost:8000/api")
	conf.SetDefault("httpTimeout", 30*time.Second)
	conf.SetDefault("sessionFile", defaultSessionFile())
	conf.SetDefault("chatMode", "internal")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	conf.SetEnvPrefix("elimu")
	conf.AutomaticEnv()

	return &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		APIBaseURL:   strings.TrimSuffix(conf.GetString("apiBaseUrl"), "/"),
		HTTPTimeout:  conf.GetDuration("httpTimeout"),
		SessionFile:  conf.GetString("sessionFile"),
		ChatMode:     conf.GetString("chatMode"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "elimu", "session.json")
}
