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

type Config struct {
	AppName      string
	Build        string
	Env          string // DEV (local; default), TEST, QA, PROD
	Debug        bool
	TestMode     bool
	SecretKey    string
	RollbarToken string
	LogFile      string // optional rotating log file, stdout only when empty
	WorkDir      string

	Server struct {
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		DisableReqLogs     bool
	}

	Database struct {
		Latency       time.Duration // artificial delay on every repository call
		FacilityFlags string        // "random" or "recorded"
		RandomSeed    int64
	}

	Store struct {
		FacilityDebounce time.Duration
	}
}

// NewConfig loads config/.env.<env> (when it exists) then reads the environment on top of the defaults.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// defaults
	v.SetDefault("app_name", "EduDash")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("test_mode", false)
	v.SetDefault("secret_key", "k2t!o9#v4m$x0w+5s&e1qz7h(c)3b=ujn8y^d6@ap")
	v.SetDefault("rollbar_token", "")
	v.SetDefault("log_file", "")
	v.SetDefault("server.host", "0.0.0.0:8000")
	v.SetDefault("server.debug_host", "0.0.0.0:4000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.jwt_expiration_delta", 7*24*time.Hour)
	v.SetDefault("server.disable_req_logs", false)
	v.SetDefault("database.latency", time.Duration(0))
	v.SetDefault("database.facility_flags", "random")
	v.SetDefault("database.random_seed", int64(1))
	v.SetDefault("store.facility_debounce", 500*time.Millisecond)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("test_mode", true)
	}

	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("app_name"),
		Build:        v.GetString("build"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("test_mode"),
		SecretKey:    v.GetString("secret_key"),
		RollbarToken: v.GetString("rollbar_token"),
		LogFile:      v.GetString("log_file"),
		WorkDir:      wd,
	}
	conf.Server.Host = v.GetString("server.host")
	conf.Server.DebugHost = v.GetString("server.debug_host")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("server.jwt_expiration_delta")
	conf.Server.DisableReqLogs = v.GetBool("server.disable_req_logs")
	conf.Database.Latency = v.GetDuration("database.latency")
	conf.Database.FacilityFlags = v.GetString("database.facility_flags")
	conf.Database.RandomSeed = v.GetInt64("database.random_seed")
	conf.Store.FacilityDebounce = v.GetDuration("store.facility_debounce")
	return conf
}

// Getwd walks up from the working directory to the module root (the directory holding go.mod).
// go test runs inside the package directory, so a plain os.Getwd() is not enough.
// Falls back to the working directory when no go.mod is found (e.g. a deployed binary).
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
