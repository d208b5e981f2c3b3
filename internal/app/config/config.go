package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr        string `yaml:"http_addr"`
	DatabaseURL     string `yaml:"database_url"`
	InternalToken   string `yaml:"internal_token"`
	CORSAllowOrigin string `yaml:"cors_allow_origin"`
	DefaultCurrency string `yaml:"default_currency"`
}

// MustLoad builds the config from an optional YAML file overlaid with
// environment variables; env always wins. Missing required settings are
// fatal.
func MustLoad(path string) Config {
	cfg := Config{
		HTTPAddr:        ":8080",
		CORSAllowOrigin: "*",
		DefaultCurrency: "PKR",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read config %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("parse config %s: %v", path, err)
		}
	}

	cfg.HTTPAddr = env("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DatabaseURL = env("DATABASE_URL", cfg.DatabaseURL)
	cfg.InternalToken = env("INTERNAL_TOKEN", cfg.InternalToken)
	cfg.CORSAllowOrigin = env("CORS_ALLOW_ORIGIN", cfg.CORSAllowOrigin)
	cfg.DefaultCurrency = env("DEFAULT_CURRENCY", cfg.DefaultCurrency)

	if cfg.DatabaseURL == "" {
		log.Fatal("missing DATABASE_URL")
	}
	if cfg.InternalToken == "" {
		log.Fatal("missing INTERNAL_TOKEN")
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
