package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/viper"

	sitebuilder "github.com/goliatone/go-sitebuilder"
)

func main() {
	configPath := flag.String("config", "", "path to a sitebuilder config file (yaml)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("sitebuilder: load config: %v", err)
	}

	module, err := sitebuilder.New(cfg)
	if err != nil {
		log.Fatalf("sitebuilder: %v", err)
	}
	defer module.Close()

	mux := http.NewServeMux()
	module.API().Routes(mux)

	fmt.Fprintf(os.Stderr, "sitebuilder listening on %s\n", cfg.Server.Address)
	if err := http.ListenAndServe(cfg.Server.Address, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("sitebuilder: serve: %v", err)
	}
}

// loadConfig layers a config file and SITEBUILDER_* environment variables on
// top of the defaults.
func loadConfig(path string) (sitebuilder.Config, error) {
	cfg := sitebuilder.DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("SITEBUILDER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sitebuilder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; defaults plus env cover it.
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if key := v.GetString("ai.api_key"); key != "" {
		cfg.AI.APIKey = key
	}
	return cfg, nil
}
