package main

import (
	"flag"
	"fmt"
	"os"

	"telegram-language-bot/internal/config"
	"telegram-language-bot/internal/infra/api"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	subject := flag.String("sub", "admin", "token subject, logged with every admin request")
	ttl := flag.Duration("ttl", 0, "token lifetime (default admin.token_ttl)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	lifetime := cfg.Admin.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	tok, err := api.NewAuthManager(cfg.Admin.JWTSecret, lifetime).Mint(*subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
