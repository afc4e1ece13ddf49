package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "payshot/core/cmd"
	"payshot/internal/app"
)

func main() {
	// Missing .env is fine; hosted deployments inject real env vars.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "",

		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		LoadEnvConfig: func() (corecmd.ConfigCarrier, error) {
			return app.LoadEnvConfig()
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, _ := cfg.(*app.Config)
			return app.Bootstrap(appCfg)
		},
	})
	if err != nil {
		log.Fatalf("payshot: %v", err)
	}
}
