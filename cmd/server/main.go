package main

import (
	"offerwall-sdk/internal/app/server"
	"offerwall-sdk/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel, cfg.Server.LogFormat)
	server.Run(cfg)
}
