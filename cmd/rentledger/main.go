package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"rentledger/internal/commands"
	"rentledger/internal/config"
	"rentledger/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.AppName, cfg.LogLevel)

	rootCmd := commands.NewRootCmd(commands.NewEnv(cfg, logging.Logger))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
