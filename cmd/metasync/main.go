// Package main is the entry point for the metasync server and CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/synclab/metasync/cmd/metasync/app"
	"github.com/synclab/metasync/internal/config"
	"github.com/synclab/metasync/internal/logger"
)

// getLogLevel reads METASYNC_LOG_LEVEL, falling back to LOG_LEVEL
func getLogLevel() string {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	levelStr := v.GetString("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	return levelStr
}

func main() {
	if err := logger.Initialize(getLogLevel()); err != nil {
		fmt.Fprintf(os.Stderr, "metasync: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
