// market 是校園二手市集的命令列客戶端
package main

import (
	"io"
	"os"

	"campus-market/internal/logging"
)

var (
	stdout   io.Writer = os.Stdout
	exitFunc           = os.Exit
)

func main() {
	level := os.Getenv("MARKET_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logging.New(level, "development", os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		exitFunc(1)
	}
}
