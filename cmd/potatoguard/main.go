package main

import (
	"flag"
	"fmt"
	"os"
	"potatoguard/internal/di"
	"potatoguard/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to console as well as files")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "potatoguard: %s\n", err)
		os.Exit(1)
	}
}
