package main

import (
	"log"
	"os"

	"AShareSentinel/cmd/sentinel/commands"
)

func main() {
	log.SetFlags(log.LstdFlags)
	if err := commands.Execute(); err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}
}
