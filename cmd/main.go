package main

import (
	"os"
)

// @title        Employee Directory API
// @version      1.0
// @description  HTTP service for a company employee directory
// @BasePath     /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
