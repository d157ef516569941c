package main

import (
	"github.com/joho/godotenv"

	"github.com/askcse/deptbot-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// A .env file is optional; environment variables win either way.
	godotenv.Load()
}
