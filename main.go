package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"budgetd/cmd"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	if level, err := logrus.ParseLevel(os.Getenv("BUDGETD_LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	cmd.Execute()
}
