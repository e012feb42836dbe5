package main

import (
	"os"

	"github.com/budgetbee/budgetbee/internal/app"
	log "github.com/sirupsen/logrus"
)

const defaultConfigFile = "./config/application.yaml"

func init() {
	if err := setupLogging(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")); err != nil {
		log.Fatal(err)
	}
}

// setupLogging applies LOG_LEVEL (info by default) and LOG_FORMAT ("json" or text).
func setupLogging(level string, format string) error {
	logrusLevel := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return err
		}
		logrusLevel = parsed
	}
	log.SetLevel(logrusLevel)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// configFile returns BUDGETBEE_CONFIG_FILE, or the bundled config/application.yaml.
func configFile() string {
	if path := os.Getenv("BUDGETBEE_CONFIG_FILE"); path != "" {
		return path
	}
	return defaultConfigFile
}

func main() {
	path := configFile()
	log.Infof("Starting BudgetBee with configuration %s", path)
	application, err := app.NewApplication(path)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
