package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFile(t *testing.T) {
	t.Run("should default to bundled configuration", func(t *testing.T) {
		t.Setenv("BUDGETBEE_CONFIG_FILE", "")

		assert.Equal(t, defaultConfigFile, configFile())
	})

	t.Run("should read path from environment", func(t *testing.T) {
		t.Setenv("BUDGETBEE_CONFIG_FILE", "/etc/budgetbee/application.yaml")

		assert.Equal(t, "/etc/budgetbee/application.yaml", configFile())
	})
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})

	t.Run("should apply level and json format", func(t *testing.T) {
		require.NoError(t, setupLogging("debug", "json"))

		assert.Equal(t, log.DebugLevel, log.GetLevel())
		assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
	})

	t.Run("should default to info and text", func(t *testing.T) {
		require.NoError(t, setupLogging("", ""))

		assert.Equal(t, log.InfoLevel, log.GetLevel())
		assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
	})

	t.Run("should reject unknown level", func(t *testing.T) {
		assert.Error(t, setupLogging("loud", ""))
	})
}
