// Package config provides configuration helpers for go-converse commands.
package config

import (
	"fmt"
	"os"
)

// Default service configuration.
const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"
)

// Env returns the value of an environment variable,
// falling back to the provided default if not set.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvRequired returns the value of an environment variable.
// Exits with a usage hint if not set.
func EnvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "Error: %s environment variable is required\n", key)
		fmt.Fprintf(os.Stderr, "Usage: %s=... go run ./cmd/conversed\n", key)
		os.Exit(1)
	}
	return v
}

// Port returns the HTTP listen port from PORT or the default.
func Port() string {
	return Env("PORT", DefaultPort)
}

// LogLevel returns the log level from LOG_LEVEL or the default.
func LogLevel() string {
	return Env("LOG_LEVEL", DefaultLogLevel)
}

// OpenAIKey returns the OpenAI API key. Required.
func OpenAIKey() string {
	return EnvRequired("OPENAI_API_KEY")
}

// ElevenLabsKey returns the ElevenLabs API key. Required.
func ElevenLabsKey() string {
	return EnvRequired("ELEVENLABS_API_KEY")
}

// MongoURI returns the MongoDB connection string from MONGO_URI.
// Empty means recordings are kept in memory.
func MongoURI() string {
	return os.Getenv("MONGO_URI")
}
