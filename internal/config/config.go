package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the bot needs. All values come from the
// environment; a .env file is honored when present (loaded in main).
type Config struct {
	// Telegram
	BotToken string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Google Sheets ledger
	SpreadsheetID      string
	SheetName          string
	ServiceAccountFile string
	ServiceAccountJSON string
}

func Load() *Config {
	return &Config{
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),

		SpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SheetName:          getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
	}
}

// Validate checks the configuration and returns every problem at once.
// Any missing required setting is a fatal startup error for the caller.
func (c *Config) Validate() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}
	if c.GeminiAPIKey == "" {
		errors = append(errors, "GEMINI_API_KEY is required")
	}
	if c.SpreadsheetID == "" {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required")
	}
	if c.SheetName == "" {
		errors = append(errors, "GOOGLE_SHEET_NAME cannot be empty")
	}

	hasFile := c.ServiceAccountFile != ""
	hasJSON := c.ServiceAccountJSON != ""
	if !hasFile && !hasJSON {
		errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided")
	}
	if hasFile {
		if _, err := os.Stat(c.ServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("service account file does not exist: %s", c.ServiceAccountFile))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
