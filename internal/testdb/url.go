package testdb

import (
	"os"
	"strings"

	"github.com/trilhaapi/tarefa-api/internal/redact"
)

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "" when none is set.
func GetTestDatabaseURL() string {
	for _, envVar := range databaseURLEnvVars {
		if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
			return value
		}
	}
	return ""
}

// maskDatabaseURL hides credentials in dbURL so it can be logged.
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}
	return redact.String(dbURL)
}
