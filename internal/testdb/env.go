package testdb

import "os"

// Environment variables checked, in order, for the test database URL.
const (
	EnvDatabaseURL       = "DATABASE_URL"
	EnvTarefaTestDBURL   = "TAREFA_TEST_DB_URL"
	EnvTarefaDatabaseURL = "TAREFA_DATABASE_URL"
)

var databaseURLEnvVars = []string{EnvDatabaseURL, EnvTarefaTestDBURL, EnvTarefaDatabaseURL}

// IsIntegrationTestEnvironment returns true if any of the database URL environment
// variables are set, indicating that integration tests can be run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest returns true if no database URL is configured.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}

// isCIEnvironment returns true if running in a CI environment.
func isCIEnvironment() bool {
	for _, envVar := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}
