// Package api handles incoming HTTP requests for the /Tarefa resource:
// parameter validation, translation of service results into status codes,
// and response formatting. Business rules live in the service package.
package api
