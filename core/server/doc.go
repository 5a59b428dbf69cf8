// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package
// defines the listen port and the API key that protects every route
// except the Swagger UI.
package server
