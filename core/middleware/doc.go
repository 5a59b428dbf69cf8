// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the sync endpoints.
//   - rayid: Generates a unique Request ID (RayID) for every incoming request,
//     storing it in the context locals and the response headers for tracing.
package middleware
