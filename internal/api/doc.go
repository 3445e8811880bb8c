// Package api contains the HTTP handlers for the task manager service.
//
// Handlers translate between the HTTP surface and the service layer: they
// decode and validate request bodies, resolve the authenticated user placed
// in the request context by the auth middleware, call into services, and map
// service errors to status codes. No business rules live here.
package api
