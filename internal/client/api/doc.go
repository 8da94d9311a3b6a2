// Package api is the dashboard's backend client.
//
// Client is the interface the services depend on; HTTPClient implements it
// against the JSON REST API under <server>/api/v1. The session lives in an
// HTTP-only cookie that HTTPClient keeps in an in-memory jar, so nothing is
// written to disk and every process start needs a fresh login or session
// restore.
//
// Non-2xx responses are returned as *APIError carrying the server's
// {message}; transport failures wrap ErrUnavailable.
package api
