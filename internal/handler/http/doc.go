// Package http implements the HTTP transport layer of the accounts API.
//
// It exposes route wiring, request handlers, and middleware. Authentication,
// request tracing, access logging, metrics, CORS and compression are handled
// in this package before requests are delegated to the service layer. Every
// failure is answered with a JSON body of the form {"msg": ..., "error": ...}.
package http
