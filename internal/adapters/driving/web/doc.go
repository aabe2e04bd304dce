// Package web serves the catalog assistant over HTTP: the HTML page at "/",
// the JSON "/ask" endpoint, and the separate sensor ingest router.
package web
