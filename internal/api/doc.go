// Package api exposes the mentorship request lifecycle over HTTP: request
// intake, matching runs, mentor selection, session scheduling, and
// feedback. Handlers validate payloads, call the mentorship service, and
// map its sentinel errors to status codes without leaking internal detail.
package api
