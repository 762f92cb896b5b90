// Package main provides the entry point for the webfolio service.
// It runs a web server using the Fiber framework that serves a personal
// portfolio site: a public read surface for the profile and projects, a
// contact form, an admin API for content management, and a websocket
// subscription endpoint that pushes query results to clients when the
// underlying data changes. The application uses gorm for data persistence.
package main
