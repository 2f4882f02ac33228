// Package app implements the application services. Each service validates its
// input, enforces ownership and role rules, and coordinates repositories,
// object storage and notifications.
package app
