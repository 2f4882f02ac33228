// Package tokens issues signed JWTs and tracks revoked and consumed token ids.
package tokens
