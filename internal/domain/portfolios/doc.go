// Package portfolios defines public portfolio pages built from a user's documents.
package portfolios
