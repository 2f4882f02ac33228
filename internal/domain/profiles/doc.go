// Package profiles defines user profiles, roles and the caller identity used for authorization.
package profiles
