// Package mailer delivers password reset and magic link emails.
package mailer
