// Package notifications defines in-app notifications delivered to a user's inbox.
package notifications
