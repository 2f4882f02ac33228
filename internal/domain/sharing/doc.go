// Package sharing defines share links, the QR codes rendered for them and
// anonymous access tracking.
package sharing
