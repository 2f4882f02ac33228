// Package qrcode renders share link URLs as PNG QR codes.
package qrcode
