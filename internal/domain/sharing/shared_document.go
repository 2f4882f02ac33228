package sharing

import (
	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// SharedDocument is what an anonymous visitor sees when following a share link
type SharedDocument struct {
	Document  *documents.Document
	Owner     *profiles.PublicProfile
	ShareLink *ShareLink
}
