package sharing

import (
	"time"

	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// QRCodeSize is the edge length in pixels of rendered QR images
const QRCodeSize = 256

// QRCode is a rendered image of a share link URL
type QRCode struct {
	ID          string    `validate:"required,uuid4"`
	ShareLinkID string    `validate:"required,uuid4"`
	DocumentID  string    `validate:"required,uuid4"`
	OwnerID     string    `validate:"required,uuid4"`
	TargetURL   string    `validate:"required,url,max=2048"`
	StoragePath string    `validate:"required,max=1024"`
	ScanCount   int       `validate:"min=0"`
	CreatedAt   time.Time `validate:"required"`
}

// Validate for validating QRCode struct
func (q *QRCode) Validate() error {
	return validators.Struct(q)
}
