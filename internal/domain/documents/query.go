package documents

import "github.com/campuscred/campuscred/internal/pkg/validators"

// DocumentQuery filters document listings. OwnerID is set by the service, never by the client.
type DocumentQuery struct {
	OwnerID    string `validate:"omitempty,uuid4"`
	Title      string `validate:"omitempty,max=255"`
	Category   string `validate:"omitempty,oneof=certificate transcript resume other"`
	Visibility string `validate:"omitempty,oneof=private public"`
	Status     string `validate:"omitempty,oneof=unverified pending verified rejected"`
	Limit      int    `validate:"omitempty,gte=1,lte=100"`
	Offset     int    `validate:"omitempty,gte=0"`
	SortBy     string `validate:"omitempty,oneof=created_at updated_at title size"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
}

// NewDocumentQuery returns a query with the default page size and newest first ordering
func NewDocumentQuery() *DocumentQuery {
	return &DocumentQuery{
		Limit:     20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// Validate for validating DocumentQuery struct
func (q *DocumentQuery) Validate() error {
	return validators.Struct(q)
}
