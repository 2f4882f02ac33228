package profiles

import "github.com/campuscred/campuscred/internal/pkg/validators"

// ProfileQuery filters the admin profile listing
type ProfileQuery struct {
	Role      string `validate:"omitempty,oneof=student faculty admin"`
	Email     string `validate:"omitempty,max=255"`
	Limit     int    `validate:"omitempty,gte=1,lte=100"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=created_at email full_name role"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewProfileQuery returns a query with the default page size
func NewProfileQuery() *ProfileQuery {
	return &ProfileQuery{Limit: 20}
}

// Validate for validating ProfileQuery struct
func (q *ProfileQuery) Validate() error {
	return validators.Struct(q)
}
