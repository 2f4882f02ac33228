//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testPortfolio() *portfolios.Portfolio {
	now := time.Now().UTC()
	return &portfolios.Portfolio{
		ID:          "a87ff679-a2f3-471d-8181-a67b7542122c",
		OwnerID:     "8f14e45f-ceea-4e67-a2b1-6f1c2d3e4a5b",
		Slug:        "ada-lovelace",
		Title:       "Ada's work",
		Theme:       portfolios.ThemeClassic,
		DocumentIDs: []string{testDocumentID},
		Published:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPortfolioHandler_SaveMine(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	actor := mocks.SignInAs("student-token", profiles.RoleStudent)

	mocks.Portfolios.On("Save", mock.Anything, actor, mock.MatchedBy(func(in *portfolios.PortfolioInput) bool {
		return in.Slug == "ada-lovelace" && in.Published && len(in.DocumentIDs) == 1
	})).Return(testPortfolio(), nil)

	body := `{"slug":"ada-lovelace","title":"Ada's work","document_ids":["` + testDocumentID + `"],"published":true}`
	w := PerformRequest(r, http.MethodPut, BasePath+"/portfolios/me", strings.NewReader(body), "application/json", "student-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"classic"`)
}

func TestPortfolioHandler_SaveMine_SlugTaken(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("student-token", profiles.RoleStudent)

	mocks.Portfolios.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf(`slug "taken" is taken: %w`, apperr.ErrConflict))

	w := PerformRequest(r, http.MethodPut, BasePath+"/portfolios/me",
		strings.NewReader(`{"slug":"taken","title":"x"}`), "application/json", "student-token")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPortfolioHandler_GetMine_NoneYet(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("student-token", profiles.RoleStudent)

	mocks.Portfolios.On("GetMine", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("portfolio: %w", apperr.ErrNotFound))

	w := PerformRequest(r, http.MethodGet, BasePath+"/portfolios/me", nil, "", "student-token")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioHandler_GetPublic(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)

	verified := testDocument()
	verified.Visibility = documents.VisibilityPublic
	verified.Status = documents.StatusVerified
	mocks.Portfolios.On("GetPublic", mock.Anything, "ada-lovelace").Return(&portfolios.PublicPortfolio{
		Portfolio: testPortfolio(),
		Owner:     &profiles.PublicProfile{ID: "8f14e45f-ceea-4e67-a2b1-6f1c2d3e4a5b", FullName: "Ada Lovelace"},
		Documents: []*documents.Document{verified},
	}, nil)
	mocks.Portfolios.On("GetPublic", mock.Anything, "draft").Return(nil, fmt.Errorf("portfolio draft: %w", apperr.ErrNotFound))

	w := PerformRequest(r, http.MethodGet, BasePath+"/portfolios/public/ada-lovelace", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"verified"`)
	assert.Contains(t, w.Body.String(), `"full_name":"Ada Lovelace"`)
	assert.NotContains(t, w.Body.String(), "owner_id")

	w = PerformRequest(r, http.MethodGet, BasePath+"/portfolios/public/draft", nil, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
