package v1

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// InfoResponse carries a human readable confirmation
type InfoResponse struct {
	Message string `json:"message"`
}

// Auth

type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest is used by the password-forgotten and magic-link requests
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}

func newSessionResponse(session *auth.Session) SessionResponse {
	return SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Profile:   newProfileResponse(session.Profile),
	}
}

// Profiles

type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	Institution string    `json:"institution"`
	Department  string    `json:"department"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProfileResponse(p *profiles.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Role:        p.Role,
		Institution: p.Institution,
		Department:  p.Department,
		Bio:         p.Bio,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PublicProfileResponse is the view of a profile shown to other users
type PublicProfileResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	Institution string `json:"institution"`
	Department  string `json:"department"`
	Bio         string `json:"bio"`
}

func newPublicProfileResponse(p *profiles.PublicProfile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		Role:        p.Role,
		Institution: p.Institution,
		Department:  p.Department,
		Bio:         p.Bio,
	}
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	Institution *string `json:"institution"`
	Department  *string `json:"department"`
	Bio         *string `json:"bio"`
}

func (r *UpdateProfileRequest) toDomain() *profiles.ProfileUpdate {
	return &profiles.ProfileUpdate{
		FullName:    r.FullName,
		Institution: r.Institution,
		Department:  r.Department,
		Bio:         r.Bio,
	}
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ProfileListQuery struct {
	Role      string `form:"role"`
	Email     string `form:"email"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

func (q *ProfileListQuery) toDomain() *profiles.ProfileQuery {
	query := profiles.NewProfileQuery()
	query.Role = q.Role
	query.Email = q.Email
	query.Offset = q.Offset
	query.SortBy = q.SortBy
	query.SortOrder = q.SortOrder
	if q.Limit > 0 {
		query.Limit = q.Limit
	}
	return query
}

// Documents

type DocumentResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Visibility  string     `json:"visibility"`
	Status      string     `json:"status"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	Checksum    string     `json:"checksum"`
	VerifiedBy  *string    `json:"verified_by,omitempty"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newDocumentResponse(d *documents.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Visibility:  d.Visibility,
		Status:      d.Status,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Size:        d.Size,
		Checksum:    d.Checksum,
		VerifiedBy:  d.VerifiedBy,
		VerifiedAt:  d.VerifiedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func newDocumentResponses(list []*documents.Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(list))
	for _, d := range list {
		responses = append(responses, newDocumentResponse(d))
	}
	return responses
}

type UpdateDocumentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Visibility  *string `json:"visibility"`
}

func (r *UpdateDocumentRequest) toDomain() *documents.DocumentUpdate {
	return &documents.DocumentUpdate{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Visibility:  r.Visibility,
	}
}

type DocumentListQuery struct {
	Title      string `form:"title"`
	Category   string `form:"category"`
	Visibility string `form:"visibility"`
	Status     string `form:"status"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
}

func (q *DocumentListQuery) toDomain() *documents.DocumentQuery {
	query := documents.NewDocumentQuery()
	query.Title = q.Title
	query.Category = q.Category
	query.Visibility = q.Visibility
	query.Status = q.Status
	query.Offset = q.Offset
	if q.Limit > 0 {
		query.Limit = q.Limit
	}
	if q.SortBy != "" {
		query.SortBy = q.SortBy
	}
	if q.SortOrder != "" {
		query.SortOrder = q.SortOrder
	}
	return query
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RejectionResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ReviewerID string    `json:"reviewer_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func newRejectionResponse(r *documents.Rejection) RejectionResponse {
	return RejectionResponse{
		ID:         r.ID,
		DocumentID: r.DocumentID,
		ReviewerID: r.ReviewerID,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}

// Notifications

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func newNotificationResponse(n *notifications.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Type    string `json:"type"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

func (r *CreateNotificationRequest) toDomain() *notifications.CreateRequest {
	notificationType := r.Type
	if notificationType == "" {
		notificationType = notifications.TypeAnnouncement
	}
	return &notifications.CreateRequest{
		UserID:  r.UserID,
		Type:    notificationType,
		Title:   r.Title,
		Message: r.Message,
		Link:    r.Link,
	}
}

type NotificationListQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit"`
	Offset     int  `form:"offset"`
}

func (q *NotificationListQuery) toDomain() *notifications.NotificationQuery {
	query := notifications.NewNotificationQuery()
	query.UnreadOnly = q.UnreadOnly
	query.Offset = q.Offset
	if q.Limit > 0 {
		query.Limit = q.Limit
	}
	return query
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// Sharing

type CreateShareLinkRequest struct {
	ExpiresInHours *int `json:"expires_in_hours"`
	MaxAccesses    *int `json:"max_accesses"`
}

type ShareLinkResponse struct {
	ID             string     `json:"id"`
	DocumentID     string     `json:"document_id"`
	Token          string     `json:"token"`
	URL            string     `json:"url"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	MaxAccesses    *int       `json:"max_accesses,omitempty"`
	AccessCount    int        `json:"access_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	Revoked        bool       `json:"revoked"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newShareLinkResponse(l *sharing.ShareLink, apiURL string) ShareLinkResponse {
	return ShareLinkResponse{
		ID:             l.ID,
		DocumentID:     l.DocumentID,
		Token:          l.Token,
		URL:            apiURL + "/share/" + l.Token,
		ExpiresAt:      l.ExpiresAt,
		MaxAccesses:    l.MaxAccesses,
		AccessCount:    l.AccessCount,
		LastAccessedAt: l.LastAccessedAt,
		Revoked:        l.Revoked,
		CreatedAt:      l.CreatedAt,
	}
}

// SharedDocumentResponse is what an anonymous holder of a share link sees
type SharedDocumentResponse struct {
	Document DocumentResponse      `json:"document"`
	Owner    PublicProfileResponse `json:"owner"`
}

type CreateQRCodeRequest struct {
	ShareLinkID *string `json:"share_link_id"`
}

type QRCodeResponse struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	ShareLinkID string    `json:"share_link_id"`
	TargetURL   string    `json:"target_url"`
	ScanCount   int       `json:"scan_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func newQRCodeResponse(q *sharing.QRCode) QRCodeResponse {
	return QRCodeResponse{
		ID:          q.ID,
		DocumentID:  q.DocumentID,
		ShareLinkID: q.ShareLinkID,
		TargetURL:   q.TargetURL,
		ScanCount:   q.ScanCount,
		CreatedAt:   q.CreatedAt,
	}
}

// Portfolios

type PortfolioRequest struct {
	Slug        string   `json:"slug" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Headline    string   `json:"headline"`
	Bio         string   `json:"bio"`
	Theme       string   `json:"theme"`
	DocumentIDs []string `json:"document_ids"`
	Published   bool     `json:"published"`
}

func (r *PortfolioRequest) toDomain() *portfolios.PortfolioInput {
	return &portfolios.PortfolioInput{
		Slug:        r.Slug,
		Title:       r.Title,
		Headline:    r.Headline,
		Bio:         r.Bio,
		Theme:       r.Theme,
		DocumentIDs: r.DocumentIDs,
		Published:   r.Published,
	}
}

type PortfolioResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Headline    string    `json:"headline"`
	Bio         string    `json:"bio"`
	Theme       string    `json:"theme"`
	DocumentIDs []string  `json:"document_ids"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newPortfolioResponse(p *portfolios.Portfolio) PortfolioResponse {
	ids := p.DocumentIDs
	if ids == nil {
		ids = []string{}
	}
	return PortfolioResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Headline:    p.Headline,
		Bio:         p.Bio,
		Theme:       p.Theme,
		DocumentIDs: ids,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PublicDocumentResponse is a portfolio entry; Status tells visitors whether it was verified
type PublicDocumentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	FileName    string    `json:"file_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type PublicPortfolioResponse struct {
	Slug      string                   `json:"slug"`
	Title     string                   `json:"title"`
	Headline  string                   `json:"headline"`
	Bio       string                   `json:"bio"`
	Theme     string                   `json:"theme"`
	Owner     PublicProfileResponse    `json:"owner"`
	Documents []PublicDocumentResponse `json:"documents"`
}

func newPublicPortfolioResponse(p *portfolios.PublicPortfolio) PublicPortfolioResponse {
	docs := make([]PublicDocumentResponse, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, PublicDocumentResponse{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			Status:      d.Status,
			FileName:    d.FileName,
			CreatedAt:   d.CreatedAt,
		})
	}
	return PublicPortfolioResponse{
		Slug:      p.Portfolio.Slug,
		Title:     p.Portfolio.Title,
		Headline:  p.Portfolio.Headline,
		Bio:       p.Portfolio.Bio,
		Theme:     p.Portfolio.Theme,
		Owner:     newPublicProfileResponse(p.Owner),
		Documents: docs,
	}
}
