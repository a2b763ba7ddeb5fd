package handler

import (
	"github.com/userdesk/user-management/internal/core/domain"
)

// response is the uniform JSON envelope every endpoint answers with.
type response struct {
	Success    bool                    `json:"success"`
	Data       any                     `json:"data,omitempty"`
	Message    string                  `json:"message,omitempty"`
	Errors     []domain.FieldViolation `json:"errors,omitempty"`
	Pagination *paginationResponse     `json:"pagination,omitempty"`
}

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// --- Request types ---

type createUserRequest struct {
	Name    string  `json:"Name"    validate:"required,min=2,max=50,person_name"`
	Email   string  `json:"Email"   validate:"required,email,max=100"`
	Contact string  `json:"Contact" validate:"required,phone"`
	Avatar  *string `json:"avatar"  validate:"omitempty,max=500"`
}

// normalize trims and lower-cases in place so validation runs against the
// values that would actually be stored.
func (r *createUserRequest) normalize() {
	r.Name = domain.NormalizeText(r.Name)
	r.Email = domain.NormalizeEmail(r.Email)
	r.Contact = domain.NormalizeText(r.Contact)
}

// updateUserRequest carries a partial update: absent fields stay nil and
// are never written; present fields are validated with the create rules.
type updateUserRequest struct {
	Name    *string `json:"Name"    validate:"omitempty,min=2,max=50,person_name"`
	Email   *string `json:"Email"   validate:"omitempty,email,max=100"`
	Contact *string `json:"Contact" validate:"omitempty,phone"`
	Avatar  *string `json:"avatar"  validate:"omitempty,max=500"`
}

func (r *updateUserRequest) normalize() {
	if r.Name != nil {
		n := domain.NormalizeText(*r.Name)
		r.Name = &n
	}
	if r.Email != nil {
		e := domain.NormalizeEmail(*r.Email)
		r.Email = &e
	}
	if r.Contact != nil {
		c := domain.NormalizeText(*r.Contact)
		r.Contact = &c
	}
}

// listUsersQuery holds the query parameters of GET /api/users. Page and
// Limit are pointers so a supplied 0 fails range validation instead of
// passing as "not supplied"; the service fills in defaults for nil.
type listUsersQuery struct {
	Page      *int   `query:"page"      validate:"omitnil,min=1,max=1000"`
	Limit     *int   `query:"limit"     validate:"omitnil,min=1,max=100"`
	Search    string `query:"search"    validate:"omitempty,max=100"`
	SortBy    string `query:"sortBy"    validate:"omitempty,oneof=name email contact createdAt updatedAt"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

func (q *listUsersQuery) page() int {
	if q.Page == nil {
		return 0
	}
	return *q.Page
}

func (q *listUsersQuery) limit() int {
	if q.Limit == nil {
		return 0
	}
	return *q.Limit
}
