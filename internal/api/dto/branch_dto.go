package dto

import (
	"strings"

	"github.com/spec-kit/dreamhome-service/internal/domain"
)

// CreateBranchRequest payload for POST /branch.
type CreateBranchRequest struct {
	BranchNo   string `json:"branch_no"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// ToDomain maps the request.
func (r CreateBranchRequest) ToDomain() *domain.Branch {
	return &domain.Branch{
		BranchNo: strings.TrimSpace(r.BranchNo),
		Street:   r.Street,
		City:     r.City,
		PostCode: r.PostalCode,
	}
}

// UpdateBranchRequest payload for PUT /branch. Empty fields keep the stored value.
type UpdateBranchRequest struct {
	BranchNo string `json:"branchNo"`
	Street   string `json:"street"`
	City     string `json:"city"`
	PostCode string `json:"postcode"`
}

// ToDomain maps the request.
func (r UpdateBranchRequest) ToDomain() domain.BranchUpdate {
	return domain.BranchUpdate{
		BranchNo: strings.TrimSpace(r.BranchNo),
		Street:   r.Street,
		City:     r.City,
		PostCode: r.PostCode,
	}
}

// BranchResponse is the wire shape of a branch.
type BranchResponse struct {
	BranchNo   string `json:"branch_no"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// NewBranchResponse maps a domain branch.
func NewBranchResponse(b domain.Branch) BranchResponse {
	return BranchResponse{BranchNo: b.BranchNo, Street: b.Street, City: b.City, PostalCode: b.PostCode}
}

// BranchLookupResponse answers GET /branch/:branchNo.
type BranchLookupResponse struct {
	Exists  bool            `json:"exists"`
	Branch  *BranchResponse `json:"branch,omitempty"`
	Message string          `json:"message,omitempty"`
}
