package dto

import (
	"strings"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
)

// HireStaffRequest payload for POST /staff.
type HireStaffRequest struct {
	StaffNo   string `json:"staffno"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Position  string `json:"position"`
	Sex       string `json:"sex"`
	DOB       string `json:"dob"`
	Salary    Amount `json:"salary"`
	BranchNo  string `json:"branchno"`
	Telephone string `json:"telephone"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
}

// UpdateStaffRequest payload for PUT /staff.
type UpdateStaffRequest struct {
	StaffNo   string  `json:"staffNo"`
	Position  *string `json:"position"`
	Salary    Amount  `json:"salary"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email"`
}

// ToDomain drops blank strings and zero salary so they leave the stored
// values untouched.
func (r UpdateStaffRequest) ToDomain() domain.StaffUpdate {
	update := domain.StaffUpdate{
		StaffNo:   strings.TrimSpace(r.StaffNo),
		Position:  nonBlank(r.Position),
		Telephone: nonBlank(r.Telephone),
		Email:     nonBlank(r.Email),
	}
	if r.Salary.IsSet() && r.Salary.Float() != 0 {
		update.Salary = r.Salary.Ptr()
	}
	return update
}

// StaffResponse is the list view of a staff row.
type StaffResponse struct {
	StaffID      string  `json:"staff_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Position     string  `json:"position"`
	Gender       string  `json:"gender"`
	DOB          string  `json:"dob"`
	Salary       float64 `json:"salary"`
	BranchID     string  `json:"branch_id"`
	TelephoneExt string  `json:"telephone_ext"`
	MobileNumber string  `json:"mobile_number"`
	Email        string  `json:"email"`
}

// NewStaffResponse maps a domain row.
func NewStaffResponse(s domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:      s.StaffNo,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Position:     s.Position,
		Gender:       s.Sex,
		DOB:          s.DOB.Format(domain.DateLayout),
		Salary:       s.Salary,
		BranchID:     s.BranchNo,
		TelephoneExt: s.Telephone,
		MobileNumber: s.Mobile,
		Email:        s.Email,
	}
}

// HiredStaff echoes the inserted row in request naming.
type HiredStaff struct {
	StaffNo   string  `json:"staffno"`
	FirstName string  `json:"fname"`
	LastName  string  `json:"lname"`
	Position  string  `json:"position"`
	Sex       string  `json:"sex"`
	DOB       string  `json:"dob"`
	Salary    float64 `json:"salary"`
	BranchNo  string  `json:"branchno"`
	Telephone string  `json:"telephone"`
	Mobile    string  `json:"mobile"`
	Email     string  `json:"email"`
}

// HireStaffResponse is returned with 201.
type HireStaffResponse struct {
	Message string     `json:"message"`
	Staff   HiredStaff `json:"staff"`
}

// NewHireStaffResponse maps the inserted row.
func NewHireStaffResponse(s *domain.Staff) HireStaffResponse {
	return HireStaffResponse{
		Message: "New staff hired successfully",
		Staff: HiredStaff{
			StaffNo:   s.StaffNo,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Position:  s.Position,
			Sex:       s.Sex,
			DOB:       s.DOB.Format(domain.DateLayout),
			Salary:    s.Salary,
			BranchNo:  s.BranchNo,
			Telephone: s.Telephone,
			Mobile:    s.Mobile,
			Email:     s.Email,
		},
	}
}

// StaffSummaryResponse is a cached projection of one staff member.
type StaffSummaryResponse struct {
	StaffNo string `json:"staffNo"`
	staffcache.Entry
}

// CacheRebuildResponse reports the cache size after a rebuild.
type CacheRebuildResponse struct {
	Entries int `json:"entries"`
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
