package domain

import "time"

// DateLayout is the wire and storage format for dates of birth.
const DateLayout = "2006-01-02"

// Staff is a DreamHome employee assigned to a branch.
type Staff struct {
	StaffNo   string
	FirstName string
	LastName  string
	Position  string
	Sex       string
	DOB       time.Time
	Salary    float64
	BranchNo  string
	Telephone string
	Mobile    string
	Email     string
}

// StaffUpdate lists the mutable staff columns; nil fields are left unchanged.
type StaffUpdate struct {
	StaffNo   string
	Position  *string
	Salary    *float64
	Telephone *string
	Email     *string
}
