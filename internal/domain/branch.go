package domain

// Branch is a physical office staff are assigned to.
type Branch struct {
	BranchNo string
	Street   string
	City     string
	PostCode string
}

// BranchUpdate carries replacement values. Empty strings keep the stored value.
type BranchUpdate struct {
	BranchNo string
	Street   string
	City     string
	PostCode string
}
