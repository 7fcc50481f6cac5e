package employee

// Ref is the read-only projection of the employee directory consumed by
// the attendance core. The directory itself (master data, documents,
// designations) is owned elsewhere.
type Ref struct {
	EmployeeID     string
	FullName       string
	Department     string
	EmploymentType string
}
