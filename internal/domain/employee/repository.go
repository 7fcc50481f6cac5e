package employee

import "context"

// Directory is the read-only lookup into the external employee master
// data. The attendance core never writes through it.
type Directory interface {
	GetByID(ctx context.Context, employeeID string) (Ref, error)
	List(ctx context.Context) ([]Ref, error)
}
