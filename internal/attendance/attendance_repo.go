package attendance

import (
	"context"

	"go-erp/internal/gateway"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	FindByDate(ctx context.Context, date string) ([]Record, error)
	FindByEmployee(ctx context.Context, employeeID int64) ([]Record, error)
	Upsert(ctx context.Context, rec *Record) error
}

type repository struct {
	gw gateway.Gateway
}

func NewRepository(gw gateway.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) FindByDate(ctx context.Context, date string) ([]Record, error) {
	var rows []Record
	err := r.gw.Select(ctx, gateway.TableAttendance, &rows, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("attendance_date", date)},
		Order:   []gateway.Order{{Column: "employee_id"}},
	})
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]Record, error) {
	var rows []Record
	err := r.gw.Select(ctx, gateway.TableAttendance, &rows, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("employee_id", employeeID)},
		Order:   []gateway.Order{{Column: "attendance_date", Desc: true}},
	})
	return rows, err
}

// Upsert writes rec keyed by (employee_id, attendance_date) and fills in the
// generated id.
func (r *repository) Upsert(ctx context.Context, rec *Record) error {
	return r.gw.Upsert(ctx, gateway.TableAttendance, rec, "employee_id", "attendance_date")
}
