package course

import (
	"context"

	"go-erp/internal/gateway"

	"github.com/google/uuid"
)

//go:generate mockgen -source=course_repo.go -destination=mock/course_repo_mock.go -package=mock
type Repository interface {
	FindCourses(ctx context.Context) ([]Course, error)
	FindCourse(ctx context.Context, id uuid.UUID) (*Course, error)
	FindRegistrations(ctx context.Context, studentID int64) ([]Registration, error)
	CreateRegistration(ctx context.Context, reg *Registration) error
	DeleteRegistration(ctx context.Context, studentID int64, courseID uuid.UUID) (int64, error)
	SetEnrolled(ctx context.Context, courseID uuid.UUID, enrolled int) error
}

type repository struct {
	gw gateway.Gateway
}

func NewRepository(gw gateway.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) FindCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := r.gw.Select(ctx, gateway.TableCourses, &courses, gateway.Query{
		Order: []gateway.Order{{Column: "name"}},
	})
	return courses, err
}

// FindCourse reads through to the gateway and returns nil when the course is gone.
func (r *repository) FindCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	var courses []Course
	err := r.gw.Select(ctx, gateway.TableCourses, &courses, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("id", id)},
		Limit:   1,
	})
	if err != nil || len(courses) == 0 {
		return nil, err
	}
	return &courses[0], nil
}

func (r *repository) FindRegistrations(ctx context.Context, studentID int64) ([]Registration, error) {
	var regs []Registration
	err := r.gw.Select(ctx, gateway.TableRegistrations, &regs, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("student_id", studentID)},
		Order:   []gateway.Order{{Column: "created_at"}},
	})
	return regs, err
}

func (r *repository) CreateRegistration(ctx context.Context, reg *Registration) error {
	return r.gw.Insert(ctx, gateway.TableRegistrations, reg)
}

func (r *repository) DeleteRegistration(ctx context.Context, studentID int64, courseID uuid.UUID) (int64, error) {
	return r.gw.Delete(ctx, gateway.TableRegistrations,
		gateway.Eq("student_id", studentID),
		gateway.Eq("course_id", courseID),
	)
}

func (r *repository) SetEnrolled(ctx context.Context, courseID uuid.UUID, enrolled int) error {
	_, err := r.gw.Update(ctx, gateway.TableCourses,
		map[string]any{"enrolled": enrolled},
		gateway.Eq("id", courseID),
	)
	return err
}
