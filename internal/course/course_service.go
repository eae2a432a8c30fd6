package course

import (
	"context"
	"sync"
	"time"

	"go-erp/internal/cache"
	courseerrors "go-erp/internal/course/errors"
	"go-erp/internal/gateway"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=course_service.go -destination=mock/course_service_mock.go -package=mock
type Service interface {
	ListCourses(ctx context.Context) ([]CourseResponse, error)
	ListRegistered(ctx context.Context, studentID int64) (RegisteredResponse, error)
	Register(ctx context.Context, studentID int64, courseID uuid.UUID) (CourseResponse, error)
	Cancel(ctx context.Context, studentID int64, courseID uuid.UUID) error
	Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error)
}

type service struct {
	repo  Repository
	table *cache.Table[Course]

	// mu serializes enrollment changes made by this process.
	mu sync.Mutex

	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("course.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("course.service")
	}
	return &service{
		repo:   repo,
		table:  cache.NewTable(gateway.TableCourses, repo.FindCourses, l),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) ListCourses(ctx context.Context) ([]CourseResponse, error) {
	courses, err := s.table.Get(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load courses failed", zap.Error(err))
		return nil, err
	}

	res := make([]CourseResponse, len(courses))
	for i, c := range courses {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) ListRegistered(ctx context.Context, studentID int64) (RegisteredResponse, error) {
	regs, err := s.repo.FindRegistrations(ctx, studentID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load registrations failed",
			zap.Int64("student_id", studentID),
			zap.Error(err),
		)
		return RegisteredResponse{}, err
	}

	courses, err := s.table.Get(ctx)
	if err != nil {
		return RegisteredResponse{}, err
	}
	byID := make(map[uuid.UUID]Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	res := RegisteredResponse{
		Courses:    make([]CourseResponse, 0, len(regs)),
		MaxCourses: MaxCourses,
	}
	for _, r := range regs {
		c, ok := byID[r.CourseID]
		if !ok {
			found, err := s.repo.FindCourse(ctx, r.CourseID)
			if err != nil {
				return RegisteredResponse{}, err
			}
			if found == nil {
				continue
			}
			c = *found
		}
		res.Courses = append(res.Courses, mapToResponse(c))
		res.TotalCredits += c.Credits
	}
	res.Count = len(res.Courses)
	return res, nil
}

func (s *service) Register(ctx context.Context, studentID int64, courseID uuid.UUID) (CourseResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.Int64("student_id", studentID),
		zap.String("course_id", courseID.String()),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.repo.FindRegistrations(ctx, studentID)
	if err != nil {
		return CourseResponse{}, err
	}
	if len(regs) >= MaxCourses {
		return CourseResponse{}, courseerrors.ErrMaxCourses
	}
	for _, r := range regs {
		if r.CourseID == courseID {
			return CourseResponse{}, courseerrors.ErrAlreadyRegistered
		}
	}

	c, err := s.repo.FindCourse(ctx, courseID)
	if err != nil {
		return CourseResponse{}, err
	}
	if c == nil {
		return CourseResponse{}, courseerrors.ErrCourseNotFound
	}
	if c.Full() {
		return CourseResponse{}, courseerrors.ErrCourseFull
	}

	reg := &Registration{
		ID:        uuid.New(),
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateRegistration(ctx, reg); err != nil {
		if apperror.IsCode(err, apperror.CodeConflict) {
			return CourseResponse{}, courseerrors.ErrAlreadyRegistered
		}
		log.Error("create registration failed", zap.Error(err))
		return CourseResponse{}, err
	}

	if err := s.repo.SetEnrolled(ctx, courseID, c.Enrolled+1); err != nil {
		log.Error("increment enrolled failed, removing registration", zap.Error(err))
		if _, derr := s.repo.DeleteRegistration(context.WithoutCancel(ctx), studentID, courseID); derr != nil {
			log.Error("remove registration failed", zap.Error(derr))
		}
		return CourseResponse{}, err
	}
	c.Enrolled++

	s.refresh(ctx)
	log.Info("course registered")
	return mapToResponse(*c), nil
}

func (s *service) Cancel(ctx context.Context, studentID int64, courseID uuid.UUID) error {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.Int64("student_id", studentID),
		zap.String("course_id", courseID.String()),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.DeleteRegistration(ctx, studentID, courseID)
	if err != nil {
		log.Error("delete registration failed", zap.Error(err))
		return err
	}
	if removed == 0 {
		return courseerrors.ErrNotRegistered
	}

	c, err := s.repo.FindCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if c != nil {
		if err := s.repo.SetEnrolled(ctx, courseID, max(c.Enrolled-1, 0)); err != nil {
			log.Error("decrement enrolled failed", zap.Error(err))
			return err
		}
	}

	s.refresh(ctx)
	log.Info("course registration cancelled")
	return nil
}

func (s *service) Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error) {
	return s.table.Watch(ctx, gw)
}

func (s *service) refresh(ctx context.Context) {
	if _, err := s.table.Refresh(ctx); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("reload courses failed", zap.Error(err))
	}
}

func mapToResponse(c Course) CourseResponse {
	return CourseResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Professor: c.Professor,
		Credits:   c.Credits,
		Time:      c.Time,
		Capacity:  c.Capacity,
		Enrolled:  c.Enrolled,
		Full:      c.Full(),
	}
}
