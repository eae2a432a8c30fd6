package course_test

import (
	"context"
	"errors"
	"testing"

	"go-erp/internal/course"
	courseerrors "go-erp/internal/course/errors"
	courseMock "go-erp/internal/course/mock"
	"go-erp/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const student int64 = 3

var (
	algorithms = course.Course{ID: uuid.New(), Name: "알고리즘", Professor: "김교수", Credits: 3, Capacity: 40, Enrolled: 12}
	networks   = course.Course{ID: uuid.New(), Name: "네트워크", Professor: "이교수", Credits: 2, Capacity: 30, Enrolled: 30}
	catalog    = []course.Course{algorithms, networks}
)

func setupServiceTest(t *testing.T) (course.Service, *courseMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := courseMock.NewMockRepository(ctrl)
	return course.NewService(repo, zap.NewNop()), repo
}

func registrations(ids ...uuid.UUID) []course.Registration {
	regs := make([]course.Registration, len(ids))
	for i, id := range ids {
		regs[i] = course.Registration{ID: uuid.New(), StudentID: student, CourseID: id}
	}
	return regs
}

func TestCourseService_ListCourses(t *testing.T) {
	svc, repo := setupServiceTest(t)
	repo.EXPECT().FindCourses(gomock.Any()).Return(catalog, nil).Times(1)

	first, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	_, err = svc.ListCourses(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.False(t, first[0].Full)
	assert.True(t, first[1].Full)
}

func TestCourseService_ListRegistered(t *testing.T) {
	svc, repo := setupServiceTest(t)
	extra := course.Course{ID: uuid.New(), Name: "운영체제", Credits: 3, Capacity: 20}

	repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(registrations(algorithms.ID, networks.ID, extra.ID), nil)
	repo.EXPECT().FindCourses(gomock.Any()).Return(catalog, nil)
	repo.EXPECT().FindCourse(gomock.Any(), extra.ID).Return(&extra, nil)

	res, err := svc.ListRegistered(context.Background(), student)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 8, res.TotalCredits)
	assert.Equal(t, course.MaxCourses, res.MaxCourses)
}

func TestCourseService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success increments enrolled", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(nil, nil)
		c := algorithms
		repo.EXPECT().FindCourse(gomock.Any(), algorithms.ID).Return(&c, nil)
		repo.EXPECT().CreateRegistration(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *course.Registration) error {
			assert.Equal(t, student, r.StudentID)
			assert.Equal(t, algorithms.ID, r.CourseID)
			assert.NotEqual(t, uuid.Nil, r.ID)
			return nil
		})
		repo.EXPECT().SetEnrolled(gomock.Any(), algorithms.ID, 13).Return(nil)
		repo.EXPECT().FindCourses(gomock.Any()).Return(catalog, nil)

		res, err := svc.Register(ctx, student, algorithms.ID)
		require.NoError(t, err)
		assert.Equal(t, 13, res.Enrolled)
	})

	t.Run("ninth course", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		ids := make([]uuid.UUID, course.MaxCourses)
		for i := range ids {
			ids[i] = uuid.New()
		}
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(registrations(ids...), nil)

		_, err := svc.Register(ctx, student, algorithms.ID)
		assert.ErrorIs(t, err, courseerrors.ErrMaxCourses)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(registrations(algorithms.ID), nil)

		_, err := svc.Register(ctx, student, algorithms.ID)
		assert.ErrorIs(t, err, courseerrors.ErrAlreadyRegistered)
	})

	t.Run("full course", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(nil, nil)
		c := networks
		repo.EXPECT().FindCourse(gomock.Any(), networks.ID).Return(&c, nil)

		_, err := svc.Register(ctx, student, networks.ID)
		assert.ErrorIs(t, err, courseerrors.ErrCourseFull)
	})

	t.Run("unknown course", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(nil, nil)
		repo.EXPECT().FindCourse(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := svc.Register(ctx, student, uuid.New())
		assert.ErrorIs(t, err, courseerrors.ErrCourseNotFound)
	})

	t.Run("insert conflict", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(nil, nil)
		c := algorithms
		repo.EXPECT().FindCourse(gomock.Any(), algorithms.ID).Return(&c, nil)
		repo.EXPECT().CreateRegistration(gomock.Any(), gomock.Any()).
			Return(apperror.New(apperror.CodeConflict, "duplicate", 409))

		_, err := svc.Register(ctx, student, algorithms.ID)
		assert.ErrorIs(t, err, courseerrors.ErrAlreadyRegistered)
	})

	t.Run("enrolled update fails removes registration", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindRegistrations(gomock.Any(), student).Return(nil, nil)
		c := algorithms
		repo.EXPECT().FindCourse(gomock.Any(), algorithms.ID).Return(&c, nil)
		repo.EXPECT().CreateRegistration(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().SetEnrolled(gomock.Any(), algorithms.ID, 13).Return(errors.New("gateway down"))
		repo.EXPECT().DeleteRegistration(gomock.Any(), student, algorithms.ID).Return(int64(1), nil)

		_, err := svc.Register(ctx, student, algorithms.ID)
		assert.EqualError(t, err, "gateway down")
	})
}

func TestCourseService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements enrolled", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		c := algorithms
		repo.EXPECT().DeleteRegistration(gomock.Any(), student, algorithms.ID).Return(int64(1), nil)
		repo.EXPECT().FindCourse(gomock.Any(), algorithms.ID).Return(&c, nil)
		repo.EXPECT().SetEnrolled(gomock.Any(), algorithms.ID, 11).Return(nil)
		repo.EXPECT().FindCourses(gomock.Any()).Return(catalog, nil)

		require.NoError(t, svc.Cancel(ctx, student, algorithms.ID))
	})

	t.Run("never below zero", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		empty := course.Course{ID: uuid.New(), Capacity: 10}
		repo.EXPECT().DeleteRegistration(gomock.Any(), student, empty.ID).Return(int64(1), nil)
		repo.EXPECT().FindCourse(gomock.Any(), empty.ID).Return(&empty, nil)
		repo.EXPECT().SetEnrolled(gomock.Any(), empty.ID, 0).Return(nil)
		repo.EXPECT().FindCourses(gomock.Any()).Return(catalog, nil)

		require.NoError(t, svc.Cancel(ctx, student, empty.ID))
	})

	t.Run("not registered", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().DeleteRegistration(gomock.Any(), student, algorithms.ID).Return(int64(0), nil)

		err := svc.Cancel(ctx, student, algorithms.ID)
		assert.ErrorIs(t, err, courseerrors.ErrNotRegistered)
	})
}
