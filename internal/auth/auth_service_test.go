package auth_test

import (
	"context"
	"testing"
	"time"

	"go-erp/internal/auth"
	autherrors "go-erp/internal/auth/errors"
	authMock "go-erp/internal/auth/mock"
	"go-erp/internal/domain"
	"go-erp/internal/employee"
	employeeerrors "go-erp/internal/employee/errors"
	employeeMock "go-erp/internal/employee/mock"
	"go-erp/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("test-secret")

type staticViewers map[int64]domain.Role

func (v staticViewers) ResolveViewer(_ context.Context, id int64) (domain.Viewer, error) {
	role, ok := v[id]
	if !ok {
		role = domain.RoleViewer
	}
	return domain.Viewer{ID: id, Role: role}, nil
}

var sales = employee.Employee{ID: 3, Name: "박영업", Department: "영업", Email: "park@erp.kr"}

func setupServiceTest(t *testing.T) (auth.Service, *authMock.MockRepository, *employeeMock.MockService) {
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	employees := employeeMock.NewMockService(ctrl)
	viewers := staticViewers{3: domain.RoleStaff}
	return auth.NewService(repo, employees, viewers, secret, zap.NewNop()), repo, employees
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := auth.RegisterRequest{EmployeeID: 3, Email: " Park@ERP.kr ", Password: "secret1"}

	t.Run("success", func(t *testing.T) {
		svc, repo, employees := setupServiceTest(t)
		employees.EXPECT().Find(gomock.Any(), int64(3)).Return(sales, nil)
		repo.EXPECT().FindByEmployeeID(gomock.Any(), int64(3)).Return(nil, nil)
		repo.EXPECT().FindByEmail(gomock.Any(), "park@erp.kr").Return(nil, nil)

		var created *auth.Account
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *auth.Account) error {
			created = a
			return nil
		})

		res, err := svc.Register(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "park@erp.kr", created.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))
		assert.Equal(t, created.ID.String(), res.AccountID)
		assert.Equal(t, domain.RoleStaff, res.Role)
		assert.Equal(t, "박영업", res.Name)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, employees := setupServiceTest(t)
		employees.EXPECT().Find(gomock.Any(), int64(3)).Return(employee.Employee{}, employeeerrors.ErrEmployeeNotFound)

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("employee already has an account", func(t *testing.T) {
		svc, repo, employees := setupServiceTest(t)
		employees.EXPECT().Find(gomock.Any(), int64(3)).Return(sales, nil)
		repo.EXPECT().FindByEmployeeID(gomock.Any(), int64(3)).Return(&auth.Account{EmployeeID: 3}, nil)

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrAccountAlreadyExists)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, repo, employees := setupServiceTest(t)
		employees.EXPECT().Find(gomock.Any(), int64(3)).Return(sales, nil)
		repo.EXPECT().FindByEmployeeID(gomock.Any(), int64(3)).Return(nil, nil)
		repo.EXPECT().FindByEmail(gomock.Any(), "park@erp.kr").Return(&auth.Account{EmployeeID: 9}, nil)

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("insert conflict", func(t *testing.T) {
		svc, repo, employees := setupServiceTest(t)
		employees.EXPECT().Find(gomock.Any(), int64(3)).Return(sales, nil)
		repo.EXPECT().FindByEmployeeID(gomock.Any(), int64(3)).Return(nil, nil)
		repo.EXPECT().FindByEmail(gomock.Any(), "park@erp.kr").Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(apperror.New(apperror.CodeConflict, "duplicate", 409))

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &auth.Account{EmployeeID: 3, Email: "park@erp.kr", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		svc, repo, employees := setupServiceTest(t)
		repo.EXPECT().FindByEmail(gomock.Any(), "park@erp.kr").Return(account, nil)
		employees.EXPECT().Find(gomock.Any(), int64(3)).Return(sales, nil)

		token, res, err := svc.Login(ctx, "park@erp.kr", "secret1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, res.Role)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.EqualValues(t, 3, claims["employee_id"])

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(auth.AccessTokenTTL), exp.Time, 5*time.Second)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _ := setupServiceTest(t)
		repo.EXPECT().FindByEmail(gomock.Any(), "nobody@erp.kr").Return(nil, nil)

		_, _, err := svc.Login(ctx, "nobody@erp.kr", "secret1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := setupServiceTest(t)
		repo.EXPECT().FindByEmail(gomock.Any(), "park@erp.kr").Return(account, nil)

		_, _, err := svc.Login(ctx, "park@erp.kr", "wrong-pass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Me(t *testing.T) {
	svc, repo, employees := setupServiceTest(t)
	employees.EXPECT().Find(gomock.Any(), int64(3)).Return(sales, nil)
	repo.EXPECT().FindByEmployeeID(gomock.Any(), int64(3)).Return(nil, nil)

	res, err := svc.Me(context.Background(), domain.Viewer{ID: 3, Role: domain.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, res.Role)
	assert.Equal(t, "park@erp.kr", res.Email)
	assert.Empty(t, res.AccountID)
}
