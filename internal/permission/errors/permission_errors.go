package permissionerrors

import (
	"go-erp/internal/shared/apperror"
	"net/http"
)

var (
	ErrCannotEdit = apperror.New(
		apperror.CodeForbidden,
		"You cannot change this employee's permissions",
		http.StatusForbidden,
	)
	ErrAdminEscalation = apperror.New(
		apperror.CodeForbidden,
		"Managers cannot grant the admin role",
		http.StatusForbidden,
	)
	ErrCannotView = apperror.New(
		apperror.CodeForbidden,
		"You cannot view this employee's permissions",
		http.StatusForbidden,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of admin, manager, staff, viewer",
		http.StatusBadRequest,
	)
	ErrUnknownCapability = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown capability",
		http.StatusBadRequest,
	)
)
