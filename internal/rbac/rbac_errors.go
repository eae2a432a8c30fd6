package rbac

import (
	"errors"
	"net/http"

	"go-erp/internal/shared/apperror"
)

var (
	ErrPolicyNotLoaded = errors.New("rbac policy not loaded")

	ErrCapabilityRequired = apperror.RequiredField("capability")
	ErrNoViewer           = apperror.New(apperror.CodeUnauthorized, "Sign in to continue", http.StatusUnauthorized)
)
