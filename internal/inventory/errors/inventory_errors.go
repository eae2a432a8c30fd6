package inventoryerrors

import (
	"go-erp/internal/shared/apperror"
	"net/http"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeInvalidInput,
		"모든 필드를 입력해주세요.",
		http.StatusBadRequest,
	)
	ErrRegisterFailed = apperror.New(
		apperror.CodeGatewayError,
		"제품 등록에 실패했습니다.",
		http.StatusBadGateway,
	)
)
