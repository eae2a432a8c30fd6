package courseerrors

import (
	"go-erp/internal/shared/apperror"
	"net/http"
)

var (
	ErrCourseNotFound = apperror.New(
		apperror.CodeNotFound,
		"과목을 찾을 수 없습니다.",
		http.StatusNotFound,
	)
	ErrInvalidCourseID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid course ID",
		http.StatusBadRequest,
	)
	ErrMaxCourses = apperror.New(
		apperror.CodeInvalidState,
		"최대 8개 과목까지만 신청 가능합니다.",
		http.StatusConflict,
	)
	ErrAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"이미 신청한 과목입니다.",
		http.StatusConflict,
	)
	ErrCourseFull = apperror.New(
		apperror.CodeInvalidState,
		"수강인원이 초과되었습니다.",
		http.StatusConflict,
	)
	ErrNotRegistered = apperror.New(
		apperror.CodeNotFound,
		"신청하지 않은 과목입니다.",
		http.StatusNotFound,
	)
)
