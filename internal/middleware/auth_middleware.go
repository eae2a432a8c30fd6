package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxEmployeeID = "employee_id"
	CtxViewer     = "viewer"
)

// AuthMiddleware validates the HS256 access token from the Authorization
// header or the access_token cookie and stores the employee id.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, autherrors.ErrTokenExpired)
				return
			}
			abortWithError(c, autherrors.ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithError(c, autherrors.ErrInvalidToken)
			return
		}

		employeeID, ok := employeeIDClaim(claims)
		if !ok {
			abortWithError(c, autherrors.ErrInvalidToken.WithDetails(gin.H{"claim": "employee_id"}))
			return
		}

		c.Set(CtxEmployeeID, employeeID)
		c.Next()
	}
}

func employeeIDClaim(claims jwt.MapClaims) (int64, bool) {
	switch v := claims["employee_id"].(type) {
	case float64:
		if v <= 0 || v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	}
	return 0, false
}

func abortWithError(c *gin.Context, err error) {
	response.FromError(c, err)
	c.Abort()
}
