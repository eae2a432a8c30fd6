package attendance

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-erp/internal/attendance/errors"
	"go-erp/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skip2/go-qrcode"
)

const (
	qrPayloadType = "attendance"
	qrImageSize   = 250
)

// QRClaims carries the attendance payload inside a signed token.
type QRClaims struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Timestamp    string `json:"timestamp"`
	Type         string `json:"type"`
	jwt.RegisteredClaims
}

type QRCode struct {
	Token     string    `json:"token"`
	Image     string    `json:"image"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QRIssuer signs attendance payloads and renders them as PNG data URLs.
type QRIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewQRIssuer(secret []byte, ttl time.Duration) *QRIssuer {
	return &QRIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (q *QRIssuer) Issue(emp employee.Employee) (QRCode, error) {
	now := q.now()
	exp := now.Add(q.ttl)

	claims := QRClaims{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Timestamp:    now.UTC().Format(time.RFC3339),
		Type:         qrPayloadType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(q.secret)
	if err != nil {
		return QRCode{}, fmt.Errorf("sign qr payload: %w", err)
	}

	png, err := qrcode.Encode(token, qrcode.Medium, qrImageSize)
	if err != nil {
		return QRCode{}, fmt.Errorf("encode qr image: %w", err)
	}

	return QRCode{
		Token:     token,
		Image:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ExpiresAt: exp,
	}, nil
}

func (q *QRIssuer) Verify(token string) (QRClaims, error) {
	var claims QRClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return q.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(q.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return QRClaims{}, attendanceerrors.ErrQRCodeExpired
		}
		return QRClaims{}, attendanceerrors.ErrInvalidQRCode
	}
	if claims.Type != qrPayloadType || claims.EmployeeID <= 0 {
		return QRClaims{}, attendanceerrors.ErrInvalidQRCode
	}
	return claims, nil
}
