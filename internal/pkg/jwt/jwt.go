package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens issued by the identity provider. This
// API never issues end-user credentials; GenerateToken exists for
// service accounts and integration tests.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateToken(employeeID, employeeName, role string, ttl time.Duration) (token string, expiresAt int64, err error)
	EmployeeClaims(claims map[string]interface{}) (employeeID, employeeName string, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateToken(employeeID, employeeName, role string, ttl time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(ttl).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id":   employeeID,
		"employee_name": employeeName,
		"role":          role,
		"exp":           expiresAt,
	})
	return tokenString, expiresAt, err
}

// EmployeeClaims extracts the employee identity from verified claims.
func (j *JWTService) EmployeeClaims(claims map[string]interface{}) (string, string, error) {
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("token has no employee_id claim")
	}
	employeeName, _ := claims["employee_name"].(string)
	return employeeID, employeeName, nil
}
