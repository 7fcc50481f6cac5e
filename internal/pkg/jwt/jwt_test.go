package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDecodeToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, expiresAt, err := svc.GenerateToken("emp-1", "Ana Cruz", "staff", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	employeeID, employeeName, err := svc.EmployeeClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
	assert.Equal(t, "Ana Cruz", employeeName)
	assert.Equal(t, "staff", claims["role"])
}

func TestEmployeeClaimsRejectsMissingIdentity(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, _, err := svc.EmployeeClaims(map[string]interface{}{"role": "staff"})
	assert.Error(t, err)

	_, _, err = svc.EmployeeClaims(map[string]interface{}{"employee_id": ""})
	assert.Error(t, err)
}
