package auth

import (
	"testing"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestVerifyToken_RoundTrip(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	id := Identity{UserID: uuid.New(), Role: domain.RoleMentor}

	token, err := v.IssueToken(id, time.Hour)
	require.NoError(t, err)

	got, err := v.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, *got)
}

func TestVerifyToken_Rejects(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	id := Identity{UserID: uuid.New(), Role: domain.RoleFounder}

	expired, err := v.IssueToken(id, -time.Minute)
	require.NoError(t, err)

	foreign, err := NewTokenVerifier("another-secret-another-secret-xx").IssueToken(id, time.Hour)
	require.NoError(t, err)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id.UserID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	intID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"role":    "founder",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id.UserID.String(),
		"role":    "founder",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":        expired,
		"wrong secret":   foreign,
		"missing role":   noRole,
		"integer id":     intID,
		"missing expiry": noExp,
		"garbage":        "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}
