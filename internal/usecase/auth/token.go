package auth

import (
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the caller as asserted by a verified access token.
type Identity struct {
	UserID uuid.UUID
	Role   domain.Role
}

// TokenVerifier checks HS256 access tokens issued by the account service.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueToken signs a token for the identity. Used by local tooling and tests;
// production tokens come from the account service.
func (v *TokenVerifier) IssueToken(id Identity, ttl time.Duration) (string, error) {
	now := v.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id.UserID.String(),
		"role":    string(id.Role),
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString(v.secret)
}

// VerifyToken verifies the signature and expiry and extracts the identity.
func (v *TokenVerifier) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	switch domain.Role(role) {
	case domain.RoleFounder, domain.RoleMentor:
	default:
		return nil, domain.ErrInvalidToken
	}

	return &Identity{UserID: userID, Role: domain.Role(role)}, nil
}
