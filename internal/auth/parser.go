// Package auth validates the access tokens the SPA sends and turns
// their claims into a caller identity.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	FarmID string `json:"farm_id,omitempty"`
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse validates the token signature and expiry and resolves the
// subject, role and optional assigned farm.
func (p *Parser) Parse(token string) (*model.Principal, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}
	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	principal := &model.Principal{UserID: userID, Role: role}
	if claims.FarmID != "" {
		farmID, err := uuid.Parse(claims.FarmID)
		if err != nil {
			return nil, fmt.Errorf("%w: farm_id is not a uuid", ErrInvalidToken)
		}
		principal.AssignedFarmID = &farmID
	}
	return principal, nil
}
