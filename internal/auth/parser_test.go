package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseValidToken(t *testing.T) {
	userID := uuid.New()
	farmID := uuid.New()
	raw := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role:   string(model.RoleFarmSupervisor),
		FarmID: farmID.String(),
	})

	p, err := NewParser(testSecret).Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != userID {
		t.Errorf("user id = %s, want %s", p.UserID, userID)
	}
	if p.Role != model.RoleFarmSupervisor {
		t.Errorf("role = %s, want supervisor", p.Role)
	}
	if p.AssignedFarmID == nil || *p.AssignedFarmID != farmID {
		t.Errorf("assigned farm = %v, want %s", p.AssignedFarmID, farmID)
	}
}

func TestParseNoFarmClaim(t *testing.T) {
	raw := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: string(model.RoleManager),
	})

	p, err := NewParser(testSecret).Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.AssignedFarmID != nil {
		t.Errorf("assigned farm = %v, want nil", p.AssignedFarmID)
	}
}

func TestParseRejects(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: valid, Role: "gerente"})
			s, _ := token.SignedString([]byte("other-secret"))
			return s
		}()},
		{"expired", signToken(t, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			Role: "gerente",
		})},
		{"unknown role", signToken(t, Claims{RegisteredClaims: valid, Role: "superusuario"})},
		{"bad subject", signToken(t, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Role: "gerente",
		})},
	}

	parser := NewParser(testSecret)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parser.Parse(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
