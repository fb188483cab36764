// Package auth emite los tokens que protegen la ingesta y el refresco del tablero.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens de servicio para un operador y un rol.
type AuthUseCase struct {
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{jwtCfg: jwtCfg, now: time.Now}
}

// IssueToken genera un JWT para userID con el rol indicado (admin | viewer).
func (uc *AuthUseCase) IssueToken(in dto.TokenRequest) (*dto.TokenResponse, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id requerido", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = jwt.RoleViewer
	}
	if role != jwt.RoleAdmin && role != jwt.RoleViewer {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	exp := uc.jwtCfg.ExpMinutes
	if in.ExpMinutes > 0 {
		exp = in.ExpMinutes
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, userID, role, uc.jwtCfg.Issuer, exp)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		UserID:    userID,
		Role:      role,
		ExpiresAt: uc.now().Add(time.Duration(exp) * time.Minute),
	}, nil
}
