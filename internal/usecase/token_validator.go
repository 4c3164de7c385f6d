package usecase

import (
	"session-booking/internal/domain/identity"
	"session-booking/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (identity.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (identity.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return identity.Principal{}, err
	}

	role, err := identity.NewRole(claims.Role)
	if err != nil {
		return identity.Principal{}, err
	}

	return identity.Principal{GuestRef: claims.GuestRef, Role: role}, nil
}
