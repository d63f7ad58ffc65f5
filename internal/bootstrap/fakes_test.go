package bootstrap

import (
	"context"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/auth"
)

type rejectAll struct{}

func (rejectAll) Register(context.Context, auth.RegisterInput) (*domain.User, error) {
	return nil, domain.ErrValidation
}

func (rejectAll) Login(context.Context, string, string) (*domain.User, string, error) {
	return nil, "", domain.ErrInvalidCredentials
}

func (rejectAll) VerifySession(string) (domain.Session, error) {
	return domain.Session{}, domain.ErrUnauthorized
}

func (rejectAll) Profile(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}
