package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Moussassoss/citizens-complaints/internal/auth"
	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/repository"
	"github.com/Moussassoss/citizens-complaints/internal/session"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

const invalidCredentials = "invalid credentials"

// AuthService checks staff credentials and manages the session slot.
type AuthService struct {
	admins   repository.AdminRepository
	verifier auth.CredentialVerifier
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(admins repository.AdminRepository, verifier auth.CredentialVerifier, logger *zap.Logger) *AuthService {
	if verifier == nil {
		verifier = auth.PlainVerifier{}
	}
	return &AuthService{admins: admins, verifier: verifier, logger: logger}
}

// Authenticate matches email exactly and verifies the password. Every
// mismatch yields the same UNAUTHORIZED error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.AdminPublic, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !s.verifier.Verify(admin.Password, password) {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	public := admin.Public()
	return &public, nil
}

// Login authenticates and, on success, replaces the session content. A
// failed attempt leaves the session as it was.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, email, password string) (*domain.AdminPublic, error) {
	admin, err := s.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Info("login rejected")
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.NewInternalError(errors.New("login without a session"))
	}
	if err := sess.Save(ctx, *admin); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("login", zap.String("admin_id", admin.ID), zap.String("agency", string(admin.Agency)))
	return admin, nil
}

// Logout empties the session whatever it held.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := sess.Clear(ctx); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// CurrentSession returns the signed-in admin, or nil.
func (s *AuthService) CurrentSession(ctx context.Context, sess *session.Session) (*domain.AdminPublic, error) {
	admin, err := sess.Current(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return admin, nil
}

// IsAuthenticated reports whether the session holds an admin. Unreadable
// sessions count as signed out.
func (s *AuthService) IsAuthenticated(ctx context.Context, sess *session.Session) bool {
	admin, err := s.CurrentSession(ctx, sess)
	return err == nil && admin != nil
}

// requireSession loads the signed-in admin or fails with UNAUTHORIZED.
func requireSession(ctx context.Context, sess *session.Session) (*domain.AdminPublic, error) {
	admin, err := sess.Current(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if admin == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return admin, nil
}
