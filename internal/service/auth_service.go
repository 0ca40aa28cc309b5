package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/session"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type authStore interface {
	Authenticate(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
}

// AuthConfig defines how console access tokens are issued.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService signs operators in against the backend and manages their sessions.
type AuthService struct {
	backend   Backend
	store     authStore
	sessions  *session.Manager
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(backend Backend, store authStore, sessions *session.Manager, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 12 * time.Hour
	}
	return &AuthService{
		backend:   backend,
		store:     store,
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// Login authenticates against the backend (or the mock store), persists the
// session and returns a console access token bound to it.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	sessionID := s.sessions.NewID()
	store := s.sessions.Open(sessionID)
	scope := gateway.Scope{Tenant: models.TenantKey(req.SchoolDomain), Session: store}

	result, err := dispatch(ctx, s.backend, scope, "auth.login",
		loginRemote(scope, req),
		func(ctx context.Context) (models.LoginResult, error) { return s.store.Authenticate(ctx, req) },
	)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidCredentials) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}
	if !result.Success {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	school := result.School
	if school.Domain == "" {
		school.Domain = req.SchoolDomain
	}
	user := result.User.Clone()
	user.Token = result.Token
	if user.School == nil {
		embedded := school.Clone()
		user.School = &embedded
	}

	if err := store.Save(ctx, session.State{User: &user, School: &school}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	accessToken, expiresAt, err := s.generateAccessToken(sessionID, user, school.Tenant())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("operator signed in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("tenant", school.Domain),
	)

	public := user.Clone()
	public.Token = ""
	return &models.LoginResponse{AccessToken: accessToken, ExpiresAt: expiresAt, User: public, School: school}, nil
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	if store == nil {
		return nil
	}
	if err := store.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// Me returns the signed-in user without the backend token.
func (s *AuthService) Me(ctx context.Context, store *session.Store) (*models.User, error) {
	if store == nil {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := store.User(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "session expired, please sign in again")
	}
	user.Token = ""
	return user, nil
}

// OpenSession returns the store backing a console session.
func (s *AuthService) OpenSession(sessionID string) *session.Store {
	return s.sessions.Open(sessionID)
}

// ValidateToken parses and validates a console access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.ConsoleClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.ConsoleClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.ConsoleClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// loginRemote posts the credentials. A rejected login is not an expired
// session, so a 401 here is reported as a plain failure.
func loginRemote(scope gateway.Scope, req models.LoginRequest) remoteFactory[models.LoginResult] {
	post := remoteSend[models.LoginResult](scope, http.MethodPost, "/login", req)
	return func(c remoteClient) gateway.Operation[models.LoginResult] {
		op := post(c)
		return func(ctx context.Context) (models.LoginResult, error) {
			res, err := op(ctx)
			if gateway.IsUnauthorized(err) {
				return res, fmt.Errorf("backend rejected login: %s", err.Error())
			}
			return res, err
		}
	}
}

func (s *AuthService) generateAccessToken(sessionID string, user models.User, tenant models.TenantKey) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.ConsoleClaims{
		SessionID: sessionID,
		UserID:    user.ID,
		Role:      user.Role,
		Tenant:    tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
