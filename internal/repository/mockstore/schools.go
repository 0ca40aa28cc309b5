package mockstore

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// MockToken is the bearer token handed out by mock logins.
const MockToken = "mock-jwt-token"

// account is a login identity; the password never leaves the store.
type account struct {
	schoolID     string
	email        string
	passwordHash string
	user         models.User
}

// Schools lists every school in its public shape.
func (s *Store) Schools(ctx context.Context) ([]models.SchoolSummary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SchoolSummary, 0, len(s.schools))
	for _, school := range s.schools {
		out = append(out, school.Summary())
	}
	return out, nil
}

// SchoolByDomain returns the full school record including settings.
func (s *Store) SchoolByDomain(ctx context.Context, domain string) (models.School, error) {
	if err := s.wait(ctx); err != nil {
		return models.School{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	school, err := s.schoolFor(models.TenantKey(domain))
	if err != nil {
		return models.School{}, err
	}
	return school.Clone(), nil
}

// Authenticate checks credentials against the school's accounts.
func (s *Store) Authenticate(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	var result models.LoginResult
	err := s.read(ctx, models.TenantKey(req.SchoolDomain), func(schoolID string) error {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		for _, acc := range s.accounts {
			if acc.schoolID != schoolID || acc.email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(req.Password)) != nil {
				break
			}
			school, _ := s.schoolFor(models.TenantKey(req.SchoolDomain))
			user := acc.user.Clone()
			embedded := school.Clone()
			user.School = &embedded
			user.Token = MockToken
			result = models.LoginResult{Success: true, User: user, School: school.Clone(), Token: MockToken}
			return nil
		}
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid credentials")
	})
	return result, err
}

// AddAccount registers a login for the tenant.
func (s *Store) AddAccount(ctx context.Context, tenant models.TenantKey, user models.User, password string) (models.User, error) {
	if !user.Role.Valid() {
		return models.User{}, invalid("unsupported role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	err = s.write(ctx, tenant, func(schoolID string) error {
		email := strings.ToLower(strings.TrimSpace(user.Email))
		for _, acc := range s.accounts {
			if acc.schoolID == schoolID && acc.email == email {
				return appErrors.Clone(appErrors.ErrConflict, "email already registered")
			}
		}
		if user.ID == "" {
			user.ID = newID("user")
		}
		user.SchoolID = schoolID
		user.Email = email
		s.accounts = append(s.accounts, account{schoolID: schoolID, email: email, passwordHash: string(hash), user: user.Clone()})
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
