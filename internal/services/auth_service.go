package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/constants"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
	"github.com/harukimoto/board-management-api/internal/utils"
)

var (
	ErrMissingFields        = errors.New("all fields are required")
	ErrPasswordTooShort     = fmt.Errorf("password should be at least %d characters long", constants.MinPasswordLength)
	ErrUsernameTooShort     = fmt.Errorf("username should be at least %d characters long", constants.MinUsernameLength)
	ErrEmailTaken           = errors.New("email already exists")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidOrganization  = errors.New("invalid organization ID")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login, and profile access.
type AuthService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name            string
	Username        string
	Email           string
	Password        string
	ProfileImageURL string
	OrgID           *uint64
}

// Register creates a new user. When OrgID is given the user joins that
// organization as a member; otherwise a fresh organization is created with
// the registrant as its admin, in the same transaction as the user row.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if name == "" || username == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}

	if existing, err := s.userRepo.FindByEmailOrUsername(email, username); err == nil {
		if existing.Email == email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	profileImageURL := input.ProfileImageURL
	if profileImageURL == "" {
		profileImageURL = utils.DefaultAvatarURL(username)
	}

	user := &models.User{
		Name:            name,
		Username:        username,
		Email:           email,
		PasswordHash:    string(hashedPassword),
		ProfileImageURL: profileImageURL,
	}

	if input.OrgID != nil {
		if _, err := s.orgRepo.FindByID(*input.OrgID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidOrganization
			}
			return nil, fmt.Errorf("failed to find organization: %w", err)
		}

		// Membership is the user's org reference, so joining is naturally
		// idempotent.
		user.Role = models.RoleMember
		user.OrgID = input.OrgID
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	user.Role = models.RoleAdmin
	org := &models.Organization{
		Name: fmt.Sprintf("%s's Organization", name),
	}
	if err := s.userRepo.RegisterWithNewOrganization(user, org); err != nil {
		return nil, fmt.Errorf("failed to complete registration: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. A missing
// account and a wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds optional profile fields; empty values keep the
// stored ones.
type UpdateProfileInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// UpdateProfile updates the user's own profile fields.
func (s *AuthService) UpdateProfile(id uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
