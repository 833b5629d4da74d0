package services

import (
	"errors"
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	PhoneNumber          string
	DateOfBirth          *time.Time
	UserType             string
	DriverLicenseNumber  string
	DriverLicenseState   string
	DriverLicenseCountry string
	PreferredLanguage    string
	MarketingOptIn       bool
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	DateOfBirth *time.Time
}

type Claims struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(input RegisterInput) (string, *models.User, error)
	Login(email, password string) (string, *models.User, error)
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	ValidateToken(tokenStr string) (*Claims, error)
}

type authService struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	secret       []byte
	tokenTTL     time.Duration
}

func NewAuthService(userRepo repository.UserRepository, customerRepo repository.CustomerRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

func (s *authService) Register(input RegisterInput) (string, *models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(input.Email)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, conflict("user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	userType := input.UserType
	if userType == "" {
		userType = models.UserTypeCustomer
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		DateOfBirth:  input.DateOfBirth,
		UserType:     userType,
		Status:       models.UserStatusActive,
	}

	if userType == models.UserTypeCustomer {
		language := input.PreferredLanguage
		if language == "" {
			language = "en"
		}
		country := input.DriverLicenseCountry
		if country == "" {
			country = "USA"
		}
		customer := &models.Customer{
			ID:                   user.ID,
			CustomerNumber:       documentNumber("CUST"),
			DriverLicenseNumber:  input.DriverLicenseNumber,
			DriverLicenseState:   input.DriverLicenseState,
			DriverLicenseCountry: country,
			PreferredLanguage:    language,
			MarketingOptIn:       input.MarketingOptIn,
			CustomerSince:        time.Now().UTC(),
			RiskLevel:            "low",
		}
		if err := s.customerRepo.CreateWithUser(user, customer); err != nil {
			return "", nil, err
		}
	} else if err := s.userRepo.Create(user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, invalidInput("invalid email or password")
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, invalidInput("invalid email or password")
	}
	if user.Status != models.UserStatusActive {
		return "", nil, invalidState("account is not active")
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, wrapLookup(err, "user")
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, wrapLookup(err, "user")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return wrapLookup(err, "user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return invalidInput("current password is incorrect")
	}
	if len(newPassword) < 8 {
		return invalidInput("new password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(user)
}

func (s *authService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
