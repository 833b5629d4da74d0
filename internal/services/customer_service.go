package services

import (
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateCustomerInput struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	PhoneNumber          string
	DateOfBirth          *time.Time
	DriverLicenseNumber  string
	DriverLicenseState   string
	DriverLicenseCountry string
	PreferredLanguage    string
	MarketingOptIn       bool
	RiskLevel            string
	Notes                string
}

type UpdateCustomerInput struct {
	DriverLicenseNumber  *string
	DriverLicenseState   *string
	DriverLicenseCountry *string
	DriverLicenseExpiry  *time.Time
	PreferredLanguage    *string
	MarketingOptIn       *bool
	LoyaltyProgramMember *bool
	RiskLevel            *string
	Notes                *string
}

type AddAddressInput struct {
	AddressType    string
	StreetAddress1 string
	StreetAddress2 string
	City           string
	StateProvince  string
	PostalCode     string
	Country        string
	IsPrimary      bool
}

type CustomerService interface {
	CreateCustomer(input CreateCustomerInput) (*models.Customer, error)
	GetCustomer(id string) (*models.Customer, error)
	ListCustomers(filter repository.CustomerFilter) ([]models.Customer, int64, error)
	UpdateCustomer(id string, input UpdateCustomerInput) (*models.Customer, error)
	AddAddress(customerID string, input AddAddressInput) (*models.CustomerAddress, error)
	GetAddresses(customerID string) ([]models.CustomerAddress, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, userRepo repository.UserRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, userRepo: userRepo}
}

// CreateCustomer is the staff-facing path: it provisions the user account and
// the customer profile in one step. Customers who sign themselves up go
// through registration instead. A customer created without a password gets a
// temporary one the staff member hands over out of band.
func (s *customerService) CreateCustomer(input CreateCustomerInput) (*models.Customer, error) {
	if input.Email == "" || input.FirstName == "" || input.LastName == "" {
		return nil, invalidInput("email, first name and last name are required")
	}

	exists, err := s.userRepo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("user with this email already exists")
	}

	password := input.Password
	if password == "" {
		password = "temp123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	riskLevel := input.RiskLevel
	if riskLevel == "" {
		riskLevel = "low"
	}
	switch riskLevel {
	case "low", "medium", "high":
	default:
		return nil, invalidInput("risk level must be low, medium or high")
	}
	language := input.PreferredLanguage
	if language == "" {
		language = "en"
	}
	country := input.DriverLicenseCountry
	if country == "" {
		country = "USA"
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		DateOfBirth:  input.DateOfBirth,
		UserType:     models.UserTypeCustomer,
		Status:       models.UserStatusActive,
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
		RiskLevel:            riskLevel,
		Notes:                input.Notes,
	}
	if err := s.customerRepo.CreateWithUser(user, customer); err != nil {
		return nil, err
	}
	customer.User = user
	return customer, nil
}

func (s *customerService) GetCustomer(id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "customer")
	}
	return customer, nil
}

func (s *customerService) ListCustomers(filter repository.CustomerFilter) ([]models.Customer, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	return s.customerRepo.List(filter)
}

func (s *customerService) UpdateCustomer(id string, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "customer")
	}

	if input.DriverLicenseNumber != nil {
		customer.DriverLicenseNumber = *input.DriverLicenseNumber
	}
	if input.DriverLicenseState != nil {
		customer.DriverLicenseState = *input.DriverLicenseState
	}
	if input.DriverLicenseCountry != nil {
		customer.DriverLicenseCountry = *input.DriverLicenseCountry
	}
	if input.DriverLicenseExpiry != nil {
		customer.DriverLicenseExpiry = input.DriverLicenseExpiry
	}
	if input.PreferredLanguage != nil {
		customer.PreferredLanguage = *input.PreferredLanguage
	}
	if input.MarketingOptIn != nil {
		customer.MarketingOptIn = *input.MarketingOptIn
	}
	if input.LoyaltyProgramMember != nil {
		customer.LoyaltyProgramMember = *input.LoyaltyProgramMember
	}
	if input.RiskLevel != nil {
		switch *input.RiskLevel {
		case "low", "medium", "high":
			customer.RiskLevel = *input.RiskLevel
		default:
			return nil, invalidInput("risk level must be low, medium or high")
		}
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) AddAddress(customerID string, input AddAddressInput) (*models.CustomerAddress, error) {
	if _, err := s.customerRepo.GetByID(customerID); err != nil {
		return nil, wrapLookup(err, "customer")
	}
	if input.StreetAddress1 == "" || input.City == "" || input.Country == "" {
		return nil, invalidInput("street address, city and country are required")
	}
	addressType := input.AddressType
	if addressType == "" {
		addressType = "home"
	}

	address := &models.CustomerAddress{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		AddressType:    addressType,
		StreetAddress1: input.StreetAddress1,
		StreetAddress2: input.StreetAddress2,
		City:           input.City,
		StateProvince:  input.StateProvince,
		PostalCode:     input.PostalCode,
		Country:        input.Country,
		IsPrimary:      input.IsPrimary,
	}
	if err := s.customerRepo.AddAddress(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *customerService) GetAddresses(customerID string) ([]models.CustomerAddress, error) {
	if _, err := s.customerRepo.GetByID(customerID); err != nil {
		return nil, wrapLookup(err, "customer")
	}
	return s.customerRepo.GetAddresses(customerID)
}
