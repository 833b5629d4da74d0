package repository

import (
	"rental_erp/internal/models"

	"gorm.io/gorm"
)

type CustomerFilter struct {
	Search  string
	Page    int
	PerPage int
}

type CustomerRepository interface {
	Create(customer *models.Customer) error
	CreateWithUser(user *models.User, customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	List(filter CustomerFilter) ([]models.Customer, int64, error)
	Update(customer *models.Customer) error
	AddAddress(address *models.CustomerAddress) error
	GetAddresses(customerID string) ([]models.CustomerAddress, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// CreateWithUser persists the account and its customer profile in one
// transaction so a failed profile insert never leaves an orphaned user.
func (r *customerRepository) CreateWithUser(user *models.User, customer *models.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(customer).Error
	})
}

func (r *customerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Preload("User").First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(filter CustomerFilter) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{}).Preload("User")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN users ON users.id = customers.id").
			Where("customers.customer_number ILIKE ? OR users.email ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ?",
				pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	err := query.Order("customers.customer_number").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&customers).Error
	return customers, total, err
}

func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepository) AddAddress(address *models.CustomerAddress) error {
	return r.db.Create(address).Error
}

func (r *customerRepository) GetAddresses(customerID string) ([]models.CustomerAddress, error) {
	var addresses []models.CustomerAddress
	err := r.db.Where("customer_id = ?", customerID).Order("is_primary DESC, created_at").Find(&addresses).Error
	return addresses, err
}
