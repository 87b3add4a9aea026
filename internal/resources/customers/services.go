package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCompanyExists    = errors.New("customer already exists")
	ErrIDMismatch       = errors.New("customer id in body does not match path")
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) List(ctx context.Context) ([]Customer, error) {
	customers := []Customer{}
	if err := s.db.WithContext(ctx).Order("customer_id").Find(&customers).Error; err != nil {
		return nil, resources.Persistence("list customers", err)
	}
	return customers, nil
}

// Orders returns the orders of customer id, or ErrCustomerNotFound.
func (s *CustomerService) Orders(ctx context.Context, id string) ([]Order, error) {
	db := s.db.WithContext(ctx)
	if _, err := findCustomer(db, id); err != nil {
		return nil, err
	}

	orders := []Order{}
	if err := db.Where("customer_id = ?", id).Order("order_id").Find(&orders).Error; err != nil {
		return nil, resources.Persistence("list orders", err)
	}
	return orders, nil
}

// SearchByCompany returns customers whose company name contains search.
// The match is case-sensitive on every store.
func (s *CustomerService) SearchByCompany(ctx context.Context, search string) ([]Customer, error) {
	var candidates []Customer
	err := s.db.WithContext(ctx).
		Where("company_name LIKE ? ESCAPE '!'", "%"+resources.EscapeLike(search)+"%").
		Order("customer_id").
		Find(&candidates).Error
	if err != nil {
		return nil, resources.Persistence("search customers", err)
	}

	// LIKE folds case on SQLite and MySQL.
	matches := make([]Customer, 0, len(candidates))
	for _, c := range candidates {
		if strings.Contains(c.CompanyName, search) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// Create inserts customer unless another customer already uses its company name.
func (s *CustomerService) Create(ctx context.Context, customer *Customer) error {
	customer.Orders = nil
	if err := resources.Validate(customer); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := companyTaken(tx, customer.CompanyName, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrCompanyExists
		}
		if err := tx.Omit(clause.Associations).Create(customer).Error; err != nil {
			return resources.Persistence("create customer", err)
		}
		return nil
	})
}

// Replace overwrites every column of customer id with replacement. Fields
// absent from replacement are cleared. Orders are left untouched.
func (s *CustomerService) Replace(ctx context.Context, id string, replacement *Customer) error {
	replacement.Orders = nil

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCustomer(tx, id); err != nil {
			return err
		}
		if replacement.CustomerID != "" && replacement.CustomerID != id {
			return ErrIDMismatch
		}
		replacement.CustomerID = id
		if err := resources.Validate(replacement); err != nil {
			return err
		}

		taken, err := companyTaken(tx, replacement.CompanyName, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrCompanyExists
		}

		if err := tx.Omit(clause.Associations).Save(replacement).Error; err != nil {
			return resources.Persistence("update customer", err)
		}
		return nil
	})
}

// Delete removes customer id together with its orders and returns the removed row.
func (s *CustomerService) Delete(ctx context.Context, id string) (*Customer, error) {
	var deleted *Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := findCustomer(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&Order{}).Error; err != nil {
			return resources.Persistence("delete orders", err)
		}
		if err := tx.Delete(customer).Error; err != nil {
			return resources.Persistence("delete customer", err)
		}
		deleted = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findCustomer(db *gorm.DB, id string) (*Customer, error) {
	var customer Customer
	if err := db.Where("customer_id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, resources.Persistence("find customer", err)
	}
	return &customer, nil
}

func companyTaken(db *gorm.DB, companyName, exceptID string) (bool, error) {
	q := db.Model(&Customer{}).Where("company_name = ?", companyName)
	if exceptID != "" {
		q = q.Where("customer_id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, resources.Persistence("check company name", err)
	}
	return count > 0, nil
}
