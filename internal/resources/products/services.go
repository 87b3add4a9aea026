package products

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrIDMismatch      = errors.New("product id in body does not match path")
)

const viewColumns = "products.product_id, products.product_name, products.supplier_id, " +
	"products.category_id, categories.category_name, products.quantity_per_unit, " +
	"products.unit_price, products.units_in_stock, products.units_on_order, " +
	"products.reorder_level, products.discontinued"

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) views(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("products").
		Select(viewColumns).
		Joins("JOIN categories ON categories.category_id = products.category_id").
		Order("products.product_id")
}

// ListWithCategory returns every product that has a category, with its name.
func (s *ProductService) ListWithCategory(ctx context.Context) ([]ProductView, error) {
	views := []ProductView{}
	if err := s.views(ctx).Scan(&views).Error; err != nil {
		return nil, resources.Persistence("list products", err)
	}
	return views, nil
}

// ByCategoryPrefix returns products whose category name starts with prefix.
func (s *ProductService) ByCategoryPrefix(ctx context.Context, prefix string) ([]ProductView, error) {
	views := []ProductView{}
	err := s.views(ctx).
		Where("categories.category_name LIKE ? ESCAPE '!'", resources.EscapeLike(prefix)+"%").
		Scan(&views).Error
	if err != nil {
		return nil, resources.Persistence("list products by category", err)
	}
	return views, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := s.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, resources.Persistence("get product", err)
	}
	return &product, nil
}

// Create inserts product with a store-generated id.
func (s *ProductService) Create(ctx context.Context, product *Product) error {
	product.ProductID = 0
	if err := resources.Validate(product); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return resources.Persistence("create product", err)
	}
	return nil
}

// Replace overwrites every column of product id. When no row changes the
// product is looked up again so a concurrent delete reports ErrProductNotFound.
func (s *ProductService) Replace(ctx context.Context, id int, product *Product) error {
	if product.ProductID != id {
		return ErrIDMismatch
	}
	if err := resources.Validate(product); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	result := db.Model(&Product{ProductID: id}).
		Select("*").
		Omit("ProductID", clause.Associations).
		Updates(product)
	if result.Error != nil {
		return resources.Persistence("update product", result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := s.exists(db, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&Product{}, "product_id = ?", id)
	if result.Error != nil {
		return resources.Persistence("delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) exists(db *gorm.DB, id int) (bool, error) {
	var count int64
	if err := db.Model(&Product{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, resources.Persistence("check product", err)
	}
	return count > 0, nil
}
