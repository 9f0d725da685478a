package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
	"github.com/shoppy-store/shoppy-api/utils"
)

// CatalogService manages products, parts, categories and characteristics.
// Repository-style methods return fully materialized aggregates (a product
// always carries its images and parts) so callers never chase lazy relations.
type CatalogService struct {
	db         *gorm.DB
	store      ImageStore
	productDir string
	partDir    string
}

// NewCatalogService creates a catalog service over the given database and
// image store
func NewCatalogService(db *gorm.DB, store ImageStore, productDir, partDir string) *CatalogService {
	return &CatalogService{db: db, store: store, productDir: productDir, partDir: partDir}
}

// ProductInput carries validated form data for creating or updating a product
type ProductInput struct {
	Name          string
	Price         float64
	Description   string
	SelectedParts string // ";"-separated "<category>_<part-id>" tokens
	Images        []*multipart.FileHeader
}

// PartInput carries validated form data for creating a part
type PartInput struct {
	Name            string
	Price           float64
	CategoryID      uint
	Characteristics []CharacteristicInput
	Images          []*multipart.FileHeader
}

// CharacteristicInput is one name/value pair attached to a new part
type CharacteristicInput struct {
	Name  string
	Value string
}

// ListCatalogProducts returns all admin-catalogued products with their images
// and parts
func (s *CatalogService) ListCatalogProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Images").Preload("Parts").
		Where("made_by_user = ?", false).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product with images, parts, part categories and
// characteristics materialized
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Images").
		Preload("Parts.Category").
		Preload("Parts.Characteristics.CharacteristicName").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// CreateProduct creates an admin-catalogued product with its parts and images
func (s *CatalogService) CreateProduct(input ProductInput) (*models.Product, error) {
	parts, err := s.resolveParts(input.SelectedParts)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(parts) > 0 {
			if err := tx.Model(&product).Association("Parts").Replace(parts); err != nil {
				return fmt.Errorf("failed to attach parts: %w", err)
			}
		}
		return s.saveImages(tx, input.Images, s.productDir, func(name string) interface{} {
			return &models.ProductImage{Name: name, ProductID: product.ID}
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

// UpdateProduct updates a product in place. The parts list is fully replaced,
// never merged. When any new image is supplied, all existing images are
// removed (best-effort file cleanup) and replaced by the uploads.
func (s *CatalogService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	parts, err := s.resolveParts(input.SelectedParts)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(input.Images) > 0 {
			for _, image := range product.Images {
				// Missing files are swallowed by the store
				if err := s.store.Delete(s.productDir, image.Name); err != nil {
					return err
				}
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to delete old images: %w", err)
			}
			if err := s.saveImages(tx, input.Images, s.productDir, func(name string) interface{} {
				return &models.ProductImage{Name: name, ProductID: product.ID}
			}); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"name":        input.Name,
			"price":       input.Price,
			"description": input.Description,
		}
		if err := tx.Model(&models.Product{ID: product.ID}).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		if err := tx.Model(&models.Product{ID: product.ID}).Association("Parts").Replace(parts); err != nil {
			return fmt.Errorf("failed to replace parts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(id)
}

// DeleteProduct removes a product, its images and any cart lines referencing
// it. A product referenced by any order line cannot be deleted.
func (s *CatalogService) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.OrderLine{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check order references: %w", err)
	}
	if refs > 0 {
		return &ConflictError{
			Code:    "PRODUCT_IN_ORDERS",
			Message: "You can't delete this product, some users have it in their orders.",
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, image := range product.Images {
			if err := s.store.Delete(s.productDir, image.Name); err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete images: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart lines: %w", err)
		}
		if err := tx.Model(&models.Product{ID: id}).Association("Parts").Clear(); err != nil {
			return fmt.Errorf("failed to clear parts: %w", err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// CreateCustomProduct synthesizes a user-composed PC from selected parts and
// puts it straight into the creator's cart. The stock image record points at
// the shared user-made-pc.jpg asset; no file is uploaded.
func (s *CatalogService) CreateCustomProduct(userID uint, price float64, quantity int, selectedParts string) (*models.Product, error) {
	if quantity < 1 {
		return nil, &ValidationError{Code: "INVALID_QUANTITY", Message: "Quantity must be at least 1"}
	}

	parts, err := s.resolveParts(selectedParts)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:       "Your PC",
		Price:      price,
		MadeByUser: true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(parts) > 0 {
			if err := tx.Model(&product).Association("Parts").Replace(parts); err != nil {
				return fmt.Errorf("failed to attach parts: %w", err)
			}
		}
		image := models.ProductImage{Name: "user-made-pc.jpg", ProductID: product.ID}
		if err := tx.Create(&image).Error; err != nil {
			return fmt.Errorf("failed to create image record: %w", err)
		}
		line := models.CartLine{UserID: userID, ProductID: product.ID, Quantity: quantity}
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("failed to add product to cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

// ListParts returns all parts with category, characteristics and images
func (s *CatalogService) ListParts() ([]models.Part, error) {
	var parts []models.Part
	err := s.db.Preload("Category").
		Preload("Characteristics.CharacteristicName").
		Preload("Images").
		Find(&parts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

// CreatePart creates a part with its characteristics and images
func (s *CatalogService) CreatePart(input PartInput) (*models.Part, error) {
	var category models.Category
	if err := s.db.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	// Resolve every characteristic label before writing anything
	characteristics := make([]models.Characteristic, 0, len(input.Characteristics))
	for _, c := range input.Characteristics {
		var name models.CharacteristicName
		err := s.db.Where("name = ?", c.Name).First(&name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{
				Code:    "UNKNOWN_CHARACTERISTIC",
				Message: fmt.Sprintf("Unknown characteristic name %q", c.Name),
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up characteristic name: %w", err)
		}
		characteristics = append(characteristics, models.Characteristic{
			CharacteristicNameID: name.ID,
			Value:                c.Value,
		})
	}

	part := models.Part{
		Name:       input.Name,
		Price:      input.Price,
		CategoryID: category.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&part).Error; err != nil {
			return fmt.Errorf("failed to create part: %w", err)
		}
		if len(characteristics) > 0 {
			if err := tx.Model(&part).Association("Characteristics").Replace(characteristics); err != nil {
				return fmt.Errorf("failed to attach characteristics: %w", err)
			}
		}
		return s.saveImages(tx, input.Images, s.partDir, func(name string) interface{} {
			return &models.PartImage{Name: name, PartID: part.ID}
		})
	})
	if err != nil {
		return nil, err
	}

	var created models.Part
	err = s.db.Preload("Category").
		Preload("Characteristics.CharacteristicName").
		Preload("Images").
		First(&created, part.ID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load part: %w", err)
	}
	return &created, nil
}

// ListCategories returns all part categories
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new part category
func (s *CatalogService) CreateCategory(name string) (*models.Category, error) {
	category := models.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// ListCharacteristicNames returns the catalog of characteristic labels
func (s *CatalogService) ListCharacteristicNames() ([]models.CharacteristicName, error) {
	var names []models.CharacteristicName
	if err := s.db.Find(&names).Error; err != nil {
		return nil, fmt.Errorf("failed to list characteristic names: %w", err)
	}
	return names, nil
}

// CreateCharacteristicName adds a label to the characteristic catalog
func (s *CatalogService) CreateCharacteristicName(name string) (*models.CharacteristicName, error) {
	cn := models.CharacteristicName{Name: name}
	if err := s.db.Create(&cn).Error; err != nil {
		return nil, fmt.Errorf("failed to create characteristic name: %w", err)
	}
	return &cn, nil
}

// resolveParts parses a ";"-separated "<category>_<part-id>" token list and
// loads the referenced parts. The category label is display-only; the id is
// the numeric segment after the last underscore. An empty token list is valid
// and resolves to no parts.
func (s *CatalogService) resolveParts(selectedParts string) ([]models.Part, error) {
	trimmed := strings.TrimSpace(selectedParts)
	if trimmed == "" {
		return nil, nil
	}

	var parts []models.Part
	for _, token := range strings.Split(trimmed, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		segments := strings.Split(token, "_")
		id, err := strconv.Atoi(segments[len(segments)-1])
		if err != nil {
			return nil, &ValidationError{
				Code:    "INVALID_PART_TOKEN",
				Message: fmt.Sprintf("Malformed part token %q", token),
			}
		}

		var part models.Part
		if err := s.db.First(&part, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{
					Code:    "PART_NOT_FOUND",
					Message: fmt.Sprintf("Part %d does not exist", id),
				}
			}
			return nil, fmt.Errorf("failed to load part: %w", err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// saveImages validates and stores uploads under dir, creating one image row
// per stored file via makeRecord
func (s *CatalogService) saveImages(tx *gorm.DB, files []*multipart.FileHeader, dir string, makeRecord func(name string) interface{}) error {
	for _, fileHeader := range files {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			return &ValidationError{Code: "INVALID_IMAGE", Message: err.Error()}
		}

		src, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}

		stored, err := s.store.Save(dir, utils.SanitizeFilename(fileHeader.Filename), src)
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to store image: %w", err)
		}

		if err := tx.Create(makeRecord(stored)).Error; err != nil {
			return fmt.Errorf("failed to create image record: %w", err)
		}
	}
	return nil
}
