package services

import (
	"github.com/google/uuid"
	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// PackageService handles package catalog operations
type PackageService struct {
	db *gorm.DB
}

// NewPackageService creates a new package service
func NewPackageService(db *gorm.DB) *PackageService {
	return &PackageService{db: db}
}

// GetActivePackages returns all packages available for selection, cheapest first
func (s *PackageService) GetActivePackages() ([]models.Package, error) {
	var packages []models.Package
	err := s.db.Where("active = ?", true).Order("price ASC").Find(&packages).Error
	if err != nil {
		return nil, apierrors.DatabaseError("list packages", err)
	}
	return packages, nil
}

// GetPackage retrieves a package by ID
func (s *PackageService) GetPackage(packageID string) (*models.Package, error) {
	var pkg models.Package
	err := s.db.First(&pkg, "package_id = ?", packageID).Error
	if err != nil {
		return nil, apierrors.FromGormError(err, "package", "fetch package")
	}
	return &pkg, nil
}

// CreatePackage creates a new package
func (s *PackageService) CreatePackage(req *models.CreatePackageRequest) (*models.Package, error) {
	if req.Name == "" {
		return nil, apierrors.ValidationError("name is required")
	}
	if req.Price < 0 {
		return nil, apierrors.ValidationError("price must not be negative")
	}
	if req.DurationMonths <= 0 {
		return nil, apierrors.ValidationError("durationMonths must be positive")
	}

	currency := req.Currency
	if currency == "" {
		currency = "IDR"
	}

	pkg := models.Package{
		PackageID:      "pkg_" + uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       currency,
		DurationMonths: req.DurationMonths,
		Features:       req.Features,
		Active:         true,
	}

	if err := s.db.Create(&pkg).Error; err != nil {
		return nil, apierrors.DatabaseError("create package", err)
	}
	return &pkg, nil
}

// UpdatePackage applies a partial update to a package
func (s *PackageService) UpdatePackage(packageID string, req *models.UpdatePackageRequest) (*models.Package, error) {
	var pkg models.Package
	err := s.db.First(&pkg, "package_id = ?", packageID).Error
	if err != nil {
		return nil, apierrors.FromGormError(err, "package", "fetch package")
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apierrors.ValidationError("price must not be negative")
		}
		pkg.Price = *req.Price
	}
	if req.Currency != nil {
		pkg.Currency = *req.Currency
	}
	if req.DurationMonths != nil {
		if *req.DurationMonths <= 0 {
			return nil, apierrors.ValidationError("durationMonths must be positive")
		}
		pkg.DurationMonths = *req.DurationMonths
	}
	if req.Features != nil {
		pkg.Features = *req.Features
	}
	if req.Active != nil {
		pkg.Active = *req.Active
	}

	if err := s.db.Save(&pkg).Error; err != nil {
		return nil, apierrors.DatabaseError("update package", err)
	}
	return &pkg, nil
}
