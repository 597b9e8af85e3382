package services

import (
	"errors"
	"time"

	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// ProfileService handles user profiles and role lookups
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new profile service
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetOrCreateProfile returns the profile for an authenticated user, creating
// it from the token claims on first access
func (s *ProfileService) GetOrCreateProfile(user *models.AuthenticatedUser) (*models.ProfileResponse, error) {
	var profile models.Profile
	err := s.db.First(&profile, "user_id = ?", user.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			UserID:      user.UserID,
			Email:       user.Email,
			FullName:    user.Name,
			PhoneNumber: user.PhoneNumber,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, apierrors.DatabaseError("create profile", err)
		}
	} else if err != nil {
		return nil, apierrors.DatabaseError("fetch profile", err)
	}

	roles, err := s.GetRoles(user.UserID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileResponse{
		UserID:      profile.UserID,
		Email:       profile.Email,
		FullName:    profile.FullName,
		PhoneNumber: profile.PhoneNumber,
		Roles:       roles,
		CreatedAt:   profile.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetRoles returns the roles assigned to a user
func (s *ProfileService) GetRoles(userID string) ([]string, error) {
	var userRoles []models.UserRole
	if err := s.db.Where("user_id = ?", userID).Find(&userRoles).Error; err != nil {
		return nil, apierrors.DatabaseError("list roles", err)
	}

	roles := make([]string, len(userRoles))
	for i, ur := range userRoles {
		roles[i] = ur.Role
	}
	return roles, nil
}

// HasRole reports whether the user has the given role
func (s *ProfileService) HasRole(userID, role string) (bool, error) {
	var count int64
	err := s.db.Model(&models.UserRole{}).Where("user_id = ? AND role = ?", userID, role).Count(&count).Error
	if err != nil {
		return false, apierrors.DatabaseError("check role", err)
	}
	return count > 0, nil
}

// AssignRole grants a role to a user if not already assigned
func (s *ProfileService) AssignRole(userID, role string) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return apierrors.ValidationError("unknown role: " + role)
	}

	hasRole, err := s.HasRole(userID, role)
	if err != nil {
		return err
	}
	if hasRole {
		return nil
	}

	userRole := models.UserRole{UserID: userID, Role: role}
	if err := s.db.Create(&userRole).Error; err != nil {
		return apierrors.DatabaseError("assign role", err)
	}
	return nil
}
