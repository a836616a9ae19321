package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid login details")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrNotAdmin           = errors.New("only administrators can log in here")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Signup(req *dto.SignupRequest) (*models.User, error) {
	fieldErrs := validation.Errors{}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		fieldErrs.Add("username", "The username has already been taken.")
	}

	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		fieldErrs.Add("email", "The email has already been taken.")
	}

	if req.DormitoryID != nil {
		var dormCount int64
		s.db.Model(&models.Dormitory{}).Where("id = ?", *req.DormitoryID).Count(&dormCount)
		if dormCount == 0 {
			fieldErrs.Add("dormitory_id", "The selected dormitory_id is invalid.")
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hash),
		DormitoryID: req.DormitoryID,
		Role:        models.RoleUser,
		Status:      models.StatusActive,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login authenticates a marketplace user and issues a fresh token. requireAdmin
// switches the check to the admin surface; user logins also stamp
// last_login_at.
func (s *AuthService) Login(req *dto.LoginRequest, requireAdmin bool) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if requireAdmin && user.Role != models.RoleAdmin {
		return "", nil, ErrNotAdmin
	}

	if user.Status == models.StatusInactive {
		return "", nil, ErrAccountDeactivated
	}

	tokenName := "auth_token"
	if requireAdmin {
		tokenName = "admin_auth_token"
	} else {
		now := time.Now()
		s.db.Model(&user).Update("last_login_at", now)
	}

	token, err := IssueToken(s.db, user.ID, tokenName)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

func (s *AuthService) UpdateProfile(userID uint, req *dto.UpdateProfileRequest, profilePictureURL *string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	fieldErrs := validation.Errors{}

	if req.Username != nil {
		var count int64
		s.db.Model(&models.User{}).Where("username = ? AND id <> ?", *req.Username, userID).Count(&count)
		if count > 0 {
			fieldErrs.Add("username", "The username has already been taken.")
		}
	}

	if req.Email != nil {
		var count int64
		s.db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, userID).Count(&count)
		if count > 0 {
			fieldErrs.Add("email", "The email has already been taken.")
		}
	}

	if req.StudentID != nil {
		var count int64
		s.db.Model(&models.User{}).Where("student_id = ? AND id <> ?", *req.StudentID, userID).Count(&count)
		if count > 0 {
			fieldErrs.Add("student_id", "The student_id has already been taken.")
		}
	}

	if req.DormitoryID != nil {
		var count int64
		s.db.Model(&models.Dormitory{}).Where("id = ?", *req.DormitoryID).Count(&count)
		if count == 0 {
			fieldErrs.Add("dormitory_id", "The selected dormitory_id is invalid.")
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.DormitoryID != nil {
		user.DormitoryID = req.DormitoryID
	}
	if profilePictureURL != nil {
		user.ProfilePicture = profilePictureURL
	} else if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.StudentID != nil {
		user.StudentID = req.StudentID
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.DateOfBirth != nil {
		if t, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			user.DateOfBirth = &t
		}
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Language != nil {
		user.Language = req.Language
	}
	if req.Timezone != nil {
		user.Timezone = req.Timezone
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

func (s *AuthService) UpdateLanguage(user *models.User, language string) error {
	if err := s.db.Model(user).Update("language", language).Error; err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}
	user.Language = &language
	return nil
}

// UniversityOptions backs the settings screen: all universities, the
// dormitories of an optionally selected university, and the user's current
// pair.
type UniversityOptions struct {
	CurrentUniversityID *uint
	CurrentDormitoryID  *uint
	Universities        []models.University
	Dormitories         []models.Dormitory
}

func (s *AuthService) UniversityOptions(user *models.User, selectedUniversityID *uint) (*UniversityOptions, error) {
	if selectedUniversityID != nil {
		var count int64
		s.db.Model(&models.University{}).Where("id = ?", *selectedUniversityID).Count(&count)
		if count == 0 {
			return nil, &validation.Error{Fields: validation.One("university_id", "The selected university_id is invalid.")}
		}
	}

	opts := &UniversityOptions{
		CurrentDormitoryID: user.DormitoryID,
		Universities:       []models.University{},
		Dormitories:        []models.Dormitory{},
	}

	if err := s.db.Order("name").Find(&opts.Universities).Error; err != nil {
		return nil, err
	}

	if selectedUniversityID != nil {
		if err := s.db.Where("university_id = ?", *selectedUniversityID).
			Order("dormitory_name").Find(&opts.Dormitories).Error; err != nil {
			return nil, err
		}
	}

	if user.DormitoryID != nil {
		var dorm models.Dormitory
		if err := s.db.First(&dorm, *user.DormitoryID).Error; err == nil {
			opts.CurrentUniversityID = &dorm.UniversityID
		}
	}

	return opts, nil
}

// UpdateUniversitySettings sets the user's dormitory after verifying it
// belongs to the given university.
func (s *AuthService) UpdateUniversitySettings(user *models.User, req *dto.UniversitySettingsRequest) (*models.University, *models.Dormitory, error) {
	fieldErrs := validation.Errors{}

	var count int64
	s.db.Model(&models.University{}).Where("id = ?", req.UniversityID).Count(&count)
	if count == 0 {
		fieldErrs.Add("university_id", "The selected university_id is invalid.")
	}

	s.db.Model(&models.Dormitory{}).Where("id = ?", req.DormitoryID).Count(&count)
	if count == 0 {
		fieldErrs.Add("dormitory_id", "The selected dormitory_id is invalid.")
	}

	if len(fieldErrs) > 0 {
		return nil, nil, &validation.Error{Fields: fieldErrs}
	}

	var dorm models.Dormitory
	if err := s.db.Where("id = ? AND university_id = ?", req.DormitoryID, req.UniversityID).
		First(&dorm).Error; err != nil {
		return nil, nil, ErrDormitoryNotFound
	}

	if err := s.db.Model(user).Update("dormitory_id", dorm.ID).Error; err != nil {
		return nil, nil, err
	}
	user.DormitoryID = &dorm.ID

	var university models.University
	if err := s.db.First(&university, req.UniversityID).Error; err != nil {
		return nil, nil, err
	}

	return &university, &dorm, nil
}
