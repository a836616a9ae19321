package handlers

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/dormmarket/dormmarket-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
	store       *storage.Storage
	db          *gorm.DB
}

func NewAuthHandler(authService *services.AuthService, store *storage.Storage, db *gorm.DB) *AuthHandler {
	return &AuthHandler{authService: authService, store: store, db: db}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		return fail(c, err)
	}

	token, err := services.IssueToken(h.db, user.ID, "auth_token")
	if err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "User registered successfully",
		"user":         user,
		"access_token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	token, user, err := h.authService.Login(&req, false)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid login details",
			})
		case errors.Is(err, services.ErrAccountDeactivated):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Your account is deactivated. Please contact support.",
			})
		default:
			return serverError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"user":         user,
		"access_token": token,
	})
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	token, user, err := h.authService.Login(&req, true)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid login details",
			})
		case errors.Is(err, services.ErrNotAdmin):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized: Only administrators can log in here.",
			})
		case errors.Is(err, services.ErrAccountDeactivated):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Your admin account is deactivated. Please contact support.",
			})
		default:
			return serverError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"user":         user,
		"access_token": token,
	})
}

// Logout revokes exactly the token that authenticated this request. Other
// sessions stay valid.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)
	if err := services.RevokeToken(h.db, p.TokenID); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)
	return c.JSON(fiber.Map{"user": p.User})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.UpdateProfileRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	var pictureURL *string
	if file := profilePictureFile(c); file != nil {
		path, err := h.store.Save("profile-pictures", file)
		if err != nil {
			return serverError(c, err)
		}
		url := h.store.PublicURL(path)
		pictureURL = &url
	}

	user, err := h.authService.UpdateProfile(p.ID, &req, pictureURL)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func profilePictureFile(c *fiber.Ctx) *multipart.FileHeader {
	if !strings.Contains(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		return nil
	}
	file, err := c.FormFile("profile_picture")
	if err != nil {
		return nil
	}
	return file
}

func (h *AuthHandler) Language(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	return c.JSON(fiber.Map{
		"language": p.User.Language,
	})
}

func (h *AuthHandler) UpdateLanguage(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.LanguageRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	if err := h.authService.UpdateLanguage(p.User, req.Language); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Language updated successfully",
		"user":    p.User,
	})
}

func (h *AuthHandler) UniversityOptions(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var q dto.UniversityOptionsQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	opts, err := h.authService.UniversityOptions(p.User, q.UniversityID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"current_university_id": opts.CurrentUniversityID,
		"current_dormitory_id":  opts.CurrentDormitoryID,
		"universities":          opts.Universities,
		"dormitories":           opts.Dormitories,
	})
}

func (h *AuthHandler) UpdateUniversitySettings(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.UniversitySettingsRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	university, dormitory, err := h.authService.UpdateUniversitySettings(p.User, &req)
	if err != nil {
		if errors.Is(err, services.ErrDormitoryNotFound) {
			return notFound(c, "The selected dormitory does not belong to this university.")
		}
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "University settings updated successfully",
		"university": university,
		"dormitory":  dormitory,
	})
}
