package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
	"VentureLink/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService initializes the Cloudinary client used for avatar
// and idea image uploads.
func InitCloudinaryService() error {
	svc, err := services.NewCloudinaryService()
	if err != nil {
		return err
	}
	cloudinaryService = svc
	return nil
}

type UpdateProfileRequest struct {
	FullName string                 `json:"full_name"`
	Phone    string                 `json:"phone"`
	Profile  map[string]interface{} `json:"profile"`
}

type UpdateFCMTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// requiredProfileFields maps each role to the profile-document fields that
// must be present and non-empty before the profile counts as complete.
// Completeness gates whether contact details are denormalized into
// proposals.
var requiredProfileFields = map[models.UserRole][]string{
	models.RoleBusinessPerson:  {"company_name", "industry"},
	models.RoleInvestor:        {"investment_range", "preferred_sectors"},
	models.RoleBanker:          {"bank_name", "branch", "designation"},
	models.RoleBusinessAdvisor: {"expertise", "experience_years"},
}

// profileComplete reports whether doc satisfies the role's required fields.
func profileComplete(role models.UserRole, doc map[string]interface{}) bool {
	required, ok := requiredProfileFields[role]
	if !ok {
		return false
	}
	for _, field := range required {
		v, present := doc[field]
		if !present || v == nil {
			return false
		}
		if s, isStr := v.(string); isStr && s == "" {
			return false
		}
	}
	return true
}

// GetMyProfile returns the caller's account and profile document.
func GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	var profileDoc map[string]interface{}
	if user.Profile != "" {
		if err := json.Unmarshal([]byte(user.Profile), &profileDoc); err != nil {
			log.Printf("corrupt profile document for user %d: %v", user.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":          user.ID,
			"full_name":   user.FullName,
			"email":       user.Email,
			"phone":       user.Phone,
			"role":        user.Role,
			"avatar":      user.Avatar,
			"profile":     profileDoc,
			"is_complete": user.IsComplete,
		},
	})
}

// UpdateProfile updates the caller's common fields and role-specific profile
// document. The document's shape is dispatched by role; completeness is
// recomputed on every update.
func UpdateProfile(c *fiber.Ctx) error {
	req := new(UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if req.Profile != nil {
		profileJSON, err := json.Marshal(req.Profile)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid profile document",
			})
		}
		user.Profile = string(profileJSON)
		user.IsComplete = profileComplete(user.Role, req.Profile)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	if err := auditService.Record(database.DB, user.ID, models.AuditProfileUpdated,
		"user", user.ID, nil); err != nil {
		log.Printf("audit write failed for profile update of user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user": fiber.Map{
			"id":          user.ID,
			"full_name":   user.FullName,
			"phone":       user.Phone,
			"role":        user.Role,
			"is_complete": user.IsComplete,
		},
	})
}

// UpdateFCMToken registers the caller's push delivery token.
func UpdateFCMToken(c *fiber.Ctx) error {
	req := new(UpdateFCMTokenRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !validateRequest(c, req) {
		return nil
	}

	userID := c.Locals("user_id").(uint)

	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("fcm_token", req.Token).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register device token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Device token registered",
	})
}

// UploadAvatar uploads a profile picture to Cloudinary, replacing any
// previous one.
func UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	if cloudinaryService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "File uploads are not available",
		})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Avatar file is required",
		})
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	result, err := cloudinaryService.UploadImage(file, "avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload avatar",
		})
	}

	oldPublicID := user.AvatarPublicID
	user.Avatar = result.SecureURL
	user.AvatarPublicID = result.PublicID

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save avatar",
		})
	}

	if oldPublicID != "" {
		if err := cloudinaryService.DeleteImage(oldPublicID); err != nil {
			log.Printf("failed to delete old avatar %s: %v", oldPublicID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Avatar uploaded successfully",
		"avatar":  user.Avatar,
	})
}
