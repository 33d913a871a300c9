package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookwise/bookwise/models"
	"github.com/bookwise/bookwise/utils"
)

const hoursCacheTTL = 10 * time.Minute

type WorkingHoursController struct {
	DB    *gorm.DB
	Cache *redis.Client // nil disables caching
}

func NewWorkingHoursController(database *gorm.DB, cache *redis.Client) *WorkingHoursController {
	return &WorkingHoursController{DB: database, Cache: cache}
}

type hoursInput struct {
	Hours models.HourWindows `json:"hours"`
}

// Get returns a provider's weekly schedule. Providers get their own;
// customers must name the provider they are asking about.
func (w *WorkingHoursController) Get(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	role := c.Locals("role").(string)

	target := email
	if role != string(models.RoleProvider) {
		target = c.Query("provider_email")
	}
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Provider email required",
		})
	}

	if cached, ok := w.cacheGet(c.Context(), target); ok {
		return c.JSON(fiber.Map{"hours": cached})
	}

	var schedule models.WorkingHours
	err := w.DB.Where("provider_email = ?", target).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"hours": models.HourWindows{}})
	}
	if err != nil {
		log.Printf("Error fetching working hours: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}

	w.cacheSet(c.Context(), target, schedule.Hours)

	return c.JSON(fiber.Map{"hours": schedule.Hours})
}

// Set fully replaces the calling provider's schedule. Windows are
// validated before they displace the stored ones; there is no merge.
func (w *WorkingHoursController) Set(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	input := new(hoursInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if err := utils.ValidateWindows(input.Hours); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	schedule := models.WorkingHours{
		ProviderEmail: email,
		Hours:         input.Hours,
	}
	err := w.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"hours", "updated_at"}),
	}).Create(&schedule).Error
	if err != nil {
		log.Printf("Error saving working hours: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}

	w.cacheInvalidate(c.Context(), email)

	return c.JSON(fiber.Map{"message": "Working hours saved successfully"})
}

func (w *WorkingHoursController) cacheGet(ctx context.Context, provider string) (models.HourWindows, bool) {
	if w.Cache == nil {
		return nil, false
	}
	raw, err := w.Cache.Get(ctx, hoursCacheKey(provider)).Result()
	if err != nil {
		return nil, false
	}
	var hours models.HourWindows
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, false
	}
	return hours, true
}

func (w *WorkingHoursController) cacheSet(ctx context.Context, provider string, hours models.HourWindows) {
	if w.Cache == nil {
		return
	}
	raw, err := json.Marshal(hours)
	if err != nil {
		return
	}
	if err := w.Cache.Set(ctx, hoursCacheKey(provider), raw, hoursCacheTTL).Err(); err != nil {
		log.Printf("Error caching working hours for %s: %v", provider, err)
	}
}

func (w *WorkingHoursController) cacheInvalidate(ctx context.Context, provider string) {
	if w.Cache == nil {
		return
	}
	if err := w.Cache.Del(ctx, hoursCacheKey(provider)).Err(); err != nil {
		log.Printf("Error invalidating working hours for %s: %v", provider, err)
	}
}

func hoursCacheKey(provider string) string {
	return "working-hours:" + provider
}
