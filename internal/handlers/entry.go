package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/db"
	"github.com/ucielsola/trackit/internal/models"
	"github.com/ucielsola/trackit/internal/types"
	"github.com/ucielsola/trackit/internal/utils"
	"gorm.io/gorm"
)

type CreateEntryRequest struct {
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	WorkedAt        *time.Time `json:"worked_at"`
}

type EntryResponse struct {
	ID              uint      `json:"id"`
	ProjectID       uint      `json:"project_id"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	WorkedAt        time.Time `json:"worked_at"`
}

func isValidEntryStatus(status string) bool {
	switch status {
	case types.EntryStatusBillable, types.EntryStatusPaid, types.EntryStatusPending, types.EntryStatusNonBillable:
		return true
	}

	return false
}

// findOwnedProject loads a project after verifying it belongs to the
// caller, writing the error response itself when it does not.
func findOwnedProject(ctx *gin.Context, userID string) (*models.Project, bool) {
	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project %d: %v", projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		}
		return nil, false
	}

	return &project, true
}

func ListEntries(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	var entries []models.Entry

	if err := db.DB.Where("project_id = ?", project.ID).Order("worked_at DESC").Find(&entries).Error; err != nil {
		log.Printf("Failed to fetch entries for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	response := make([]EntryResponse, 0, len(entries))

	for _, entry := range entries {
		response = append(response, EntryResponse{
			ID:              entry.ID,
			ProjectID:       entry.ProjectID,
			Description:     entry.Description,
			DurationMinutes: entry.DurationMinutes,
			Status:          entry.Status,
			WorkedAt:        entry.WorkedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"entries": response,
		"total":   len(response),
	})
}

func CreateEntry(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	var body CreateEntryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.DurationMinutes <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be positive"})
		return
	}

	status := body.Status

	if status == "" {
		status = types.EntryStatusPending
	}

	if !isValidEntryStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry status"})
		return
	}

	workedAt := time.Now()

	if body.WorkedAt != nil {
		workedAt = *body.WorkedAt
	}

	entry := models.Entry{
		ProjectID:       project.ID,
		UserID:          userID,
		Description:     body.Description,
		DurationMinutes: body.DurationMinutes,
		Status:          status,
		WorkedAt:        workedAt,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to create entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating entry"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"entry": EntryResponse{
			ID:              entry.ID,
			ProjectID:       entry.ProjectID,
			Description:     entry.Description,
			DurationMinutes: entry.DurationMinutes,
			Status:          entry.Status,
			WorkedAt:        entry.WorkedAt,
		},
	})
}
