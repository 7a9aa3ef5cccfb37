package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/db"
	"github.com/ucielsola/trackit/internal/models"
	"github.com/ucielsola/trackit/internal/stats"
	"github.com/ucielsola/trackit/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name       string   `json:"name"`
	ClientID   *uint    `json:"client_id"`
	HourlyRate *float64 `json:"hourly_rate"`
}

type UpdateProjectRequest struct {
	Name       *string  `json:"name"`
	ClientID   *uint    `json:"client_id"`
	HourlyRate *float64 `json:"hourly_rate"`
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sortBy := ctx.DefaultQuery("sort_by", stats.SortByName)
	order := stats.OrderAsc

	if ctx.Query("order") == stats.OrderDesc {
		order = stats.OrderDesc
	}

	var projects []models.Project

	if err := db.DB.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		log.Printf("Failed to fetch projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching projects"})
		return
	}

	response := make([]stats.ProjectWithStats, 0, len(projects))

	for _, project := range projects {
		response = append(response, stats.ProjectWithStats{
			ID:         project.ID,
			Name:       project.Name,
			CreatedAt:  project.CreatedAt,
			UserID:     project.UserID,
			ClientID:   project.ClientID,
			HourlyRate: project.HourlyRate,
		})
	}

	stats.SortProjects(response, sortBy, order)

	ctx.JSON(http.StatusOK, gin.H{
		"projects": response,
		"total":    len(response),
	})
}

func CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := trimName(body.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	if body.ClientID != nil && !clientExists(userID, *body.ClientID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Client not found"})
		return
	}

	project := models.Project{
		Name:       name,
		UserID:     userID,
		ClientID:   body.ClientID,
		HourlyRate: body.HourlyRate,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating project"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"project": stats.ProjectWithStats{
			ID:         project.ID,
			Name:       project.Name,
			CreatedAt:  project.CreatedAt,
			UserID:     project.UserID,
			ClientID:   project.ClientID,
			HourlyRate: project.HourlyRate,
		},
	})
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project %d: %v", projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		}
		return
	}

	if body.Name != nil {
		name := trimName(*body.Name)

		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		project.Name = name
	}

	if body.ClientID != nil {
		if !clientExists(userID, *body.ClientID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Client not found"})
			return
		}

		project.ClientID = body.ClientID
	}

	if body.HourlyRate != nil {
		project.HourlyRate = body.HourlyRate
	}

	if err := db.DB.Save(&project).Error; err != nil {
		log.Printf("Failed to update project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project": stats.ProjectWithStats{
			ID:         project.ID,
			Name:       project.Name,
			CreatedAt:  project.CreatedAt,
			UserID:     project.UserID,
			ClientID:   project.ClientID,
			HourlyRate: project.HourlyRate,
		},
	})
}

func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project %d: %v", projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// clientExists checks that the client id belongs to the caller, so a
// project can never point at another user's client.
func clientExists(userID string, clientID uint) bool {
	var count int64

	if err := db.DB.Model(&models.Client{}).Where("id = ? AND user_id = ?", clientID, userID).Count(&count).Error; err != nil {
		log.Printf("Failed to check client %d: %v", clientID, err)
		return false
	}

	return count > 0
}
