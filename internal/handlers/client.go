package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/db"
	"github.com/ucielsola/trackit/internal/models"
	"github.com/ucielsola/trackit/internal/stats"
	"github.com/ucielsola/trackit/internal/utils"
	"gorm.io/gorm"
)

func trimName(name string) string {
	return strings.TrimSpace(name)
}

type CreateClientRequest struct {
	Name string `json:"name"`
}

type UpdateClientRequest struct {
	Name string `json:"name"`
}

func ListClients(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeStats := ctx.Query("include_stats") == "true"
	sortBy := ctx.DefaultQuery("sort_by", stats.SortByName)
	order := stats.OrderAsc

	if ctx.Query("order") == stats.OrderDesc {
		order = stats.OrderDesc
	}

	query := db.DB.Where("user_id = ?", userID)

	// Count-only shape preloads just the projects; the stats shape
	// additionally needs their entries.
	if includeStats {
		query = query.Preload("Projects.Entries")
	} else {
		query = query.Preload("Projects")
	}

	var clients []models.Client

	if err := query.Find(&clients).Error; err != nil {
		log.Printf("Failed to fetch clients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching clients"})
		return
	}

	clientsWithStats := stats.BuildClientsStats(clients, includeStats)
	stats.SortClients(clientsWithStats, sortBy, order)

	ctx.JSON(http.StatusOK, gin.H{
		"clients": clientsWithStats,
		"total":   len(clientsWithStats),
	})
}

func CreateClient(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body CreateClientRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := trimName(body.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	client := models.Client{
		Name:   name,
		UserID: userID,
	}

	if err := db.DB.Create(&client).Error; err != nil {
		log.Printf("Failed to create client: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating client"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"client": stats.BuildClientStats(client, false),
	})
}

func GetClient(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clientID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	includeStats := ctx.Query("include_stats") == "true"

	query := db.DB.Where("id = ? AND user_id = ?", clientID, userID)

	if includeStats {
		query = query.Preload("Projects.Entries")
	} else {
		query = query.Preload("Projects")
	}

	var client models.Client

	if err := query.First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			log.Printf("Failed to fetch client %d: %v", clientID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching client"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"client": stats.BuildClientStats(client, includeStats),
	})
}

func UpdateClient(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clientID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateClientRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := trimName(body.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	var client models.Client

	if err := db.DB.Preload("Projects").Where("id = ? AND user_id = ?", clientID, userID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			log.Printf("Failed to fetch client %d: %v", clientID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching client"})
		}
		return
	}

	client.Name = name

	if err := db.DB.Save(&client).Error; err != nil {
		log.Printf("Failed to update client %d: %v", clientID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating client"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"client": stats.BuildClientStats(client, false),
	})
}

func DeleteClient(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clientID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client

	if err := db.DB.Where("id = ? AND user_id = ?", clientID, userID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			log.Printf("Failed to fetch client %d: %v", clientID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching client"})
		}
		return
	}

	var projectCount int64

	if err := db.DB.Model(&models.Project{}).Where("client_id = ?", client.ID).Count(&projectCount).Error; err != nil {
		log.Printf("Failed to count projects for client %d: %v", clientID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking projects"})
		return
	}

	if projectCount > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a client with associated projects"})
		return
	}

	if err := db.DB.Delete(&client).Error; err != nil {
		log.Printf("Failed to delete client %d: %v", clientID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting client"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
