package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/config"
	"frontdesk-backend/logger"
	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

// ----------------------------------------------------
// Rooms (GET/POST/PUT/DELETE /api/rooms)
// ----------------------------------------------------

var roomService services.RoomService

func GetRooms(c *gin.Context) {
	rooms, err := roomService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchRooms", "message": "could not fetch rooms"}})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request body", "details": err.Error()}})
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": "roomNumber is required"}})
		return
	}
	if room.PricePerNight < 0 || room.RatePerHour < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.negativeAmount", "message": "room rates must not be negative"}})
		return
	}

	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := config.DB.First(&rt, *room.RoomTypeID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": "invalid roomTypeId"}})
			return
		}
	}
	if room.Status == "" {
		room.Status = "Available"
	}

	if result := config.DB.Create(&room); result.Error != nil {
		if strings.Contains(result.Error.Error(), "Duplicate entry") || strings.Contains(result.Error.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.duplicateRoom", "message": "room number already exists"}})
			return
		}
		logger.Log.WithError(result.Error).Error("CreateRoom failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.createRoom", "message": "failed to create room"}})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func UpdateRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidRoomId", "message": "room id must be numeric"}})
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.roomNotFound", "message": "room not found"}})
		return
	}

	var payload models.Room
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request body", "details": err.Error()}})
		return
	}
	if payload.PricePerNight < 0 || payload.RatePerHour < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.negativeAmount", "message": "room rates must not be negative"}})
		return
	}

	payload.ID = room.ID
	if err := config.DB.Model(&room).Updates(payload).Error; err != nil {
		logger.Log.WithError(err).Error("UpdateRoom failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.updateRoom", "message": "failed to update room"}})
		return
	}
	c.JSON(http.StatusOK, room)
}

func DeleteRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidRoomId", "message": "room id must be numeric"}})
		return
	}
	if err := roomService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.deleteRoom", "message": "failed to delete room"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "room deleted"})
}
