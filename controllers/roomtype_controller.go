package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

var roomTypeService services.RoomTypeService

func GetRoomTypes(c *gin.Context) {
	types, err := roomTypeService.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchRoomTypes", "could not fetch room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := roomTypeService.Create(rt); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.createRoomType", "failed to create room type")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func DeleteRoomType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidRoomTypeId", "room type id must be numeric")
		return
	}
	if err := roomTypeService.Delete(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.deleteRoomType", "failed to delete room type")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room type deleted"})
}
