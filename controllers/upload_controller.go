package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/fundspark/fundspark-go/config"
	utils "github.com/fundspark/fundspark-go/utils"
)

// ---------------- UPLOAD ----------------
func UploadImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadToCloudinary(file, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "image upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Image uploaded successfully",
			"data":    gin.H{"url": url},
		})
	}
}
