package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/fundspark/fundspark-go/config"
	utils "github.com/fundspark/fundspark-go/utils"
)

// ---------------- SEND ----------------
//
// Pass-through send; delivery itself is the mail provider's problem.
func SendEmail(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			To      string `json:"to"`
			Subject string `json:"subject"`
			Text    string `json:"text"`
			HTML    string `json:"html"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.To == "" || input.Subject == "" || (input.Text == "" && input.HTML == "") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}

		body := input.HTML
		if body == "" {
			body = input.Text
		}

		if err := utils.SendEmail(input.To, input.Subject, body); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error sending email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Email sent successfully",
		})
	}
}
