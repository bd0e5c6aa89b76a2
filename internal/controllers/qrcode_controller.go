package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"devconnector-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QRCodeController struct {
	profileService service.ProfileService
	frontendURL    string
}

func NewQRCodeController(profileService service.ProfileService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		profileService: profileService,
		frontendURL:    frontendURL,
	}
}

// GenerateQRCode handles GET /api/profile/user/:user_id/qrcode - renders a
// share QR code pointing at the public profile page
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
		return
	}

	if _, err := qc.profileService.GetByUserID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
			return
		}
		log.Printf("qrcode profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	profileURL := fmt.Sprintf("%s/profile/%s", qc.frontendURL, userID.Hex())

	// 256x256 pixels, medium error recovery
	pngData, err := qrcode.Encode(profileURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to generate QR code"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
