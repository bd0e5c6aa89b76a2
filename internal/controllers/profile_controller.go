package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"devconnector-be/internal/entities"
	"devconnector-be/internal/middleware"
	"devconnector-be/internal/models"
	"devconnector-be/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// currentUserID resolves the authenticated user's object id from the gin
// context. Responds and returns false when the identity is missing.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"msg": "No token, authorization denied",
		})
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(raw.(string))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"msg": "Token is not valid",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetProfiles handles GET /api/profile - the public feed with user name
// and avatar joined onto each profile
func (pc *ProfileController) GetProfiles(c *gin.Context) {
	profiles, err := pc.profileService.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("profile feed failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetMyProfile handles GET /api/profile/me
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := pc.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		log.Printf("own profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id. A malformed
// id is answered the same way as a missing profile.
func (pc *ProfileController) GetProfileByUserID(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
		return
	}

	profile, err := pc.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
			return
		}
		log.Printf("profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpsertProfile handles POST /api/profile - creates the profile on first
// call, partially merges on later calls
func (pc *ProfileController) UpsertProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	profile, err := pc.profileService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		log.Printf("profile upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteProfile handles DELETE /api/profile - removes the profile and the
// owning user account
func (pc *ProfileController) DeleteProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := pc.profileService.DeleteAccount(c.Request.Context(), userID); err != nil {
		log.Printf("account delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

// AddExperience handles POST /api/profile/experience
func (pc *ProfileController) AddExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorList("from is not a valid date"))
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorList("to is not a valid date"))
		return
	}

	exp := entities.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    deref(req.Location),
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: deref(req.Description),
	}

	if _, err := pc.profileService.AddExperience(c.Request.Context(), userID, exp); err != nil {
		pc.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Experience added"})
}

// DeleteExperience handles DELETE /api/profile/experience/:id
func (pc *ProfileController) DeleteExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Entry not found"})
		return
	}

	if _, err := pc.profileService.RemoveExperience(c.Request.Context(), userID, entryID); err != nil {
		pc.respondMutationError(c, err)
		return
	}

	c.String(http.StatusOK, "Experience deleted")
}

// AddEducation handles POST /api/profile/education
func (pc *ProfileController) AddEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorList("from is not a valid date"))
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorList("to is not a valid date"))
		return
	}

	edu := entities.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		Location:     deref(req.Location),
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  deref(req.Description),
	}

	if _, err := pc.profileService.AddEducation(c.Request.Context(), userID, edu); err != nil {
		pc.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Education added"})
}

// DeleteEducation handles DELETE /api/profile/education/:id
func (pc *ProfileController) DeleteEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Entry not found"})
		return
	}

	if _, err := pc.profileService.RemoveEducation(c.Request.Context(), userID, entryID); err != nil {
		pc.respondMutationError(c, err)
		return
	}

	c.String(http.StatusOK, "Education deleted")
}

func (pc *ProfileController) respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
	case errors.Is(err, service.ErrEntryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Entry not found"})
	default:
		log.Printf("profile mutation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
	}
}

// parseDate accepts the YYYY-MM-DD form used by clients and falls back to
// RFC 3339
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
