package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnector-be/internal/entities"
	"devconnector-be/internal/middleware"
	"devconnector-be/internal/models"
	"devconnector-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProfileService struct {
	profile *entities.Profile
	feed    []*entities.Profile
	err     error

	removedEntry primitive.ObjectID
}

func (f *fakeProfileService) Upsert(_ context.Context, _ primitive.ObjectID, _ *models.ProfileRequest) (*entities.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) AddExperience(_ context.Context, _ primitive.ObjectID, _ entities.Experience) (*entities.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) AddEducation(_ context.Context, _ primitive.ObjectID, _ entities.Education) (*entities.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) RemoveExperience(_ context.Context, _, entryID primitive.ObjectID) (*entities.Profile, error) {
	f.removedEntry = entryID
	return f.profile, f.err
}

func (f *fakeProfileService) RemoveEducation(_ context.Context, _, entryID primitive.ObjectID) (*entities.Profile, error) {
	f.removedEntry = entryID
	return f.profile, f.err
}

func (f *fakeProfileService) DeleteAccount(_ context.Context, _ primitive.ObjectID) error {
	return f.err
}

func (f *fakeProfileService) GetAll(_ context.Context) ([]*entities.Profile, error) {
	return f.feed, f.err
}

func (f *fakeProfileService) GetByUserID(_ context.Context, _ primitive.ObjectID) (*entities.Profile, error) {
	return f.profile, f.err
}

// newProfileTestRouter wires every profile route; authed mimics the auth
// middleware by attaching a fixed user id
func newProfileTestRouter(svc service.ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewProfileController(svc)

	authed := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, primitive.NewObjectID().Hex())
	}

	router.GET("/api/profile", controller.GetProfiles)
	router.GET("/api/profile/user/:user_id", controller.GetProfileByUserID)
	router.GET("/api/profile/me", authed, controller.GetMyProfile)
	router.POST("/api/profile", authed, controller.UpsertProfile)
	router.DELETE("/api/profile", authed, controller.DeleteProfile)
	router.POST("/api/profile/experience", authed, controller.AddExperience)
	router.DELETE("/api/profile/experience/:id", authed, controller.DeleteExperience)
	router.POST("/api/profile/education", authed, controller.AddEducation)
	router.DELETE("/api/profile/education/:id", authed, controller.DeleteEducation)
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetProfilesFeed(t *testing.T) {
	t.Parallel()

	router := newProfileTestRouter(&fakeProfileService{
		feed: []*entities.Profile{
			{Status: "Developer", Skills: []string{"go"}, UserName: "Ada", UserAvatar: "https://example.com/ada.png"},
		},
	})

	w := doRequest(router, http.MethodGet, "/api/profile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")
	assert.Contains(t, w.Body.String(), "ada.png")
}

func TestGetMyProfileNotFound(t *testing.T) {
	t.Parallel()

	router := newProfileTestRouter(&fakeProfileService{err: service.ErrProfileNotFound})

	w := doRequest(router, http.MethodGet, "/api/profile/me")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "There is no profile for this user")
}

func TestGetProfileByUserID(t *testing.T) {
	t.Parallel()

	t.Run("malformed id", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{})
		w := doRequest(router, http.MethodGet, "/api/profile/user/not-a-hex-id")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Profile not found")
	})

	t.Run("unknown user", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{err: service.ErrProfileNotFound})
		w := doRequest(router, http.MethodGet, "/api/profile/user/"+primitive.NewObjectID().Hex())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Profile not found")
	})

	t.Run("found", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{
			profile: &entities.Profile{Status: "Developer", Skills: []string{"go", "mongo"}},
		})
		w := doRequest(router, http.MethodGet, "/api/profile/user/"+primitive.NewObjectID().Hex())
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Developer")
	})
}

func TestUpsertProfileValidation(t *testing.T) {
	t.Parallel()

	router := newProfileTestRouter(&fakeProfileService{})

	// Status and skills are required
	w := postJSON(router, "/api/profile", `{"company":"Acme"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")
	assert.Contains(t, w.Body.String(), "status")
	assert.Contains(t, w.Body.String(), "skills")
}

func TestUpsertProfileSuccess(t *testing.T) {
	t.Parallel()

	router := newProfileTestRouter(&fakeProfileService{
		profile: &entities.Profile{Status: "Developer", Skills: []string{"go"}},
	})

	w := postJSON(router, "/api/profile", `{"status":"Developer","skills":"go"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Developer")
}

func TestDeleteProfile(t *testing.T) {
	t.Parallel()

	router := newProfileTestRouter(&fakeProfileService{})

	w := doRequest(router, http.MethodDelete, "/api/profile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User deleted")
}

func TestAddExperience(t *testing.T) {
	t.Parallel()

	t.Run("missing fields", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{})
		w := postJSON(router, "/api/profile/experience", `{"title":"Engineer"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "company")
		assert.Contains(t, w.Body.String(), "from")
	})

	t.Run("bad date", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{})
		w := postJSON(router, "/api/profile/experience",
			`{"title":"Engineer","company":"Acme","from":"last summer"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "from is not a valid date")
	})

	t.Run("no profile yet", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{err: service.ErrProfileNotFound})
		w := postJSON(router, "/api/profile/experience",
			`{"title":"Engineer","company":"Acme","from":"2020-01-01"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "There is no profile for this user")
	})

	t.Run("success", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{profile: &entities.Profile{}})
		w := postJSON(router, "/api/profile/experience",
			`{"title":"Engineer","company":"Acme","from":"2020-01-01","to":"2022-06-30"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Experience added")
	})
}

func TestDeleteExperience(t *testing.T) {
	t.Parallel()

	t.Run("malformed id", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{})
		w := doRequest(router, http.MethodDelete, "/api/profile/experience/not-a-hex-id")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Entry not found")
	})

	t.Run("unknown entry", func(t *testing.T) {
		router := newProfileTestRouter(&fakeProfileService{err: service.ErrEntryNotFound})
		w := doRequest(router, http.MethodDelete, "/api/profile/experience/"+primitive.NewObjectID().Hex())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Entry not found")
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeProfileService{profile: &entities.Profile{}}
		router := newProfileTestRouter(svc)
		entryID := primitive.NewObjectID()

		w := doRequest(router, http.MethodDelete, "/api/profile/experience/"+entryID.Hex())
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Experience deleted", w.Body.String())
		assert.Equal(t, entryID, svc.removedEntry)
	})
}

func TestAddAndDeleteEducation(t *testing.T) {
	t.Parallel()

	svc := &fakeProfileService{profile: &entities.Profile{}}
	router := newProfileTestRouter(svc)

	w := postJSON(router, "/api/profile/education",
		`{"school":"MIT","degree":"BSc","fieldofstudy":"CS","from":"2015-09-01"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Education added")

	w = doRequest(router, http.MethodDelete, "/api/profile/education/"+primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Education deleted", w.Body.String())
}
