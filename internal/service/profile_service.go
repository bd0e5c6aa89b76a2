package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"devconnector-be/internal/cache"
	"devconnector-be/internal/entities"
	"devconnector-be/internal/models"
	"devconnector-be/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// profilesCacheKey holds the cached public feed; every profile write
// invalidates it.
const (
	profilesCacheKey = "profiles:all"
	profilesCacheTTL = 60 * time.Second
)

// ProfileService defines the interface for profile business logic.
//
// Upsert and the sub-array mutations are find-then-write: two concurrent
// writers for the same owner race and the last whole-document write wins.
// That is acceptable for this domain and deliberately not locked around.
type ProfileService interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, req *models.ProfileRequest) (*entities.Profile, error)
	AddExperience(ctx context.Context, userID primitive.ObjectID, exp entities.Experience) (*entities.Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, edu entities.Education) (*entities.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*entities.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*entities.Profile, error)
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
	GetAll(ctx context.Context) ([]*entities.Profile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entities.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	cache       cache.Cache
}

// NewProfileService creates a new profile service. The cache may be nil;
// the feed then always hits the database.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, cacheClient cache.Cache) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		cache:       cacheClient,
	}
}

// ParseSkills splits a comma-separated skills string, trims surrounding
// whitespace from each token, and drops empty tokens while preserving order.
func ParseSkills(skills string) []string {
	var out []string
	for _, token := range strings.Split(skills, ",") {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Upsert creates the profile on first call and partially merges on
// subsequent calls: only fields present and non-empty in the request
// overwrite stored values.
func (s *profileService) Upsert(ctx context.Context, userID primitive.ObjectID, req *models.ProfileRequest) (*entities.Profile, error) {
	now := time.Now()

	fields := bson.M{
		"status":     req.Status,
		"skills":     ParseSkills(req.Skills),
		"updated_at": now,
	}
	setIfProvided(fields, "company", req.Company)
	setIfProvided(fields, "website", req.Website)
	setIfProvided(fields, "location", req.Location)
	setIfProvided(fields, "bio", req.Bio)
	setIfProvided(fields, "githubusername", req.GithubUsername)

	// The social sub-map is omitted entirely when no link is provided,
	// which keeps "no social links" distinct from an empty social object.
	if social := buildSocialLinks(req); social != nil {
		fields["social"] = social
	}

	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if existing != nil {
		updated, err := s.profileRepo.UpdateFields(ctx, userID, fields)
		if err != nil {
			return nil, fmt.Errorf("failed to merge profile: %w", err)
		}
		s.invalidateFeed(ctx)
		return updated, nil
	}

	profile := &entities.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Status:     req.Status,
		Skills:     ParseSkills(req.Skills),
		Company:    deref(req.Company),
		Website:    deref(req.Website),
		Location:   deref(req.Location),
		Bio:        deref(req.Bio),
		Experience: []entities.Experience{},
		Education:  []entities.Education{},
		Social:     buildSocialLinks(req),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	profile.GithubUsername = deref(req.GithubUsername)

	created, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.invalidateFeed(ctx)
	return created, nil
}

// AddExperience appends an experience entry and re-sorts the list
// descending by end date. A current entry gets its end date forced to the
// insertion time, overriding any supplied value.
func (s *profileService) AddExperience(ctx context.Context, userID primitive.ObjectID, exp entities.Experience) (*entities.Profile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = primitive.NewObjectID()
	if exp.Current {
		now := time.Now()
		exp.To = &now
	}

	profile.Experience = append(profile.Experience, exp)
	sort.SliceStable(profile.Experience, func(i, j int) bool {
		return entryBefore(profile.Experience[i].From, profile.Experience[i].To,
			profile.Experience[j].From, profile.Experience[j].To)
	})

	if err := s.saveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation appends an education entry with the same ordering rules as
// experience entries.
func (s *profileService) AddEducation(ctx context.Context, userID primitive.ObjectID, edu entities.Education) (*entities.Profile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ID = primitive.NewObjectID()
	if edu.Current {
		now := time.Now()
		edu.To = &now
	}

	profile.Education = append(profile.Education, edu)
	sort.SliceStable(profile.Education, func(i, j int) bool {
		return entryBefore(profile.Education[i].From, profile.Education[i].To,
			profile.Education[j].From, profile.Education[j].To)
	})

	if err := s.saveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience deletes exactly the entry with the given id. An unknown
// id is a client error and leaves the profile unchanged.
func (s *profileService) RemoveExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*entities.Profile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range profile.Experience {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}
	profile.Experience = append(profile.Experience[:idx], profile.Experience[idx+1:]...)

	if err := s.saveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation deletes exactly the education entry with the given id
func (s *profileService) RemoveEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*entities.Profile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range profile.Education {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}
	profile.Education = append(profile.Education[:idx], profile.Education[idx+1:]...)

	if err := s.saveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount removes the user's profile and then the user record.
// Idempotent: deleting an already-deleted owner is not an error.
func (s *profileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.invalidateFeed(ctx)
	return nil
}

// GetAll returns every profile with the owner's name and avatar joined in,
// served from cache when possible.
func (s *profileService) GetAll(ctx context.Context) ([]*entities.Profile, error) {
	if s.cache != nil {
		var cached []*entities.Profile
		if err := s.cache.GetJSON(ctx, profilesCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	profiles, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.attachOwners(ctx, profiles); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, profilesCacheKey, profiles, profilesCacheTTL); err != nil {
			log.Printf("Warning: failed to cache profile feed: %v", err)
		}
	}

	return profiles, nil
}

// GetByUserID returns one user's profile with name and avatar joined in
func (s *profileService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entities.Profile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachOwners(ctx, []*entities.Profile{profile}); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) loadProfile(ctx context.Context, userID primitive.ObjectID) (*entities.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) saveProfile(ctx context.Context, profile *entities.Profile) error {
	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.Replace(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *profileService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, profilesCacheKey); err != nil {
		log.Printf("Warning: failed to invalidate profile feed cache: %v", err)
	}
}

func (s *profileService) attachOwners(ctx context.Context, profiles []*entities.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to join profile owners: %w", err)
	}

	byID := make(map[primitive.ObjectID]*entities.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, p := range profiles {
		if u, ok := byID[p.UserID]; ok {
			p.UserName = u.Name
			p.UserAvatar = u.Avatar
		}
	}
	return nil
}

// entryBefore reports whether entry A precedes entry B in a
// descending-by-end-date list. A nil end date means the entry is ongoing
// and sorts before every dated entry; ties fall back to the later start
// date first.
func entryBefore(fromA time.Time, toA *time.Time, fromB time.Time, toB *time.Time) bool {
	switch {
	case toA == nil && toB == nil:
		return fromA.After(fromB)
	case toA == nil:
		return true
	case toB == nil:
		return false
	case toA.Equal(*toB):
		return fromA.After(fromB)
	default:
		return toA.After(*toB)
	}
}

func setIfProvided(fields bson.M, key string, value *string) {
	if value != nil && *value != "" {
		fields[key] = *value
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func buildSocialLinks(req *models.ProfileRequest) *entities.SocialLinks {
	social := &entities.SocialLinks{
		Youtube:   deref(req.Youtube),
		Twitter:   deref(req.Twitter),
		Facebook:  deref(req.Facebook),
		Linkedin:  deref(req.Linkedin),
		Instagram: deref(req.Instagram),
	}
	if *social == (entities.SocialLinks{}) {
		return nil
	}
	return social
}
