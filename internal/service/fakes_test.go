package service

import (
	"context"
	"time"

	"devconnector-be/internal/entities"
	"devconnector-be/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*entities.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, name, email, avatar, passwordHash string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	user := &entities.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		Avatar:       avatar,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entities.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*entities.User, error) {
	var out []*entities.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*entities.Profile // keyed by owning user id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*entities.Profile)}
}

func cloneProfile(p *entities.Profile) *entities.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]entities.Experience(nil), p.Experience...)
	cp.Education = append([]entities.Education(nil), p.Education...)
	if p.Social != nil {
		social := *p.Social
		cp.Social = &social
	}
	return &cp
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *entities.Profile) (*entities.Profile, error) {
	if _, ok := f.profiles[profile.UserID]; ok {
		return nil, repository.ErrDuplicate
	}
	f.profiles[profile.UserID] = cloneProfile(profile)
	return profile, nil
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) (*entities.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (f *fakeProfileRepo) FindAll(_ context.Context) ([]*entities.Profile, error) {
	var out []*entities.Profile
	for _, p := range f.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (f *fakeProfileRepo) UpdateFields(_ context.Context, userID primitive.ObjectID, fields bson.M) (*entities.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			p.Status = value.(string)
		case "skills":
			p.Skills = value.([]string)
		case "company":
			p.Company = value.(string)
		case "website":
			p.Website = value.(string)
		case "location":
			p.Location = value.(string)
		case "bio":
			p.Bio = value.(string)
		case "githubusername":
			p.GithubUsername = value.(string)
		case "social":
			p.Social = value.(*entities.SocialLinks)
		case "updated_at":
			p.UpdatedAt = value.(time.Time)
		}
	}
	return cloneProfile(p), nil
}

func (f *fakeProfileRepo) Replace(_ context.Context, profile *entities.Profile) error {
	for userID, p := range f.profiles {
		if p.ID == profile.ID {
			f.profiles[userID] = cloneProfile(profile)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProfileRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	delete(f.profiles, userID)
	return nil
}
