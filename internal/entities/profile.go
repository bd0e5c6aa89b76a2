package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile represents a developer profile document in the profiles collection.
// There is at most one profile per user; UserID carries a unique index.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	Skills         []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	// Social is a pointer so an absent sub-map stays absent in the stored
	// document instead of being written as an empty object.
	Social    *SocialLinks `bson:"social,omitempty" json:"social,omitempty"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`

	// UserName and UserAvatar are joined from the users collection for the
	// public profile feed; they are never persisted on the profile itself.
	UserName   string `bson:"-" json:"user_name,omitempty"`
	UserAvatar string `bson:"-" json:"user_avatar,omitempty"`
}

// SocialLinks holds the optional named social URIs of a profile.
type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is a sub-document embedded in a profile. To is nil while the
// position has no end date; Current forces To to the insertion time.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is a sub-document embedded in a profile.
type Education struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}
