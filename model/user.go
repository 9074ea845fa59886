package model

import "gorm.io/gorm"

// User struct. Signup and profile CRUD live in the profile service; this
// service reads user rows and the presence tracker flips IsOnline.
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	AvatarUrl string `json:"avatarUrl"`
	IsOnline  bool   `gorm:"not null;default:false" json:"isOnline"`
	Role      string `json:"role"`
}

// Follow is a directed edge: Follower follows Following, unique per ordered
// pair. Owned by the profile service; read here only as the messaging
// authorization predicate.
type Follow struct {
	gorm.Model
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follow_pair"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follow_pair"`
	Follower    User `gorm:"not null; foreignKey:FollowerID" json:"follower"`
	Following   User `gorm:"not null; foreignKey:FollowingID" json:"following"`
}
