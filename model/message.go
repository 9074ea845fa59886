package model

import "gorm.io/gorm"

// Message is a direct message between two users. Rows are immutable except
// for the IsDeleted flag: deletion is soft, content stays in place. The
// auto-increment id together with CreatedAt makes creation order derivable.
type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Sender     User   `gorm:"not null; foreignKey:SenderID" json:"sender"`
	Receiver   User   `gorm:"not null; foreignKey:ReceiverID" json:"receiver"`
	Content    string `gorm:"not null" json:"content"`
	IsDeleted  bool   `gorm:"not null;default:false" json:"isDeleted"`
}
