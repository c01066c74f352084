package models

// OwnerModel is the account journal and mood data belongs to.
type OwnerModel struct {
	Base
	Username string `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email    string `json:"email"    gorm:"size:191"`
}

func (OwnerModel) TableName() string { return "owners" }
