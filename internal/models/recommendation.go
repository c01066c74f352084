package models

// RecommendationModel is a catalog entry.
type RecommendationModel struct {
	Base
	Title       string `json:"title"       gorm:"size:191;not null"`
	Description string `json:"description" gorm:"type:text"`
	Type        string `json:"type"        gorm:"size:32"` // activity | resource | exercise | article
	Category    string `json:"category"    gorm:"size:64;not null;index:idx_recommendation_category,priority:1"`
	Link        string `json:"link"        gorm:"size:512"`
	IsActive    bool   `json:"is_active"   gorm:"default:true;index:idx_recommendation_category,priority:2"`
}

func (RecommendationModel) TableName() string { return "recommendations" }

// RecommendationExposureModel is an append-only record of a recommendation shown to an owner.
type RecommendationExposureModel struct {
	Base
	OwnerID          string               `json:"owner_id"          gorm:"type:char(36);not null;index"`
	RecommendationID string               `json:"recommendation_id" gorm:"type:char(36);not null;index"`
	Recommendation   *RecommendationModel `json:"recommendation,omitempty" gorm:"foreignKey:RecommendationID"`
	CauseID          *string              `json:"cause_id"          gorm:"type:char(36);index"`
	IsHelpful        *bool                `json:"is_helpful"`
	Feedback         string               `json:"feedback"          gorm:"type:text"`
}

func (RecommendationExposureModel) TableName() string { return "recommendation_exposures" }
