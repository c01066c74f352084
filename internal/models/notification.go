package models

type NotificationKind string

const (
	NotificationMoodShift             NotificationKind = "mood_shift"
	NotificationExtendedSadness       NotificationKind = "extended_sadness"
	NotificationPositiveReinforcement NotificationKind = "positive_reinforcement"
	NotificationInactivity            NotificationKind = "inactivity"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// NotificationModel is written by trend analysis and the reminder sweep.
type NotificationModel struct {
	Base
	OwnerID     string           `json:"owner_id"     gorm:"type:char(36);not null;index:idx_notification_owner_kind,priority:1"`
	Kind        NotificationKind `json:"kind"         gorm:"size:32;not null;index:idx_notification_owner_kind,priority:2"`
	Message     string           `json:"message"      gorm:"type:text"`
	Severity    Severity         `json:"severity"     gorm:"size:16;not null;default:low"`
	IsRead      bool             `json:"is_read"      gorm:"default:false"`
	IsDismissed bool             `json:"is_dismissed" gorm:"default:false"`
}

func (NotificationModel) TableName() string { return "notifications" }

// SeeksCause reports whether the notification should prompt the owner for a cause.
func (n *NotificationModel) SeeksCause() bool {
	return n.Kind == NotificationMoodShift || n.Kind == NotificationExtendedSadness || n.Kind == NotificationPositiveReinforcement
}
