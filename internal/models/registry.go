package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&OwnerModel{},
		&JournalEntryModel{},
		&JournalReminderModel{},
		&MoodRecordModel{},
		&MoodCauseModel{},
		&NotificationModel{},
		&RecommendationModel{},
		&RecommendationExposureModel{},
	}
}
