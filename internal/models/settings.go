package models

// Settings holds application-wide preferences
type Settings struct {
	Timezone        string `json:"timezone"`
	DefaultFamilyID string `json:"default_family_id"`
}
