package constants

const (
	// Setting keys
	SettingTimezone        = "timezone"
	SettingDefaultFamilyID = "default_family_id"

	// Default Settings Values
	DefaultTimezone = "Local" // Use system local timezone by default
)
