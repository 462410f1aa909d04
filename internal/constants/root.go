package constants

// ScheduleType represents the recurrence variant of a habit
type ScheduleType string

// CompletionStatus represents the state of a habit on a single day
type CompletionStatus string

// RewardType represents what a habit pays out when completed
type RewardType string

// LimitPeriod represents the redemption window of a shop reward limit
type LimitPeriod string

const (
	AppName            = "habitus"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitus"
	DefaultConfigPath  = "~/.config/habitus/habitus.db"
	ConfigFileName     = "config.toml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Schedule types. ScheduleLegacy covers records written before schedules
	// carried a type; anything unrecognized is normalized to it on read.
	ScheduleDaily   ScheduleType = "DAILY"
	ScheduleWeekly  ScheduleType = "WEEKLY"
	ScheduleMonthly ScheduleType = "MONTHLY"
	ScheduleOnce    ScheduleType = "ONCE"
	ScheduleLegacy  ScheduleType = "LEGACY"

	// Completion statuses. A missing ledger key means the day was not acted upon.
	StatusCompleted CompletionStatus = "COMPLETED"
	StatusPending   CompletionStatus = "PENDING"
	StatusSkipped   CompletionStatus = "SKIPPED"

	// Reward types
	RewardStars    RewardType = "STARS"
	RewardActivity RewardType = "ACTIVITY"

	// Limit periods
	LimitNone  LimitPeriod = "NONE"
	LimitDay   LimitPeriod = "DAY"
	LimitWeek  LimitPeriod = "WEEK"
	LimitMonth LimitPeriod = "MONTH"

	// Server defaults
	DefaultListenAddr = "127.0.0.1:8080"
)
