package storage

import (
	"errors"

	"github.com/julianstephens/habitus/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Provider durably stores family data. Children are written as full
// snapshots and the last write wins.
//
// Implementations are safe for use by one process at a time; the
// orchestration layer serializes writes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Families
	AddFamily(models.Family) error
	GetFamily(id string) (models.Family, error)
	GetAllFamilies() ([]models.Family, error)

	// Children
	SaveChild(models.Child) error
	GetChild(familyID, id string) (models.Child, error)
	GetChildren(familyID string) ([]models.Child, error)
	DeleteChild(familyID, id string) error

	// Shop rewards
	SaveShopReward(models.ShopReward) error
	GetShopReward(familyID, id string) (models.ShopReward, error)
	GetShopRewards(familyID string, includeDeleted bool) ([]models.ShopReward, error)
	DeleteShopReward(familyID, id string) error
	RestoreShopReward(familyID, id string) error

	// Redemptions
	// SaveRedemption stores the child's post-redemption snapshot and the new
	// record in one transaction.
	SaveRedemption(child models.Child, record models.RedeemedReward) error
	GetRedemption(familyID, id string) (models.RedeemedReward, error)
	GetRedemptions(familyID, childID string) ([]models.RedeemedReward, error)
	UpdateRedemption(models.RedeemedReward) error

	// Utils
	GetConfigPath() string
}
