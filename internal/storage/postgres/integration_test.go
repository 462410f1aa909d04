package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage"
)

// TestStore_Integration runs against a real database.
// Set HABITUS_TEST_POSTGRES to run it, for example
// HABITUS_TEST_POSTGRES="postgres://habitus@localhost:5432/habitus_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("HABITUS_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("HABITUS_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	familyID := "fam-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.Timezone == "" {
			t.Error("Expected a default timezone")
		}
	})

	t.Run("Children", func(t *testing.T) {
		if err := store.AddFamily(models.Family{ID: familyID, Name: "Test", CreatedAt: now}); err != nil {
			t.Fatalf("Failed to add family: %v", err)
		}
		child := models.Child{
			ID:       uuid.NewString(),
			FamilyID: familyID,
			Name:     "Ana",
			Stars:    3,
			Habits: []models.Habit{{
				ID:       "h1",
				Name:     "Ler",
				Schedule: models.Schedule{Type: constants.ScheduleDaily},
				Reward:   models.Reward{Type: constants.RewardStars, Value: 1},
			}},
			StarHistory: map[string]int{"2024-06-03": 1},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.SaveChild(child); err != nil {
			t.Fatalf("Failed to save child: %v", err)
		}
		got, err := store.GetChild(familyID, child.ID)
		if err != nil {
			t.Fatalf("Failed to get child: %v", err)
		}
		if got.Stars != 3 || len(got.Habits) != 1 || got.StarHistory["2024-06-03"] != 1 {
			t.Errorf("Unexpected child: %+v", got)
		}

		record := models.RedeemedReward{
			ID:        uuid.NewString(),
			FamilyID:  familyID,
			ChildID:   child.ID,
			Reward:    models.ShopReward{ID: "r1", Name: "Park", Cost: 2},
			Date:      "2024-06-03",
			CreatedAt: now,
		}
		child.Stars = 1
		if err := store.SaveRedemption(child, record); err != nil {
			t.Fatalf("Failed to save redemption: %v", err)
		}
		list, err := store.GetRedemptions(familyID, child.ID)
		if err != nil {
			t.Fatalf("Failed to list redemptions: %v", err)
		}
		if len(list) != 1 || list[0].Reward.Name != "Park" {
			t.Errorf("Unexpected redemptions: %+v", list)
		}

		if err := store.DeleteChild(familyID, child.ID); err != nil {
			t.Fatalf("Failed to delete child: %v", err)
		}
		if _, err := store.GetChild(familyID, child.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
