package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage"
)

const rewardColumns = "id, family_id, name, icon, cost, image, limit_period, limit_count, created_at"

const rewardSelect = rewardColumns + ", deleted_at"

func (s *Store) SaveShopReward(reward models.ShopReward) error {
	period, count := storage.LimitColumns(reward.Limit)
	_, err := s.db.Exec(`
		INSERT INTO shop_rewards (`+rewardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			cost = excluded.cost,
			image = excluded.image,
			limit_period = excluded.limit_period,
			limit_count = excluded.limit_count`,
		reward.ID, reward.FamilyID, reward.Name, reward.Icon, reward.Cost, reward.Image, period, count, storage.FormatTime(reward.CreatedAt))
	return err
}

func scanReward(scan func(dest ...interface{}) error) (models.ShopReward, error) {
	var r models.ShopReward
	var period sql.NullString
	var count sql.NullInt64
	var createdAt string
	var deletedAt sql.NullString
	if err := scan(&r.ID, &r.FamilyID, &r.Name, &r.Icon, &r.Cost, &r.Image, &period, &count, &createdAt, &deletedAt); err != nil {
		return models.ShopReward{}, err
	}
	r.Limit = storage.LimitFromColumns(period, count)
	var err error
	if r.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.ShopReward{}, fmt.Errorf("failed to parse created_at for reward %s: %w", r.ID, err)
	}
	if deletedAt.Valid {
		t, err := storage.ParseTime(deletedAt.String)
		if err != nil {
			return models.ShopReward{}, fmt.Errorf("failed to parse deleted_at for reward %s: %w", r.ID, err)
		}
		r.DeletedAt = &t
	}
	return r, nil
}

func (s *Store) GetShopReward(familyID, id string) (models.ShopReward, error) {
	row := s.db.QueryRow("SELECT "+rewardSelect+" FROM shop_rewards WHERE family_id = ? AND id = ? AND deleted_at IS NULL", familyID, id)
	r, err := scanReward(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShopReward{}, fmt.Errorf("reward %s: %w", id, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetShopRewards(familyID string, includeDeleted bool) ([]models.ShopReward, error) {
	query := "SELECT " + rewardSelect + " FROM shop_rewards WHERE family_id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY cost, name"

	rows, err := s.db.Query(query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rewards := []models.ShopReward{}
	for rows.Next() {
		r, err := scanReward(rows.Scan)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

func (s *Store) DeleteShopReward(familyID, id string) error {
	result, err := s.db.Exec(`
		UPDATE shop_rewards SET deleted_at = ? WHERE family_id = ? AND id = ? AND deleted_at IS NULL`,
		storage.FormatTime(time.Now()), familyID, id)
	if err != nil {
		return err
	}
	return expectOne(result, "reward not found or already deleted")
}

func (s *Store) RestoreShopReward(familyID, id string) error {
	result, err := s.db.Exec(`
		UPDATE shop_rewards SET deleted_at = NULL WHERE family_id = ? AND id = ? AND deleted_at IS NOT NULL`,
		familyID, id)
	if err != nil {
		return err
	}
	return expectOne(result, "reward not found or not deleted")
}

func expectOne(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", msg, storage.ErrNotFound)
	}
	return nil
}
