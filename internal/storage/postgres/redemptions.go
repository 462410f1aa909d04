package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage"
)

const redemptionColumns = "id, family_id, child_id, reward, day, is_delivered, delivery_date, created_at"

func (s *Store) SaveRedemption(child models.Child, record models.RedeemedReward) error {
	snapshot, err := storage.EncodeRewardSnapshot(record.Reward)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveChild(tx, child); err != nil {
		return fmt.Errorf("failed to save child: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO redemptions (id, family_id, child_id, reward_id, reward, day, is_delivered, delivery_date, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9)`,
		record.ID, record.FamilyID, record.ChildID, record.Reward.ID, snapshot, record.Date,
		record.IsDelivered, storage.NullString(record.DeliveryDate), storage.FormatTime(record.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save redemption: %w", err)
	}

	return tx.Commit()
}

func scanRedemption(scan func(dest ...interface{}) error) (models.RedeemedReward, error) {
	var r models.RedeemedReward
	var snapshot, createdAt string
	var deliveryDate sql.NullString
	if err := scan(&r.ID, &r.FamilyID, &r.ChildID, &snapshot, &r.Date, &r.IsDelivered, &deliveryDate, &createdAt); err != nil {
		return models.RedeemedReward{}, err
	}
	var err error
	if r.Reward, err = storage.DecodeRewardSnapshot(snapshot); err != nil {
		return models.RedeemedReward{}, err
	}
	r.DeliveryDate = deliveryDate.String
	if r.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.RedeemedReward{}, fmt.Errorf("failed to parse created_at for redemption %s: %w", r.ID, err)
	}
	return r, nil
}

func (s *Store) GetRedemption(familyID, id string) (models.RedeemedReward, error) {
	row := s.db.QueryRow("SELECT "+redemptionColumns+" FROM redemptions WHERE family_id = $1 AND id = $2", familyID, id)
	r, err := scanRedemption(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RedeemedReward{}, fmt.Errorf("redemption %s: %w", id, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetRedemptions(familyID, childID string) ([]models.RedeemedReward, error) {
	query := "SELECT " + redemptionColumns + " FROM redemptions WHERE family_id = $1"
	args := []interface{}{familyID}
	if childID != "" {
		query += " AND child_id = $2"
		args = append(args, childID)
	}
	query += " ORDER BY day, created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RedeemedReward{}
	for rows.Next() {
		r, err := scanRedemption(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRedemption(record models.RedeemedReward) error {
	result, err := s.db.Exec(`
		UPDATE redemptions SET is_delivered = $1, delivery_date = $2 WHERE family_id = $3 AND id = $4`,
		record.IsDelivered, storage.NullString(record.DeliveryDate), record.FamilyID, record.ID)
	if err != nil {
		return err
	}
	return expectOne(result, "redemption not found")
}
