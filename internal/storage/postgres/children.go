package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage"
)

const childColumns = "id, family_id, name, avatar, stars, habits, star_history, created_at, updated_at"

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func saveChild(db execer, child models.Child) error {
	row, err := storage.EncodeChild(child)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO children (`+childColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			avatar = EXCLUDED.avatar,
			stars = EXCLUDED.stars,
			habits = EXCLUDED.habits,
			star_history = EXCLUDED.star_history,
			updated_at = EXCLUDED.updated_at`,
		row.ID, row.FamilyID, row.Name, row.Avatar, row.Stars, row.Habits, row.StarHistory, row.CreatedAt, row.UpdatedAt)
	return err
}

func (s *Store) SaveChild(child models.Child) error {
	return saveChild(s.db, child)
}

func scanChild(scan func(dest ...interface{}) error) (models.Child, error) {
	var row storage.ChildRow
	if err := scan(&row.ID, &row.FamilyID, &row.Name, &row.Avatar, &row.Stars, &row.Habits, &row.StarHistory, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return models.Child{}, err
	}
	return row.Decode()
}

func (s *Store) GetChild(familyID, id string) (models.Child, error) {
	row := s.db.QueryRow("SELECT "+childColumns+" FROM children WHERE family_id = $1 AND id = $2", familyID, id)
	child, err := scanChild(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Child{}, fmt.Errorf("child %s: %w", id, storage.ErrNotFound)
	}
	return child, err
}

func (s *Store) GetChildren(familyID string) ([]models.Child, error) {
	rows, err := s.db.Query("SELECT "+childColumns+" FROM children WHERE family_id = $1 ORDER BY created_at, name", familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := []models.Child{}
	for rows.Next() {
		child, err := scanChild(rows.Scan)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

func (s *Store) DeleteChild(familyID, id string) error {
	result, err := s.db.Exec("DELETE FROM children WHERE family_id = $1 AND id = $2", familyID, id)
	if err != nil {
		return err
	}
	return expectOne(result, "child not found")
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
