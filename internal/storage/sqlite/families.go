package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage"
)

func (s *Store) AddFamily(family models.Family) error {
	_, err := s.db.Exec(`
		INSERT INTO families (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		family.ID, family.Name, storage.FormatTime(family.CreatedAt))
	return err
}

func (s *Store) GetFamily(id string) (models.Family, error) {
	var f models.Family
	var createdAt string
	err := s.db.QueryRow("SELECT id, name, created_at FROM families WHERE id = ?", id).
		Scan(&f.ID, &f.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Family{}, fmt.Errorf("family %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Family{}, err
	}
	if f.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.Family{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return f, nil
}

func (s *Store) GetAllFamilies() ([]models.Family, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM families ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	families := []models.Family{}
	for rows.Next() {
		var f models.Family
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Name, &createdAt); err != nil {
			return nil, err
		}
		if f.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for family %s: %w", f.ID, err)
		}
		families = append(families, f)
	}
	return families, rows.Err()
}
