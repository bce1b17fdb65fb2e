package store

import (
	"database/sql"
	"fmt"

	"github.com/skilletapp/skillet/internal/model"
)

type FamilyMemberStore struct {
	db *sql.DB
}

func NewFamilyMemberStore(db *sql.DB) *FamilyMemberStore {
	return &FamilyMemberStore{db: db}
}

const familyMemberCols = `id, user_id, name, age_group, dietary_restrictions, favorite_foods, sort_order, created_at, updated_at`

func scanFamilyMember(scanner interface{ Scan(...any) error }) (*model.FamilyMember, error) {
	var m model.FamilyMember
	var restrictions, favorites string
	err := scanner.Scan(&m.ID, &m.UserID, &m.Name, &m.AgeGroup, &restrictions, &favorites, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.DietaryRestrictions = unmarshalStrings(restrictions)
	m.FavoriteFoods = unmarshalStrings(favorites)
	return &m, nil
}

func (s *FamilyMemberStore) Create(userID int64, name, ageGroup string, restrictions, favorites []string) (*model.FamilyMember, error) {
	var maxOrder int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(sort_order), -1) FROM family_members WHERE user_id = ?`, userID).Scan(&maxOrder)
	if err != nil {
		return nil, fmt.Errorf("query max sort_order: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO family_members (user_id, name, age_group, dietary_restrictions, favorite_foods, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, ageGroup, marshalStrings(restrictions), marshalStrings(favorites), maxOrder+1,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(id, userID)
}

func (s *FamilyMemberStore) List(userID int64) ([]model.FamilyMember, error) {
	rows, err := s.db.Query(
		`SELECT `+familyMemberCols+` FROM family_members WHERE user_id = ? ORDER BY sort_order`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query family members: %w", err)
	}
	defer rows.Close()

	var members []model.FamilyMember
	for rows.Next() {
		m, err := scanFamilyMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *FamilyMemberStore) GetByID(id, userID int64) (*model.FamilyMember, error) {
	row := s.db.QueryRow(
		`SELECT `+familyMemberCols+` FROM family_members WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	m, err := scanFamilyMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query family member: %w", err)
	}
	return m, nil
}

func (s *FamilyMemberStore) Update(id, userID int64, name, ageGroup string, restrictions, favorites []string) (*model.FamilyMember, error) {
	_, err := s.db.Exec(
		`UPDATE family_members SET name = ?, age_group = ?, dietary_restrictions = ?, favorite_foods = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, ageGroup, marshalStrings(restrictions), marshalStrings(favorites), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update family member: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *FamilyMemberStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM family_members WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete family member: %w", err)
	}
	return nil
}

func (s *FamilyMemberStore) UpdateSortOrder(userID int64, ids []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE family_members SET sort_order = ? WHERE id = ? AND user_id = ?`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.Exec(i, id, userID); err != nil {
			return fmt.Errorf("update sort order for id %d: %w", id, err)
		}
	}

	return tx.Commit()
}

func (s *FamilyMemberStore) NameExists(userID int64, name string, excludeID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM family_members WHERE user_id = ? AND name = ? AND id != ?`,
		userID, name, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check name exists: %w", err)
	}
	return count > 0, nil
}

// ListRestrictions returns the deduplicated dietary restrictions across all
// of a user's family members.
func (s *FamilyMemberStore) ListRestrictions(userID int64) ([]string, error) {
	members, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var restrictions []string
	for _, m := range members {
		for _, r := range m.DietaryRestrictions {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			restrictions = append(restrictions, r)
		}
	}
	return restrictions, nil
}
