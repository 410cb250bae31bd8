package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"nebulanotes/internal/models"
)

// Columns an upsert may overwrite on an existing row.
const (
	ColName          = "name"
	ColRole          = "role"
	ColBio           = "bio"
	ColSchool        = "school"
	ColLocation      = "location"
	ColEmail         = "email"
	ColAvatarURL     = "avatar_url"
	ColGithubURL     = "github_url"
	ColLinkedinURL   = "linkedin_url"
	ColSkills        = "skills"
	ColProjects      = "projects"
	ColHomepageTexts = "homepage_texts"
)

var profileColumns = map[string]bool{
	ColName:          true,
	ColRole:          true,
	ColBio:           true,
	ColSchool:        true,
	ColLocation:      true,
	ColEmail:         true,
	ColAvatarURL:     true,
	ColGithubURL:     true,
	ColLinkedinURL:   true,
	ColSkills:        true,
	ColProjects:      true,
	ColHomepageTexts: true,
}

const profileInsert = `
	INSERT INTO profiles
	(id, name, role, bio, school, location, email, avatar_url, github_url, linkedin_url, skills, projects, homepage_texts, updated_at)
	VALUES
	(:id, :name, :role, :bio, :school, :location, :email, :avatar_url, :github_url, :linkedin_url, :skills, :projects, :homepage_texts, :updated_at)`

type ProfileRepositoryImpl struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Get(ctx context.Context) (*models.Profile, error) {
	query := `SELECT * FROM profiles WHERE id = $1`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, models.ProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

func (r *ProfileRepositoryImpl) Upsert(ctx context.Context, profile *models.Profile, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("upsert profile: no columns given")
	}

	sets := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		if !profileColumns[col] {
			return fmt.Errorf("upsert profile: unknown column %q", col)
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	sets = append(sets, "updated_at = EXCLUDED.updated_at")

	query := profileInsert + `
	ON CONFLICT (id) DO UPDATE SET ` + strings.Join(sets, ", ")

	profile.ID = models.ProfileID
	profile.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepositoryImpl) InsertIfAbsent(ctx context.Context, profile *models.Profile) (bool, error) {
	query := profileInsert + `
	ON CONFLICT (id) DO NOTHING`

	profile.ID = models.ProfileID
	profile.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return false, fmt.Errorf("insert profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}
