// projects.go handles project and membership database operations.
//
// A project's deletion cascades through three explicit statements — runs,
// then membership rows, then the project itself — executed inside a single
// transaction so a mid-sequence failure leaves everything in place.
package database

import (
	"context"
	"fmt"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

// CreateProject inserts a project and makes the creator its owner.
func (db *DB) CreateProject(ctx context.Context, p *models.Project, ownerID string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after a successful Commit

	err = tx.QueryRowContext(ctx, `
		INSERT INTO projects (name, default_niche)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		p.Name, p.DefaultNiche,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, 'owner')`,
		p.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	return tx.Commit()
}

// ListProjects returns the projects a user belongs to, newest first, each
// with its run count computed in the same query.
func (db *DB) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := db.SelectContext(ctx, &projects, `
		SELECT p.id, p.name, p.default_niche, p.created_at,
		       COUNT(cr.id) AS run_count
		FROM projects p
		JOIN project_members pm ON pm.project_id = p.id
		LEFT JOIN content_runs cr ON cr.project_id = p.id
		WHERE pm.user_id = $1
		GROUP BY p.id, p.name, p.default_niche, p.created_at
		ORDER BY p.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project the user is a member of.
func (db *DB) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	var p models.Project
	err := db.GetContext(ctx, &p, `
		SELECT p.id, p.name, p.default_niche, p.created_at,
		       (SELECT COUNT(*) FROM content_runs WHERE project_id = p.id) AS run_count
		FROM projects p
		JOIN project_members pm ON pm.project_id = p.id
		WHERE p.id = $1 AND pm.user_id = $2`,
		id, userID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	return &p, nil
}

// UpdateProjectDefaultNiche saves a new default niche on a project. Used by
// the best-effort save after a generation succeeds with a different niche.
func (db *DB) UpdateProjectDefaultNiche(ctx context.Context, id, niche string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE projects SET default_niche = $2 WHERE id = $1`, id, niche)
	if err != nil {
		return fmt.Errorf("failed to update default niche: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %w", ErrNotFound)
	}
	return nil
}

// DeleteProject removes a project with its runs and memberships. The three
// deletions run in order inside one transaction; any failure rolls back all
// of them, so the caller's view of the project list stays valid.
func (db *DB) DeleteProject(ctx context.Context, id, userID string) error {
	member, err := db.IsProjectMember(ctx, id, userID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("project %w", ErrNotFound)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM content_runs WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project runs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project members: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %w", ErrNotFound)
	}

	return tx.Commit()
}

// IsProjectMember reports whether a user belongs to a project.
func (db *DB) IsProjectMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int
	err := db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	if err != nil {
		return false, fmt.Errorf("membership check failed: %w", err)
	}
	return count > 0, nil
}
