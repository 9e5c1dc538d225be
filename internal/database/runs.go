// runs.go handles content-run database operations. The generation payloads
// (script, production pack, SEO pack) live in JSONB columns and stay raw
// here; the runs handler materializes them back into the canonical record.
package database

import (
	"context"
	"fmt"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

// CreateContentRun stores a generation result against a project.
func (db *DB) CreateContentRun(ctx context.Context, r *models.ContentRun) error {
	query := `
		INSERT INTO content_runs (project_id, niche, pillar, objective, platform,
		                          selected_hook_code, script_psp, production_pack, seo_pack,
		                          advanced_optimizations, ab_test_variants, hook,
		                          ai_model_used, risk_level_applied)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	return db.QueryRowContext(ctx, query,
		r.ProjectID, r.Niche, r.Pillar, r.Objective, r.Platform,
		r.SelectedHookCode, r.ScriptPSP, r.ProductionPack, r.SEOPack,
		r.AdvancedOpts, r.ABTestVariants, r.Hook,
		r.AIModelUsed, r.RiskLevelApplied,
	).Scan(&r.ID, &r.CreatedAt)
}

// ListContentRuns returns a project's runs, newest first.
func (db *DB) ListContentRuns(ctx context.Context, projectID, userID string, limit int) ([]models.ContentRun, error) {
	member, err := db.IsProjectMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("project %w", ErrNotFound)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var runs []models.ContentRun
	err = db.SelectContext(ctx, &runs, `
		SELECT * FROM content_runs
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list content runs: %w", err)
	}
	return runs, nil
}

// GetContentRun retrieves one run, checking membership through its project.
func (db *DB) GetContentRun(ctx context.Context, id, userID string) (*models.ContentRun, error) {
	var r models.ContentRun
	err := db.GetContext(ctx, &r, `
		SELECT cr.* FROM content_runs cr
		JOIN project_members pm ON pm.project_id = cr.project_id
		WHERE cr.id = $1 AND pm.user_id = $2`,
		id, userID)
	if err != nil {
		return nil, fmt.Errorf("content run not found: %w", err)
	}
	return &r, nil
}

// DeleteContentRun removes a run the user has access to.
func (db *DB) DeleteContentRun(ctx context.Context, id, userID string) error {
	result, err := db.ExecContext(ctx, `
		DELETE FROM content_runs cr
		USING project_members pm
		WHERE cr.id = $1 AND pm.project_id = cr.project_id AND pm.user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete content run: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("content run %w", ErrNotFound)
	}
	return nil
}
