package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"sitebudget/internal/db"
	"sitebudget/internal/domain"
)

const dateLayout = "2006-01-02"

// SQLiteSubmittedProjectRepo implements SubmittedProjectRepo using a
// SQLite database. Pass a transaction-scoped DBTX to make the multi-table
// writes atomic.
type SQLiteSubmittedProjectRepo struct {
	db db.DBTX
}

// NewSQLiteSubmittedProjectRepo creates a new SQLiteSubmittedProjectRepo.
func NewSQLiteSubmittedProjectRepo(dbtx db.DBTX) *SQLiteSubmittedProjectRepo {
	return &SQLiteSubmittedProjectRepo{db: dbtx}
}

func (r *SQLiteSubmittedProjectRepo) Create(ctx context.Context, p *domain.Project, submittedAt time.Time) error {
	members, err := json.Marshal(p.TeamMembers)
	if err != nil {
		return fmt.Errorf("encoding team members: %w", err)
	}

	query := `INSERT INTO projects (id, name, description, client, location, planned_date, currency,
			manager_id, team_members, attachment_ref, total_budget, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectName,
		p.Description,
		p.Client,
		p.Location,
		p.PlannedDate.Format(dateLayout),
		p.Currency,
		p.ProjectManager,
		string(members),
		p.AttachmentRef,
		p.TotalBudget.String(),
		submittedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	for _, phase := range p.Phases {
		if err := r.insertPhase(ctx, p.ID, phase); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteSubmittedProjectRepo) insertPhase(ctx context.Context, projectID string, phase *domain.Phase) error {
	query := `INSERT INTO phases (id, project_id, phase_number, name, start_date, end_date, budget)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		phase.ID,
		projectID,
		phase.PhaseNumber,
		phase.PhaseName,
		phase.StartDate.Format(dateLayout),
		phase.EndDate.Format(dateLayout),
		phase.Budget.String(),
	)
	if err != nil {
		return fmt.Errorf("inserting phase %q: %w", phase.PhaseName, err)
	}

	for i, dept := range phase.Departments {
		if err := r.insertDepartment(ctx, phase.ID, i, dept); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteSubmittedProjectRepo) insertDepartment(ctx context.Context, phaseID string, order int, dept *domain.Department) error {
	query := `INSERT INTO departments (id, phase_id, order_index, name, contractor_mode, amount)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		dept.ID, phaseID, order, dept.Name, string(dept.ContractorMode), dept.Amount.String())
	if err != nil {
		return fmt.Errorf("inserting department %q: %w", dept.Name, err)
	}

	liQuery := `INSERT INTO line_items (id, department_id, order_index, item_type, item, spec, quantity, uom, unit_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, li := range dept.LineItems {
		_, err := r.db.ExecContext(ctx, liQuery,
			li.ID, dept.ID, i, li.ItemType, li.Item, li.Spec, li.QuantityRaw, li.UOM, li.UnitPriceRaw)
		if err != nil {
			return fmt.Errorf("inserting line item: %w", err)
		}
	}
	return nil
}

// GetByID hydrates a submitted project back into an authoring tree. Stored
// department amounts take precedence over recomputed sums until the first
// user mutation, matching the load-time rule for legacy data.
func (r *SQLiteSubmittedProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, name, description, client, location, planned_date, currency,
			manager_id, team_members, attachment_ref
		FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p domain.Project
	var plannedStr, membersStr string
	err := row.Scan(&p.ID, &p.ProjectName, &p.Description, &p.Client, &p.Location,
		&plannedStr, &p.Currency, &p.ProjectManager, &membersStr, &p.AttachmentRef)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.PlannedDate, err = time.Parse(dateLayout, plannedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing planned_date: %w", err)
	}
	if membersStr != "" {
		if err := json.Unmarshal([]byte(membersStr), &p.TeamMembers); err != nil {
			return nil, fmt.Errorf("decoding team members: %w", err)
		}
	}
	p.Context = domain.ContextNew

	p.Phases, err = r.loadPhases(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.RecomputeTotalBudget()
	return &p, nil
}

func (r *SQLiteSubmittedProjectRepo) loadPhases(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	query := `SELECT id, phase_number, name, start_date, end_date
		FROM phases WHERE project_id = ? ORDER BY phase_number`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		var ph domain.Phase
		var startStr, endStr string
		if err := rows.Scan(&ph.ID, &ph.PhaseNumber, &ph.PhaseName, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		if ph.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
			return nil, fmt.Errorf("parsing phase start_date: %w", err)
		}
		if ph.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
			return nil, fmt.Errorf("parsing phase end_date: %w", err)
		}
		phases = append(phases, &ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}

	for _, ph := range phases {
		if ph.Departments, err = r.loadDepartments(ctx, ph.ID); err != nil {
			return nil, err
		}
		ph.RecomputeBudget()
	}
	return phases, nil
}

func (r *SQLiteSubmittedProjectRepo) loadDepartments(ctx context.Context, phaseID string) ([]*domain.Department, error) {
	query := `SELECT id, name, contractor_mode, amount
		FROM departments WHERE phase_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	type deptRow struct {
		id, name, mode, amount string
	}
	var deptRows []deptRow
	for rows.Next() {
		var d deptRow
		if err := rows.Scan(&d.id, &d.name, &d.mode, &d.amount); err != nil {
			return nil, fmt.Errorf("scanning department: %w", err)
		}
		deptRows = append(deptRows, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating departments: %w", err)
	}

	depts := make([]*domain.Department, 0, len(deptRows))
	for _, d := range deptRows {
		items, err := r.loadLineItems(ctx, d.id)
		if err != nil {
			return nil, err
		}
		depts = append(depts, domain.HydrateDepartment(d.id, d.name, domain.ContractorMode(d.mode), d.amount, items))
	}
	return depts, nil
}

func (r *SQLiteSubmittedProjectRepo) loadLineItems(ctx context.Context, deptID string) ([]*domain.LineItem, error) {
	query := `SELECT id, item_type, item, spec, quantity, uom, unit_price
		FROM line_items WHERE department_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, deptID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []*domain.LineItem
	for rows.Next() {
		li := &domain.LineItem{}
		var quantity, unitPrice string
		if err := rows.Scan(&li.ID, &li.ItemType, &li.Item, &li.Spec, &quantity, &li.UOM, &unitPrice); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		// Stored raw strings; a row that fails to parse keeps zero values.
		_ = li.SetQuantity(quantity)
		_ = li.SetUnitPrice(unitPrice)
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return items, nil
}

func (r *SQLiteSubmittedProjectRepo) List(ctx context.Context) ([]SubmittedSummary, error) {
	query := `SELECT id, name, client, total_budget, submitted_at FROM projects ORDER BY submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var summaries []SubmittedSummary
	for rows.Next() {
		var s SubmittedSummary
		var submittedStr string
		if err := rows.Scan(&s.ID, &s.Name, &s.Client, &s.TotalBudget, &submittedStr); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		if s.SubmittedAt, err = time.Parse(time.RFC3339, submittedStr); err != nil {
			return nil, fmt.Errorf("parsing submitted_at: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return summaries, nil
}

func (r *SQLiteSubmittedProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}
