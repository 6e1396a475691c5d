package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xavierca1/quotedesk/internal/entity"
)

const leadSelect = `
	SELECT l.id, l.full_name, l.email, l.phone, l.zip_code, l.insurance_type, l.privacy_consent,
		l.contacted, l.status, l.assigned_to, a.full_name, a.agency_name, l.created_at, l.updated_at
	FROM leads l
	LEFT JOIN agent_profiles a ON a.id = l.assigned_to`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, full_name, email, phone, zip_code, insurance_type, privacy_consent,
			contacted, status, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.ZipCode,
		lead.InsuranceType,
		lead.PrivacyConsent,
		lead.Contacted,
		string(lead.Status),
		lead.AssignedTo,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", mapError(err, entity.ErrAgentNotFound))
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, leadSelect+` WHERE l.id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if noRow(err) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.Contacted != nil {
		args = append(args, *filter.Contacted)
		where = append(where, fmt.Sprintf("l.contacted = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("l.status = $%d", len(args)))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		where = append(where, fmt.Sprintf("l.assigned_to = $%d", len(args)))
	}
	if filter.AssignedState != "" {
		args = append(args, strings.ToUpper(filter.AssignedState))
		where = append(where, fmt.Sprintf("$%d = ANY(a.states_licensed)", len(args)))
	}
	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, likePattern(filter.Search))
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(l.full_name ILIKE $%[1]d OR l.email ILIKE $%[1]d OR l.phone ILIKE $%[1]d OR l.zip_code ILIKE $%[1]d)", n))
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")
	limit, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf("%s%s ORDER BY %s %s, l.id LIMIT %d OFFSET %d",
		leadSelect, whereClause, mapLeadSortKey(filter.SortKey), sortOrder(filter.SortOrder), limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM leads l LEFT JOIN agent_profiles a ON a.id = l.assigned_to` + whereClause
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	return leads, total, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET full_name = $2, email = $3, phone = $4, zip_code = $5, insurance_type = $6,
			contacted = $7, status = $8, assigned_to = $9, updated_at = $10
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.ZipCode,
		lead.InsuranceType,
		lead.Contacted,
		string(lead.Status),
		lead.AssignedTo,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", mapError(err, entity.ErrAgentNotFound))
	}
	return expectRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) UpdateAssignment(ctx context.Context, leadID string, agentID *string, onlyIfUnassigned bool) (bool, error) {
	query := `UPDATE leads SET assigned_to = $2, updated_at = NOW() WHERE id = $1`
	if onlyIfUnassigned {
		query += ` AND assigned_to IS NULL`
	}

	res, err := r.DB.ExecContext(ctx, query, leadID, agentID)
	if err != nil {
		return false, fmt.Errorf("update lead assignment: %w", mapError(err, entity.ErrAgentNotFound))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 && !onlyIfUnassigned {
		return false, entity.ErrLeadNotFound
	}
	return n > 0, nil
}

func (r *LeadRepository) ReassignAgentLeads(ctx context.Context, fromAgentID string, toAgentID *string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET assigned_to = $2, updated_at = NOW() WHERE assigned_to = $1`,
		fromAgentID, toAgentID,
	)
	if err != nil {
		return 0, fmt.Errorf("reassign leads: %w", mapError(err, entity.ErrAgentNotFound))
	}
	return res.RowsAffected()
}

func (r *LeadRepository) CountByAgent(ctx context.Context, agentID string) (entity.LeadStats, error) {
	var total, contacted int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE contacted) FROM leads WHERE assigned_to = $1`,
		agentID,
	).Scan(&total, &contacted)
	if err != nil {
		return entity.LeadStats{}, fmt.Errorf("count agent leads: %w", err)
	}
	return entity.NewLeadStats(total, contacted), nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		if noRow(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("delete lead: %w", err)
	}
	return expectRow(res, entity.ErrLeadNotFound)
}

func scanLead(row scanner) (*entity.Lead, error) {
	var (
		lead       entity.Lead
		status     string
		assignedTo sql.NullString
		agentName  sql.NullString
		agencyName sql.NullString
	)

	err := row.Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.ZipCode,
		&lead.InsuranceType,
		&lead.PrivacyConsent,
		&lead.Contacted,
		&status,
		&assignedTo,
		&agentName,
		&agencyName,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Status = entity.LeadStatus(status)
	if assignedTo.Valid {
		id := assignedTo.String
		lead.AssignedTo = &id
		lead.Agent = &entity.AgentSummary{FullName: agentName.String, AgencyName: agencyName.String}
	}
	return &lead, nil
}

func mapLeadSortKey(key string) string {
	switch key {
	case "full_name":
		return "l.full_name"
	case "status":
		return "l.status"
	case "insurance_type":
		return "l.insurance_type"
	case "updated_at":
		return "l.updated_at"
	default:
		return "l.created_at"
	}
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
