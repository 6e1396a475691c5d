package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/quotedesk/internal/entity"
)

const agentSelect = `
	SELECT id, full_name, agency_name, email, phone, states_licensed, lines_of_insurance,
		custom_package_request, email_new_lead, email_updates, sms_new_lead, sms_updates,
		created_at, updated_at
	FROM agent_profiles`

type AgentRepository struct {
	DB *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{DB: db}
}

func (r *AgentRepository) Create(ctx context.Context, a *entity.Agent) error {
	query := `
		INSERT INTO agent_profiles (id, full_name, agency_name, email, phone, states_licensed,
			lines_of_insurance, custom_package_request, email_new_lead, email_updates,
			sms_new_lead, sms_updates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.FullName,
		a.AgencyName,
		a.Email,
		a.Phone,
		pq.Array(a.StatesLicensed),
		pq.Array(a.LinesOfInsurance),
		a.CustomPackageRequest,
		a.Notifications.EmailNewLead,
		a.Notifications.EmailUpdates,
		a.Notifications.SMSNewLead,
		a.Notifications.SMSUpdates,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert agent: %w", mapError(err, nil))
	}
	return nil
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	agent, err := scanAgent(r.DB.QueryRowContext(ctx, agentSelect+` WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, entity.ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}
	return agent, nil
}

func (r *AgentRepository) List(ctx context.Context, filter entity.AgentFilter) ([]entity.Agent, int, error) {
	whereClause := ""
	args := []any{}
	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, likePattern(filter.Search))
		whereClause = " WHERE full_name ILIKE $1 OR agency_name ILIKE $1 OR email ILIKE $1"
	}

	limit, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("%s%s ORDER BY %s %s, id LIMIT %d OFFSET %d",
		agentSelect, whereClause, mapAgentSortKey(filter.SortKey), sortOrder(filter.SortOrder), limit, offset)

	agents, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM agent_profiles`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count agents: %w", err)
	}
	return agents, total, nil
}

func (r *AgentRepository) FindByLine(ctx context.Context, line string) ([]entity.Agent, error) {
	return r.query(ctx, agentSelect+` WHERE $1 = ANY(lines_of_insurance) ORDER BY created_at, id`, line)
}

func (r *AgentRepository) Update(ctx context.Context, a *entity.Agent) error {
	query := `
		UPDATE agent_profiles
		SET full_name = $2, agency_name = $3, email = $4, phone = $5, states_licensed = $6,
			lines_of_insurance = $7, custom_package_request = $8, email_new_lead = $9,
			email_updates = $10, sms_new_lead = $11, sms_updates = $12, updated_at = $13
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.FullName,
		a.AgencyName,
		a.Email,
		a.Phone,
		pq.Array(a.StatesLicensed),
		pq.Array(a.LinesOfInsurance),
		a.CustomPackageRequest,
		a.Notifications.EmailNewLead,
		a.Notifications.EmailUpdates,
		a.Notifications.SMSNewLead,
		a.Notifications.SMSUpdates,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update agent: %w", mapError(err, nil))
	}
	return expectRow(res, entity.ErrAgentNotFound)
}

func (r *AgentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM agent_profiles WHERE id = $1`, id)
	if err != nil {
		if noRow(err) {
			return entity.ErrAgentNotFound
		}
		return fmt.Errorf("delete agent: %w", err)
	}
	return expectRow(res, entity.ErrAgentNotFound)
}

func (r *AgentRepository) query(ctx context.Context, query string, args ...any) ([]entity.Agent, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	agents := []entity.Agent{}
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, *agent)
	}
	return agents, rows.Err()
}

func scanAgent(row scanner) (*entity.Agent, error) {
	var a entity.Agent
	err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.AgencyName,
		&a.Email,
		&a.Phone,
		pq.Array(&a.StatesLicensed),
		pq.Array(&a.LinesOfInsurance),
		&a.CustomPackageRequest,
		&a.Notifications.EmailNewLead,
		&a.Notifications.EmailUpdates,
		&a.Notifications.SMSNewLead,
		&a.Notifications.SMSUpdates,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func mapAgentSortKey(key string) string {
	switch key {
	case "full_name":
		return "full_name"
	case "agency_name":
		return "agency_name"
	case "updated_at":
		return "updated_at"
	default:
		return "created_at"
	}
}
