//go:build integration

package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sql.DB

	leads     *LeadRepository
	agents    *AgentRepository
	notes     *NoteRepository
	documents *DocumentRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16",
		postgres.WithDatabase("quotedesk"),
		postgres.WithUsername("quotedesk"),
		postgres.WithPassword("quotedesk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = NewDBConnection(dsn)
	s.Require().NoError(err)
	s.Require().NoError(MigrateUp(s.db))
	// applying twice is a no-op
	s.Require().NoError(MigrateUp(s.db))

	s.leads = NewLeadRepository(s.db)
	s.agents = NewAgentRepository(s.db)
	s.notes = NewNoteRepository(s.db)
	s.documents = NewDocumentRepository(s.db)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `TRUNCATE documents, notes, leads, agent_profiles`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) createAgent(name string, states, lines []string) *entity.Agent {
	now := time.Now().UTC()
	agent := &entity.Agent{
		ID:               uuid.New().String(),
		FullName:         name,
		AgencyName:       name + " Agency",
		Email:            uuid.New().String()[:8] + "@agency.com",
		StatesLicensed:   states,
		LinesOfInsurance: lines,
		Notifications:    entity.NotificationPreferences{EmailNewLead: true},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.Require().NoError(s.agents.Create(s.ctx, agent))
	return agent
}

func (s *RepositorySuite) createLead(name, insuranceType string) *entity.Lead {
	lead, err := entity.NewLead(name, "jane@example.com", "555-0100", "90210", insuranceType, true)
	s.Require().NoError(err)
	s.Require().NoError(s.leads.Create(s.ctx, lead))
	return lead
}

func (s *RepositorySuite) TestAgentRoundTripKeepsArrays() {
	agent := s.createAgent("Sam", []string{"CA", "NV"}, []string{entity.InsuranceAuto, entity.InsuranceHome})

	found, err := s.agents.FindByID(s.ctx, agent.ID)
	s.Require().NoError(err)
	s.Equal([]string{"CA", "NV"}, found.StatesLicensed)
	s.Equal([]string{entity.InsuranceAuto, entity.InsuranceHome}, found.LinesOfInsurance)
	s.True(found.Notifications.EmailNewLead)
	s.False(found.Notifications.SMSNewLead)

	_, err = s.agents.FindByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, entity.ErrAgentNotFound)
}

func (s *RepositorySuite) TestAgentDuplicateEmail() {
	agent := s.createAgent("Sam", []string{"CA"}, []string{entity.InsuranceAuto})

	dup := *agent
	dup.ID = uuid.New().String()
	err := s.agents.Create(s.ctx, &dup)

	s.ErrorIs(err, entity.ErrDuplicate)
}

func (s *RepositorySuite) TestFindByLineReturnsCreationOrder() {
	first := s.createAgent("First", []string{"CA"}, []string{entity.InsuranceAuto})
	time.Sleep(5 * time.Millisecond)
	s.createAgent("Home Only", []string{"CA"}, []string{entity.InsuranceHome})
	time.Sleep(5 * time.Millisecond)
	second := s.createAgent("Second", []string{"TX"}, []string{entity.InsuranceHome, entity.InsuranceAuto})

	agents, err := s.agents.FindByLine(s.ctx, entity.InsuranceAuto)
	s.Require().NoError(err)
	s.Require().Len(agents, 2)
	s.Equal(first.ID, agents[0].ID)
	s.Equal(second.ID, agents[1].ID)

	none, err := s.agents.FindByLine(s.ctx, entity.InsuranceHealth)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepositorySuite) TestUpdateAssignmentCompareAndSwap() {
	a := s.createAgent("A", []string{"CA"}, []string{entity.InsuranceAuto})
	b := s.createAgent("B", []string{"CA"}, []string{entity.InsuranceAuto})
	lead := s.createLead("Jane", entity.InsuranceAuto)

	changed, err := s.leads.UpdateAssignment(s.ctx, lead.ID, &a.ID, true)
	s.Require().NoError(err)
	s.True(changed)

	changed, err = s.leads.UpdateAssignment(s.ctx, lead.ID, &b.ID, true)
	s.Require().NoError(err)
	s.False(changed)

	found, err := s.leads.FindByID(s.ctx, lead.ID)
	s.Require().NoError(err)
	s.Equal(a.ID, *found.AssignedTo)
	s.Require().NotNil(found.Agent)
	s.Equal("A Agency", found.Agent.AgencyName)

	changed, err = s.leads.UpdateAssignment(s.ctx, lead.ID, &b.ID, false)
	s.Require().NoError(err)
	s.True(changed)

	ghost := uuid.New().String()
	_, err = s.leads.UpdateAssignment(s.ctx, lead.ID, &ghost, false)
	s.ErrorIs(err, entity.ErrAgentNotFound)

	_, err = s.leads.UpdateAssignment(s.ctx, uuid.New().String(), &a.ID, false)
	s.ErrorIs(err, entity.ErrLeadNotFound)
}

func (s *RepositorySuite) TestListFilters() {
	ca := s.createAgent("CA agent", []string{"CA"}, []string{entity.InsuranceAuto})
	tx := s.createAgent("TX agent", []string{"TX"}, []string{entity.InsuranceAuto})

	l1 := s.createLead("Alice Smith", entity.InsuranceAuto)
	l2 := s.createLead("Bob 100%", entity.InsuranceAuto)
	s.createLead("Carol", entity.InsuranceLife)

	_, err := s.leads.UpdateAssignment(s.ctx, l1.ID, &ca.ID, false)
	s.Require().NoError(err)
	_, err = s.leads.UpdateAssignment(s.ctx, l2.ID, &tx.ID, false)
	s.Require().NoError(err)

	l1.ApplyStatus(entity.LeadStatusFollowUp)
	l1.AssignedTo = &ca.ID
	s.Require().NoError(s.leads.Update(s.ctx, l1))

	contacted := true
	leads, total, err := s.leads.List(s.ctx, entity.LeadFilter{Contacted: &contacted})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal(l1.ID, leads[0].ID)

	leads, total, err = s.leads.List(s.ctx, entity.LeadFilter{AssignedState: "tx"})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal(l2.ID, leads[0].ID)

	_, total, err = s.leads.List(s.ctx, entity.LeadFilter{Search: "100%"})
	s.Require().NoError(err)
	s.Equal(1, total)

	_, total, err = s.leads.List(s.ctx, entity.LeadFilter{Status: entity.LeadStatusNew})
	s.Require().NoError(err)
	s.Equal(2, total)

	leads, total, err = s.leads.List(s.ctx, entity.LeadFilter{Page: 2, PageSize: 2, SortKey: "full_name", SortOrder: "asc"})
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(leads, 1)
	s.Equal("Carol", leads[0].FullName)
}

func (s *RepositorySuite) TestCountByAgent() {
	agent := s.createAgent("Sam", []string{"CA"}, []string{entity.InsuranceAuto})
	for i, status := range []entity.LeadStatus{entity.LeadStatusNew, entity.LeadStatusContacted, entity.LeadStatusClosed} {
		lead := s.createLead("Lead", entity.InsuranceAuto)
		lead.AssignedTo = &agent.ID
		lead.ApplyStatus(status)
		s.Require().NoError(s.leads.Update(s.ctx, lead), "lead %d", i)
	}

	stats, err := s.leads.CountByAgent(s.ctx, agent.ID)
	s.Require().NoError(err)
	s.Equal(entity.LeadStats{Total: 3, Contacted: 2, Pending: 1}, stats)
}

func (s *RepositorySuite) TestNotesAndDocumentsByLeadAndAgent() {
	agent := s.createAgent("Sam", []string{"CA"}, []string{entity.InsuranceAuto})
	lead := s.createLead("Jane", entity.InsuranceAuto)

	first, err := entity.NewNote(lead.ID, agent.ID, "called")
	s.Require().NoError(err)
	s.Require().NoError(s.notes.Create(s.ctx, first))
	time.Sleep(5 * time.Millisecond)
	second, err := entity.NewNote(lead.ID, agent.ID, "sent quote")
	s.Require().NoError(err)
	s.Require().NoError(s.notes.Create(s.ctx, second))

	notes, err := s.notes.ListByLead(s.ctx, lead.ID)
	s.Require().NoError(err)
	s.Require().Len(notes, 2)
	s.Equal(second.ID, notes[0].ID, "newest first")

	orphan, err := entity.NewNote(uuid.New().String(), agent.ID, "lost")
	s.Require().NoError(err)
	s.ErrorIs(s.notes.Create(s.ctx, orphan), entity.ErrLeadNotFound)

	doc, err := entity.NewDocument(lead.ID, agent.ID, "app.pdf", entity.DocumentApplication, time.Now())
	s.Require().NoError(err)
	doc.URL = "https://files.example.com/" + doc.StoragePath
	s.Require().NoError(s.documents.Create(s.ctx, doc))

	byAgent, err := s.documents.ListByAgent(s.ctx, agent.ID)
	s.Require().NoError(err)
	s.Require().Len(byAgent, 1)
	s.Equal(entity.DocumentApplication, byAgent[0].DocumentType)

	n, err := s.notes.DeleteByAgent(s.ctx, agent.ID)
	s.Require().NoError(err)
	s.EqualValues(2, n)

	n, err = s.documents.DeleteByLead(s.ctx, lead.ID)
	s.Require().NoError(err)
	s.EqualValues(1, n)

	s.ErrorIs(s.documents.Delete(s.ctx, doc.ID), entity.ErrDocumentNotFound)
}

func (s *RepositorySuite) TestReassignAndDeleteAgent() {
	leaving := s.createAgent("Leaving", []string{"CA"}, []string{entity.InsuranceAuto})
	staying := s.createAgent("Staying", []string{"CA"}, []string{entity.InsuranceAuto})

	for i := 0; i < 2; i++ {
		lead := s.createLead("Lead", entity.InsuranceAuto)
		_, err := s.leads.UpdateAssignment(s.ctx, lead.ID, &leaving.ID, false)
		s.Require().NoError(err)
	}

	moved, err := s.leads.ReassignAgentLeads(s.ctx, leaving.ID, &staying.ID)
	s.Require().NoError(err)
	s.EqualValues(2, moved)

	s.Require().NoError(s.agents.Delete(s.ctx, leaving.ID))
	s.ErrorIs(s.agents.Delete(s.ctx, leaving.ID), entity.ErrAgentNotFound)

	leads, total, err := s.leads.List(s.ctx, entity.LeadFilter{AssignedTo: staying.ID})
	s.Require().NoError(err)
	s.Equal(2, total)
	for _, l := range leads {
		s.Equal("Staying", l.Agent.FullName)
	}
}

// A quote comes in for an auto line, lands with the only auto agent, gets
// worked and is finally deleted together with its notes and documents.
func (s *RepositorySuite) TestQuoteLifecycle() {
	t := s.T()
	agent := s.createAgent("Sam", []string{"CA"}, []string{entity.InsuranceAuto})
	s.createAgent("Homer", []string{"CA"}, []string{entity.InsuranceHome})

	lead := s.createLead("Jane Doe", entity.InsuranceAuto)
	assert.Nil(t, lead.AssignedTo)

	candidates, err := s.agents.FindByLine(s.ctx, lead.InsuranceType)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	changed, err := s.leads.UpdateAssignment(s.ctx, lead.ID, &candidates[0].ID, true)
	require.NoError(t, err)
	require.True(t, changed)

	stored, err := s.leads.FindByID(s.ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, *stored.AssignedTo)
	assert.Equal(t, entity.LeadStatusNew, stored.Status)
	assert.False(t, stored.Contacted)

	stored.ApplyStatus(entity.LeadStatusContacted)
	require.NoError(t, s.leads.Update(s.ctx, stored))

	note, err := entity.NewNote(lead.ID, agent.ID, "quoted $120/mo")
	require.NoError(t, err)
	require.NoError(t, s.notes.Create(s.ctx, note))

	doc, err := entity.NewDocument(lead.ID, agent.ID, "license.jpg", entity.DocumentIDVerification, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.documents.Create(s.ctx, doc))

	_, err = s.notes.DeleteByLead(s.ctx, lead.ID)
	require.NoError(t, err)
	_, err = s.documents.DeleteByLead(s.ctx, lead.ID)
	require.NoError(t, err)
	require.NoError(t, s.leads.Delete(s.ctx, lead.ID))

	_, err = s.leads.FindByID(s.ctx, lead.ID)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}
