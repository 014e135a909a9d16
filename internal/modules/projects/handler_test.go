package projects

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/notification"
	"agencyops/internal/testutil"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyProject(ctx context.Context, projectID string, u *domain.ProjectUpdate) notification.Outcome {
	args := m.Called(ctx, projectID, u)
	return args.Get(0).(notification.Outcome)
}

type fixture struct {
	r        http.Handler
	db       *gorm.DB
	user     *domain.User
	client   *domain.Client
	notifier *mockNotifier
}

func setup(t *testing.T) *fixture {
	db := testutil.OpenTestDB(t)
	user := &domain.User{Name: "Pat", Email: "pat@agency.com", PasswordHash: "x", Role: domain.RoleProjectManager}
	require.NoError(t, db.Create(user).Error)
	client := &domain.Client{Name: "Acme", ContactEmail: "a@acme.com"}
	require.NoError(t, db.Create(client).Error)

	n := new(mockNotifier)
	r, api := testutil.NewRouter(user.ID)
	NewHandler(NewService(db, n)).RegisterRoutes(api)
	return &fixture{r: r, db: db, user: user, client: client, notifier: n}
}

func (f *fixture) createProject(t *testing.T, body map[string]any) domain.Project {
	t.Helper()
	if _, ok := body["clientId"]; !ok {
		body["clientId"] = f.client.ID
	}
	if _, ok := body["type"]; !ok {
		body["type"] = "website"
	}
	w := testutil.DoJSON(f.r, http.MethodPost, "/api/projects", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p domain.Project
	testutil.Data(t, w, &p)
	return p
}

func TestListProjects_DueDateAscendingNullsLast(t *testing.T) {
	f := setup(t)
	f.createProject(t, map[string]any{"name": "No date"})
	f.createProject(t, map[string]any{"name": "Late", "dueDate": "2026-12-01"})
	f.createProject(t, map[string]any{"name": "Soon", "dueDate": "2026-11-01"})

	var list []domain.Project
	testutil.Data(t, testutil.DoJSON(f.r, http.MethodGet, "/api/projects", nil), &list)
	require.Len(t, list, 3)
	assert.Equal(t, "Soon", list[0].Name)
	assert.Equal(t, "Late", list[1].Name)
	assert.Equal(t, "No date", list[2].Name)
	assert.Equal(t, "Website", list[0].TypeLabel)
	require.NotNil(t, list[0].Client)
	assert.Equal(t, "Acme", list[0].Client.Name)
}

func TestCreateProject_Validation(t *testing.T) {
	f := setup(t)

	w := testutil.DoJSON(f.r, http.MethodPost, "/api/projects", map[string]any{"name": "X", "type": "website", "clientId": "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"clientId"`)

	w = testutil.DoJSON(f.r, http.MethodPost, "/api/projects", map[string]any{"name": "X", "type": "podcast", "clientId": f.client.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"type"`)

	w = testutil.DoJSON(f.r, http.MethodPost, "/api/projects", map[string]any{"name": "X", "type": "seo", "clientId": f.client.ID, "dueDate": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"dueDate"`)
}

func TestGetProject_TimelineWhilePaused(t *testing.T) {
	f := setup(t)
	p := f.createProject(t, map[string]any{"name": "Site", "status": "PAUSED"})

	var detail ProjectDetail
	testutil.Data(t, testutil.DoJSON(f.r, http.MethodGet, "/api/projects/"+p.ID, nil), &detail)
	require.Len(t, detail.Timeline, 6)
	for i, step := range detail.Timeline {
		assert.Equal(t, i < 4, step.Completed, step.Status)
		assert.Equal(t, i == 4, step.Current, step.Status)
	}
}

func TestChangeStatus_AppendsUpdateAndNotifies(t *testing.T) {
	f := setup(t)
	p := f.createProject(t, map[string]any{"name": "Site"})

	f.notifier.On("NotifyProject", mock.Anything, p.ID, mock.AnythingOfType("*domain.ProjectUpdate")).
		Return(notification.Outcome{Sent: true}).Once()

	w := testutil.DoJSON(f.r, http.MethodPatch, "/api/projects/"+p.ID+"/status", map[string]any{
		"status": "REVIEW", "notifyTeam": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	f.notifier.AssertExpectations(t)

	var res StatusChangeResult
	testutil.Data(t, w, &res)
	assert.Equal(t, domain.ProjectReview, res.Project.Status)
	assert.True(t, res.Timeline[2].Current)
	assert.True(t, res.Timeline[1].Completed)
	require.NotNil(t, res.Notification)
	assert.True(t, res.Notification.Sent)
	assert.Equal(t, domain.ProjectUpdateStatusChange, res.Update.Type)
	assert.Equal(t, "Pat", res.Update.AuthorName)
	assert.Equal(t, "Status changed from Discovery to In review.", res.Update.Message)

	var updates []domain.ProjectUpdate
	testutil.Data(t, testutil.DoJSON(f.r, http.MethodGet, "/api/projects/"+p.ID+"/updates", nil), &updates)
	require.Len(t, updates, 1)
}

func TestChangeStatus_BackwardsFromClosedAllowed(t *testing.T) {
	f := setup(t)
	p := f.createProject(t, map[string]any{"name": "Site", "status": "CLOSED"})

	var view StatusView
	testutil.Data(t, testutil.DoJSON(f.r, http.MethodGet, "/api/projects/"+p.ID+"/status", nil), &view)
	for _, step := range view.Timeline {
		assert.True(t, step.Completed, step.Status)
	}

	w := testutil.DoJSON(f.r, http.MethodPatch, "/api/projects/"+p.ID+"/status", map[string]any{"status": "DISCOVERY", "note": "Reopened"})
	require.Equal(t, http.StatusOK, w.Code)
	f.notifier.AssertNotCalled(t, "NotifyProject", mock.Anything, mock.Anything, mock.Anything)

	var res StatusChangeResult
	testutil.Data(t, w, &res)
	assert.Nil(t, res.Notification)
	assert.Equal(t, "Reopened", res.Update.Message)
}

func TestUpdateProject_ClearsDueDate(t *testing.T) {
	f := setup(t)
	p := f.createProject(t, map[string]any{"name": "Site", "dueDate": "2026-11-01", "managerId": f.user.ID})
	require.NotNil(t, p.DueDate)

	w := testutil.DoJSON(f.r, http.MethodPatch, "/api/projects/"+p.ID, map[string]any{"dueDate": "", "managerId": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail ProjectDetail
	testutil.Data(t, w, &detail)
	assert.Nil(t, detail.DueDate)
	assert.Nil(t, detail.ManagerID)
	assert.Equal(t, "Site", detail.Name)
}

func TestAddUpdate_DefaultsToNote(t *testing.T) {
	f := setup(t)
	p := f.createProject(t, map[string]any{"name": "Site"})

	w := testutil.DoJSON(f.r, http.MethodPost, "/api/projects/"+p.ID+"/updates", map[string]any{"title": "Kickoff", "message": "Call done"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res UpdateResult
	testutil.Data(t, w, &res)
	assert.Equal(t, domain.ProjectUpdateNote, res.Update.Type)
	assert.Equal(t, "Note", res.Update.TypeLabel)
	require.NotNil(t, res.Update.AuthorID)
	assert.Equal(t, f.user.ID, *res.Update.AuthorID)

	w = testutil.DoJSON(f.r, http.MethodPost, "/api/projects/missing/updates", map[string]any{"message": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject_DetachesTickets(t *testing.T) {
	f := setup(t)
	p := f.createProject(t, map[string]any{"name": "Site"})
	ticket := &domain.Ticket{TicketNumber: 1, Title: "Bug", ClientID: f.client.ID, ProjectID: &p.ID}
	require.NoError(t, f.db.Create(ticket).Error)

	assert.Equal(t, http.StatusNoContent, testutil.DoJSON(f.r, http.MethodDelete, "/api/projects/"+p.ID, nil).Code)

	var reloaded domain.Ticket
	require.NoError(t, f.db.First(&reloaded, "id = ?", ticket.ID).Error)
	assert.Nil(t, reloaded.ProjectID)
}
