package notification

import (
	"context"
	"testing"

	authdomain "taskforge-backend/internal/auth/domain"
	"taskforge-backend/internal/authz"
	projectdomain "taskforge-backend/internal/project/domain"
	"taskforge-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*authdomain.User
	// failUpdates makes the next n Update calls return a version
	// conflict.
	failUpdates int
}

func newFakeUserRepo(users ...*authdomain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*authdomain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *authdomain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []string) ([]*authdomain.User, error) {
	var out []*authdomain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*authdomain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *authdomain.User) error {
	if r.failUpdates > 0 {
		r.failUpdates--
		return apperr.ErrVersionConflict
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeFCMRepo struct{}

func (fakeFCMRepo) SaveToken(_ context.Context, userID, token, deviceInfo string) error { return nil }
func (fakeFCMRepo) GetTokensByUserID(_ context.Context, userID string) ([]authdomain.FCMToken, error) {
	return nil, nil
}
func (fakeFCMRepo) DeleteToken(_ context.Context, token string) error          { return nil }
func (fakeFCMRepo) DeleteTokensByUserID(_ context.Context, userID string) error { return nil }

type fakeProjectRepo struct {
	projects map[string]*projectdomain.Project
}

func newFakeProjectRepo(projects ...*projectdomain.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: make(map[string]*projectdomain.Project)}
	for _, p := range projects {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, project *projectdomain.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*projectdomain.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindAll(_ context.Context) ([]*projectdomain.Project, error) {
	var out []*projectdomain.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *projectdomain.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func TestDeliver_PrependsNewestFirst(t *testing.T) {
	users := newFakeUserRepo(&authdomain.User{ID: "u1", Name: "Alice"})
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "first", Type: "INFO"})
	require.NoError(t, err)
	_, err = svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "second", Type: "INFO"})
	require.NoError(t, err)

	inbox := users.users["u1"].Notifications
	require.Len(t, inbox, 2)
	assert.Equal(t, "second", inbox[0].Text)
	assert.Equal(t, "first", inbox[1].Text)
	assert.NotEmpty(t, inbox[0].ID)
	assert.False(t, inbox[0].Date.IsZero())
	assert.False(t, inbox[0].Read)
}

func TestDeliver_ReturnsStoredNotification(t *testing.T) {
	users := newFakeUserRepo(&authdomain.User{ID: "u1"})
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	delivered, err := svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "ping", Type: "INFO"})
	require.NoError(t, err)
	require.NotNil(t, delivered)

	// Callers address the notification later by the id assigned here.
	assert.NotEmpty(t, delivered.ID)
	assert.False(t, delivered.Date.IsZero())
	inbox := users.users["u1"].Notifications
	require.Len(t, inbox, 1)
	assert.Equal(t, inbox[0], *delivered)
}

func TestDeliver_UnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.Deliver(context.Background(), "ghost", authdomain.Notification{Text: "hello", Type: "INFO"})
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestDeliver_RetriesOnceOnConflict(t *testing.T) {
	users := newFakeUserRepo(&authdomain.User{ID: "u1"})
	users.failUpdates = 1
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "raced", Type: "INFO"})
	require.NoError(t, err)
	assert.Len(t, users.users["u1"].Notifications, 1)
}

func TestDeliver_GivesUpAfterSecondConflict(t *testing.T) {
	users := newFakeUserRepo(&authdomain.User{ID: "u1"})
	users.failUpdates = 2
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "raced", Type: "INFO"})
	assert.ErrorIs(t, err, apperr.ErrVersionConflict)
}

func TestFanOut_PerRecipientOutcomes(t *testing.T) {
	users := newFakeUserRepo(
		&authdomain.User{ID: "u1"},
		&authdomain.User{ID: "u3"},
	)
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	results := svc.FanOut(context.Background(), []string{"u1", "ghost", "u3"}, authdomain.Notification{Text: "release", Type: "INFO"})

	// One failing recipient never blocks the rest.
	require.Len(t, results, 3)
	assert.Equal(t, RecipientResult{UserID: "u1", Status: StatusDelivered}, results[0])
	assert.Equal(t, "ghost", results[1].UserID)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, RecipientResult{UserID: "u3", Status: StatusDelivered}, results[2])

	assert.Len(t, users.users["u1"].Notifications, 1)
	assert.Len(t, users.users["u3"].Notifications, 1)
}

func TestNotifyProjectMembers_SkipsCaller(t *testing.T) {
	users := newFakeUserRepo(
		&authdomain.User{ID: "u1"},
		&authdomain.User{ID: "u2"},
		&authdomain.User{ID: "u3"},
	)
	project := &projectdomain.Project{
		ID:        "p1",
		CreatorID: "u1",
		Members: []projectdomain.Member{
			{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"},
		},
	}
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(project), nil)

	results, err := svc.NotifyProjectMembers(context.Background(), authz.Caller{ID: "u1"}, "p1", authdomain.Notification{
		Text:    "issue assigned",
		Type:    "PROJECT",
		Project: "p1",
		Issue:   "i1",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Empty(t, users.users["u1"].Notifications)
	assert.Len(t, users.users["u2"].Notifications, 1)
	assert.Len(t, users.users["u3"].Notifications, 1)
	assert.Equal(t, "p1", users.users["u2"].Notifications[0].Project)
}

func TestNotifyProjectMembers_MissingProject(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.NotifyProjectMembers(context.Background(), authz.Caller{ID: "u1"}, "nope", authdomain.Notification{Text: "x", Type: "y"})
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Project not found", appErr.Msg)
}

func TestToggleRead(t *testing.T) {
	users := newFakeUserRepo(&authdomain.User{ID: "u1"})
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "hello", Type: "INFO"})
	require.NoError(t, err)
	id := users.users["u1"].Notifications[0].ID

	n, err := svc.ToggleRead(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.True(t, n.Read)

	n, err = svc.ToggleRead(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.False(t, n.Read)

	_, err = svc.ToggleRead(context.Background(), "u1", "missing")
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Notification not found", appErr.Msg)
}

func TestRemove(t *testing.T) {
	users := newFakeUserRepo(&authdomain.User{ID: "u1"})
	svc := NewService(users, fakeFCMRepo{}, newFakeProjectRepo(), nil)

	_, err := svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "keep", Type: "INFO"})
	require.NoError(t, err)
	_, err = svc.Deliver(context.Background(), "u1", authdomain.Notification{Text: "drop", Type: "INFO"})
	require.NoError(t, err)
	dropID := users.users["u1"].Notifications[0].ID

	require.NoError(t, svc.Remove(context.Background(), "u1", dropID))

	inbox := users.users["u1"].Notifications
	require.Len(t, inbox, 1)
	assert.Equal(t, "keep", inbox[0].Text)

	err = svc.Remove(context.Background(), "u1", dropID)
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestClose_WithoutQueue(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeFCMRepo{}, newFakeProjectRepo(), nil)
	assert.NoError(t, svc.Close())
}
