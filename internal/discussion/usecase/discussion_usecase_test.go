package usecase

import (
	"context"
	"testing"

	authdomain "taskforge-backend/internal/auth/domain"
	"taskforge-backend/internal/authz"
	discussiondomain "taskforge-backend/internal/discussion/domain"
	"taskforge-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscussionRepo struct {
	discussions map[string]*discussiondomain.PersonalDiscussion
}

func newFakeDiscussionRepo() *fakeDiscussionRepo {
	return &fakeDiscussionRepo{discussions: make(map[string]*discussiondomain.PersonalDiscussion)}
}

func (r *fakeDiscussionRepo) Create(_ context.Context, d *discussiondomain.PersonalDiscussion) error {
	d.ID = uuid.New().String()
	r.discussions[d.ID] = d
	return nil
}

func (r *fakeDiscussionRepo) FindByID(_ context.Context, id string) (*discussiondomain.PersonalDiscussion, error) {
	return r.discussions[id], nil
}

func (r *fakeDiscussionRepo) FindByMember(_ context.Context, userID string) ([]*discussiondomain.PersonalDiscussion, error) {
	var out []*discussiondomain.PersonalDiscussion
	for _, d := range r.discussions {
		if d.Member1 == userID || d.Member2 == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDiscussionRepo) Update(_ context.Context, d *discussiondomain.PersonalDiscussion) error {
	r.discussions[d.ID] = d
	return nil
}

type fakeUserRepo struct {
	users map[string]*authdomain.User
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
	return r.users[id], nil
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
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func newFixture() (DiscussionUsecase, *fakeDiscussionRepo) {
	discussions := newFakeDiscussionRepo()
	users := newFakeUserRepo(
		&authdomain.User{ID: "u1", Name: "Alice", Avatar: "a.png"},
		&authdomain.User{ID: "u2", Name: "Bob"},
	)
	return NewDiscussionUsecase(discussions, users), discussions
}

func TestFindOrCreate(t *testing.T) {
	uc, repo := newFixture()

	d, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u1"}, "u2")
	require.NoError(t, err)
	assert.Equal(t, "u1", d.Member1)
	assert.Equal(t, "u2", d.Member2)
	assert.Len(t, repo.discussions, 1)

	// The same pair resolves to the same document from either side.
	same, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u1"}, "u2")
	require.NoError(t, err)
	assert.Equal(t, d.ID, same.ID)

	mirrored, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u2"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, d.ID, mirrored.ID)

	assert.Len(t, repo.discussions, 1)
}

func TestFindOrCreate_SelfTarget(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u1"}, "u1")
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Same user", appErr.Msg)
}

func TestFindOrCreate_UnknownUser(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u1"}, "ghost")
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestPostMessage(t *testing.T) {
	uc, _ := newFixture()

	d, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u1"}, "u2")
	require.NoError(t, err)

	updated, err := uc.PostMessage(context.Background(), authz.Caller{ID: "u1"}, d.ID, "hi Bob")
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, "hi Bob", updated.Messages[0].Text)
	assert.Equal(t, "u1", updated.Messages[0].Author)
	assert.Equal(t, "Alice", updated.Messages[0].Name)
	assert.Equal(t, "a.png", updated.Messages[0].Avatar)

	reply, err := uc.PostMessage(context.Background(), authz.Caller{ID: "u2"}, d.ID, "hi Alice")
	require.NoError(t, err)
	assert.Len(t, reply.Messages, 2)
}

func TestPostMessage_NonParticipant(t *testing.T) {
	uc, _ := newFixture()

	d, err := uc.FindOrCreate(context.Background(), authz.Caller{ID: "u1"}, "u2")
	require.NoError(t, err)

	_, err = uc.PostMessage(context.Background(), authz.Caller{ID: "intruder"}, d.ID, "ahem")
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "Not authorized to post in this discussion", appErr.Msg)
}

func TestPostMessage_MissingDiscussion(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.PostMessage(context.Background(), authz.Caller{ID: "u1"}, "missing", "hello?")
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
}
