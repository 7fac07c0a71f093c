package usecase

import (
	"context"
	"testing"

	authdomain "taskforge-backend/internal/auth/domain"
	"taskforge-backend/internal/authz"
	profiledomain "taskforge-backend/internal/profile/domain"
	"taskforge-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	profiles map[string]*profiledomain.Profile // keyed by user id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*profiledomain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *profiledomain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID string) (*profiledomain.Profile, error) {
	return r.profiles[userID], nil
}

func (r *fakeProfileRepo) FindAll(_ context.Context) ([]*profiledomain.Profile, error) {
	var out []*profiledomain.Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *profiledomain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.profiles, userID)
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

func TestMe(t *testing.T) {
	profiles := newFakeProfileRepo()
	uc := NewProfileUsecase(profiles, newFakeUserRepo())

	_, err := uc.Me(context.Background(), authz.Caller{ID: "u1"})
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "There is no profile for this user", appErr.Msg)

	require.NoError(t, profiles.Create(context.Background(), profiledomain.New("u1")))

	profile, err := uc.Me(context.Background(), authz.Caller{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, profiledomain.DefaultField, profile.Role)
}

func TestUpdate_PartialFields(t *testing.T) {
	profiles := newFakeProfileRepo()
	uc := NewProfileUsecase(profiles, newFakeUserRepo())

	// First update creates the profile on the fly.
	profile, err := uc.Update(context.Background(), authz.Caller{ID: "u1"}, "Engineer", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", profile.Role)
	assert.Equal(t, profiledomain.DefaultField, profile.Location)
	assert.Equal(t, profiledomain.DefaultField, profile.Bio)

	// Empty fields never clobber existing values.
	profile, err = uc.Update(context.Background(), authz.Caller{ID: "u1"}, "", "Berlin", "")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", profile.Role)
	assert.Equal(t, "Berlin", profile.Location)
}

func TestListAll_Populated(t *testing.T) {
	profiles := newFakeProfileRepo()
	users := newFakeUserRepo(
		&authdomain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Avatar: "a.png", IsAdmin: true},
	)
	uc := NewProfileUsecase(profiles, users)

	require.NoError(t, profiles.Create(context.Background(), profiledomain.New("u1")))
	require.NoError(t, profiles.Create(context.Background(), profiledomain.New("orphan")))

	all, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	byUser := make(map[string]*profiledomain.Populated)
	for _, p := range all {
		byUser[p.UserID] = p
	}

	populated := byUser["u1"]
	require.NotNil(t, populated.User)
	assert.Equal(t, "Alice", populated.User.Name)
	assert.Equal(t, "alice@example.com", populated.User.Email)

	// A profile whose user vanished still lists, just unpopulated.
	assert.Nil(t, byUser["orphan"].User)
}

func TestGetByUserID(t *testing.T) {
	profiles := newFakeProfileRepo()
	users := newFakeUserRepo(&authdomain.User{ID: "u1", Name: "Alice"})
	uc := NewProfileUsecase(profiles, users)

	_, err := uc.GetByUserID(context.Background(), "u1")
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Profile not found", appErr.Msg)

	require.NoError(t, profiles.Create(context.Background(), profiledomain.New("u1")))

	populated, err := uc.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, populated.User)
	assert.Equal(t, "Alice", populated.User.Name)
}
