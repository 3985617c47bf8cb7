package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type fakeUsers struct {
	ports.UserRepository
	byEmail    map[string]*domain.User
	volunteers map[domain.UserID]*domain.Volunteer
	orgs       map[domain.UserID]*domain.Organization
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail:    make(map[string]*domain.User),
		volunteers: make(map[domain.UserID]*domain.Volunteer),
		orgs:       make(map[domain.UserID]*domain.Organization),
	}
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) CreateVolunteerAccount(ctx context.Context, user *domain.User, profile *domain.Volunteer) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domerrors.ErrEmailTaken
	}
	f.byEmail[user.Email] = user
	f.volunteers[user.ID] = profile
	return nil
}

func (f *fakeUsers) CreateOrganizationAccount(ctx context.Context, user *domain.User, profile *domain.Organization) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domerrors.ErrEmailTaken
	}
	f.byEmail[user.Email] = user
	f.orgs[user.ID] = profile
	return nil
}

func (f *fakeUsers) GetVolunteerByUserID(ctx context.Context, userID domain.UserID) (*domain.Volunteer, error) {
	return f.volunteers[userID], nil
}

func (f *fakeUsers) GetOrganizationByUserID(ctx context.Context, userID domain.UserID) (*domain.Organization, error) {
	return f.orgs[userID], nil
}

type volunteerLookup struct {
	ports.VolunteerRepository
	users *fakeUsers
}

func (l volunteerLookup) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Volunteer, error) {
	return l.users.volunteers[userID], nil
}

type orgLookup struct {
	ports.OrganizationRepository
	users *fakeUsers
}

func (l orgLookup) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Organization, error) {
	return l.users.orgs[userID], nil
}

// plainHasher is a reversible stand-in for argon2.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }
func (plainHasher) Verify(password, hash string) bool    { return hash == "h:"+password }

type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(userID string, role domain.Role, profileID string, expiresInSeconds int64) (string, error) {
	return fmt.Sprintf("%s|%s|%s", userID, role, profileID), nil
}

func (fakeIssuer) ValidateAccessToken(tokenString string) (string, domain.Role, string, error) {
	return "", "", "", nil
}

func TestRegisterVolunteer(t *testing.T) {
	users := newFakeUsers()
	uc := NewRegister(users, plainHasher{})

	res, err := uc.Execute(context.Background(), RegisterInput{
		Email:     "amina@example.dz",
		Password:  "s3cret-pass",
		FirstName: "Amina",
		LastName:  "Bouaziz",
		Role:      domain.RoleVolunteer,
		Wilaya:    "Alger",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "h:s3cret-pass", res.User.PasswordHash)
	assert.True(t, res.User.IsActive)
	profile := users.volunteers[res.User.ID]
	require.NotNil(t, profile)
	assert.Equal(t, domain.BadgeBronze, profile.BadgeLevel)
	assert.Equal(t, profile.ID.String(), res.ProfileID)
}

func TestRegisterOrganizationDefaultsType(t *testing.T) {
	users := newFakeUsers()
	uc := NewRegister(users, plainHasher{})

	res, err := uc.Execute(context.Background(), RegisterInput{
		Email:            "contact@croissant-rouge.dz",
		Password:         "s3cret-pass",
		Role:             domain.RoleOrganization,
		OrganizationName: "Croissant Rouge",
	})
	require.NoError(t, err)

	profile := users.orgs[res.User.ID]
	require.NotNil(t, profile)
	assert.Equal(t, domain.OrgTypeOther, profile.Type)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	users.byEmail["amina@example.dz"] = &domain.User{ID: domain.NewUserID(uuid.New())}
	uc := NewRegister(users, plainHasher{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Email:    "amina@example.dz",
		Password: "s3cret-pass",
		Role:     domain.RoleVolunteer,
	})
	assert.ErrorIs(t, err, domerrors.ErrEmailTaken)
}

func TestRegisterRejectsBadEmailAndRole(t *testing.T) {
	uc := NewRegister(newFakeUsers(), plainHasher{})

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "not-an-email", Password: "x", Role: domain.RoleVolunteer})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)

	_, err = uc.Execute(context.Background(), RegisterInput{Email: "a@b.dz", Password: "x", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domerrors.ErrPermissionDenied)
}

func TestLoginIssuesProfileScopedToken(t *testing.T) {
	users := newFakeUsers()
	reg := NewRegister(users, plainHasher{})
	created, err := reg.Execute(context.Background(), RegisterInput{
		Email:    "amina@example.dz",
		Password: "s3cret-pass",
		Role:     domain.RoleVolunteer,
	})
	require.NoError(t, err)

	uc := NewLogin(users, volunteerLookup{users: users}, orgLookup{users: users}, plainHasher{}, fakeIssuer{}, 0)
	res, err := uc.Execute(context.Background(), LoginInput{Email: "amina@example.dz", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultAccessTokenExpiry), res.ExpiresIn)
	assert.Equal(t, created.ProfileID, res.ProfileID)
	expected := fmt.Sprintf("%s|%s|%s", created.User.ID, domain.RoleVolunteer, created.ProfileID)
	assert.Equal(t, expected, res.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUsers()
	reg := NewRegister(users, plainHasher{})
	_, err := reg.Execute(context.Background(), RegisterInput{
		Email:    "amina@example.dz",
		Password: "s3cret-pass",
		Role:     domain.RoleVolunteer,
	})
	require.NoError(t, err)

	uc := NewLogin(users, volunteerLookup{users: users}, orgLookup{users: users}, plainHasher{}, fakeIssuer{}, 0)
	_, err = uc.Execute(context.Background(), LoginInput{Email: "amina@example.dz", Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}

func TestLoginUnknownOrInactiveUser(t *testing.T) {
	users := newFakeUsers()
	inactive := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        "gone@example.dz",
		PasswordHash: "h:s3cret-pass",
		Role:         domain.RoleVolunteer,
		IsActive:     false,
	}
	users.byEmail[inactive.Email] = inactive

	uc := NewLogin(users, volunteerLookup{users: users}, orgLookup{users: users}, plainHasher{}, fakeIssuer{}, 0)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.dz", Password: "x"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "gone@example.dz", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}
