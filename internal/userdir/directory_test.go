package userdir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homechefs/backend/internal/models"
	"homechefs/backend/internal/store"
	"homechefs/backend/internal/userdir"
)

func newTestDirectory() *userdir.Directory {
	return userdir.New(store.NewMemoryKV())
}

func mustRegister(t *testing.T, d *userdir.Directory, email string, role models.Role) *models.User {
	t.Helper()
	u, err := d.Register(userdir.RegisterInput{
		Email:    email,
		Password: "pw123456",
		FullName: "Test " + email,
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestRegister_SetsDefaults(t *testing.T) {
	d := newTestDirectory()

	u, err := d.Register(userdir.RegisterInput{
		Email:       "amina@x.com",
		Password:    "pw123456",
		FullName:    "Amina B",
		Role:        models.RoleVisitor,
		Nationality: "Moroccan",
	})

	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Amina B", u.FullName)
	assert.False(t, u.IsChefRegistered)
	assert.Equal(t, models.StatusApproved, u.Status)
	assert.NotNil(t, u.Recipes)
	assert.NotNil(t, u.SavedRecipes)
	assert.NotNil(t, u.Conversations)
	assert.NotEqual(t, "pw123456", u.PasswordHash, "password must not be stored in the clear")
}

func TestRegister_ChefGetsRegisteredFlagAndPendingStatus(t *testing.T) {
	d := newTestDirectory()

	chef := mustRegister(t, d, "chef1@x.com", models.RoleChef)

	assert.True(t, chef.IsChefRegistered)
	assert.Equal(t, models.StatusPending, chef.Status)
}

func TestRegister_DuplicateEmailFails(t *testing.T) {
	d := newTestDirectory()
	mustRegister(t, d, "dup@x.com", models.RoleVisitor)

	_, err := d.Register(userdir.RegisterInput{
		Email:    "dup@x.com",
		Password: "pw123456",
		Role:     models.RoleVisitor,
	})

	assert.ErrorIs(t, err, userdir.ErrDuplicateEmail)
}

func TestRegister_EmailCompareIsCaseSensitive(t *testing.T) {
	// Emails are compared byte for byte, so a re-cased duplicate gets
	// through. Documented behavior, not an accident of this test.
	d := newTestDirectory()
	mustRegister(t, d, "case@x.com", models.RoleVisitor)

	_, err := d.Register(userdir.RegisterInput{
		Email:    "Case@x.com",
		Password: "pw123456",
		Role:     models.RoleVisitor,
	})

	assert.NoError(t, err)
}

func TestAuthenticate_SuccessInstallsSession(t *testing.T) {
	d := newTestDirectory()
	registered := mustRegister(t, d, "v@x.com", models.RoleVisitor)

	u, err := d.Authenticate("v@x.com", "pw123456", models.RoleVisitor)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	s, err := d.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, registered.ID, s.ID)
	assert.Equal(t, registered.Email, s.Email)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	d := newTestDirectory()
	mustRegister(t, d, "v@x.com", models.RoleVisitor)

	_, err := d.Authenticate("v@x.com", "wrong-password", models.RoleVisitor)

	assert.ErrorIs(t, err, userdir.ErrInvalidCredentials)
}

func TestAuthenticate_WrongRole(t *testing.T) {
	d := newTestDirectory()
	mustRegister(t, d, "v@x.com", models.RoleVisitor)

	_, err := d.Authenticate("v@x.com", "pw123456", models.RoleChef)

	assert.ErrorIs(t, err, userdir.ErrInvalidCredentials)
}

func TestAuthenticate_UnregisteredChefIsRejected(t *testing.T) {
	d := newTestDirectory()
	chef := mustRegister(t, d, "chef@x.com", models.RoleChef)

	// Simulate an account created before the chef completed the
	// Become a Home Chef form.
	flag := false
	_, err := d.UpdateUser(chef.ID, userdir.UserPatch{IsChefRegistered: &flag})
	require.NoError(t, err)

	_, err = d.Authenticate("chef@x.com", "pw123456", models.RoleChef)
	assert.ErrorIs(t, err, userdir.ErrChefNotRegistered)
}

func TestAuthenticate_ChefScenario(t *testing.T) {
	d := newTestDirectory()
	registered := mustRegister(t, d, "chef1@x.com", models.RoleChef)
	require.True(t, registered.IsChefRegistered)

	u, err := d.Authenticate("chef1@x.com", "pw123456", models.RoleChef)

	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestLogout_ClearsSessionAndIsIdempotent(t *testing.T) {
	d := newTestDirectory()
	mustRegister(t, d, "v@x.com", models.RoleVisitor)
	_, err := d.Authenticate("v@x.com", "pw123456", models.RoleVisitor)
	require.NoError(t, err)

	require.NoError(t, d.Logout())
	s, err := d.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, s)

	// Logging out again must not fail.
	assert.NoError(t, d.Logout())
}

func TestUserByID_MissReturnsNil(t *testing.T) {
	d := newTestDirectory()

	u, err := d.UserByID(424242)

	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUser_UnknownIDIsNoOp(t *testing.T) {
	d := newTestDirectory()

	name := "Nobody"
	u, err := d.UpdateUser(424242, userdir.UserPatch{FullName: &name})

	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUser_MirrorsIntoSession(t *testing.T) {
	d := newTestDirectory()
	registered := mustRegister(t, d, "v@x.com", models.RoleVisitor)
	_, err := d.Authenticate("v@x.com", "pw123456", models.RoleVisitor)
	require.NoError(t, err)

	name := "Renamed User"
	updated, err := d.UpdateUser(registered.ID, userdir.UserPatch{FullName: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed User", updated.FullName)

	s, err := d.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Renamed User", s.Name)
}

func TestSearchUsers(t *testing.T) {
	d := newTestDirectory()
	amina := mustRegister(t, d, "amina@x.com", models.RoleVisitor)
	mustRegister(t, d, "karim@x.com", models.RoleChef)

	t.Run("empty term matches nothing", func(t *testing.T) {
		res, err := d.SearchUsers("   ", amina.ID)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("case-insensitive substring on email", func(t *testing.T) {
		res, err := d.SearchUsers("KARIM", amina.ID)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "karim@x.com", res[0].Email)
	})

	t.Run("matches on role", func(t *testing.T) {
		res, err := d.SearchUsers("chef", amina.ID)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "karim@x.com", res[0].Email)
	})

	t.Run("excludes the requesting user", func(t *testing.T) {
		res, err := d.SearchUsers("amina", amina.ID)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestChefModeration(t *testing.T) {
	d := newTestDirectory()
	chef := mustRegister(t, d, "chef@x.com", models.RoleChef)
	visitor := mustRegister(t, d, "v@x.com", models.RoleVisitor)

	pending, err := d.PendingChefs()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, chef.ID, pending[0].ID)

	approved, err := d.ApproveChef(chef.ID)
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.Equal(t, models.StatusApproved, approved.Status)

	pending, err = d.PendingChefs()
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Visitors are not chefs, approving one is a no-op.
	u, err := d.ApproveChef(visitor.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMarkChefAsRegistered(t *testing.T) {
	d := newTestDirectory()
	chef := mustRegister(t, d, "chef@x.com", models.RoleChef)

	flag := false
	_, err := d.UpdateUser(chef.ID, userdir.UserPatch{IsChefRegistered: &flag})
	require.NoError(t, err)

	ok, err := d.IsChefRegistered("chef@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.MarkChefAsRegistered("chef@x.com"))

	ok, err = d.IsChefRegistered("chef@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}
