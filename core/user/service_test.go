package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/user"
	inmemdb "github.com/trezcool/edudash/storage/database/inmem"
	testutil "github.com/trezcool/edudash/tests"
)

func newService(t *testing.T) *user.Service {
	return user.NewService(inmemdb.NewUserRepository(testutil.OpenDB(t)))
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	tests := []struct {
		name      string
		email     string
		wantID    string
		wantEmail string
		wantRole  string
	}{
		{name: "known user", email: "analyst@example.com", wantID: "2", wantEmail: "analyst@example.com", wantRole: user.RoleAnalyst},
		{name: "known user, any case", email: " Viewer@Example.com ", wantID: "3", wantEmail: "viewer@example.com", wantRole: user.RoleViewer},
		{name: "unknown user signs in as mock admin", email: "Guest@School.ng", wantID: "1", wantEmail: "guest@school.ng", wantRole: user.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.SignIn(ctx, user.Credentials{Email: tt.email, Password: "anything"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, usr.ID)
			assert.Equal(t, tt.wantEmail, usr.Email)
			assert.Equal(t, tt.wantRole, usr.Role)
		})
	}
}

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, user.NewUser{Email: "admin@example.com", Role: user.RoleViewer})
	assert.EqualError(t, err, "a user with this email already exists")

	usr, err := svc.Create(ctx, user.NewUser{Email: "head@school.ng", Role: user.RoleViewer})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)

	// keeping its own email is fine
	usr, err = svc.Update(ctx, usr.ID, user.UpdateUser{Email: "head@school.ng", Role: user.RoleAnalyst})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAnalyst, usr.Role)

	_, err = svc.Update(ctx, usr.ID, user.UpdateUser{Email: "viewer@example.com", Role: user.RoleAnalyst})
	assert.EqualError(t, err, "a user with this email already exists")

	users, err := svc.List(ctx, user.Filter{Role: user.RoleAnalyst}, core.ParseOrderings("-email"))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "head@school.ng", users[0].Email)

	require.NoError(t, svc.Delete(ctx, usr.ID))
	_, err = svc.GetByID(ctx, usr.ID)
	assert.EqualError(t, err, "user not found")
}

func TestFilter(t *testing.T) {
	var f user.Filter
	require.NoError(t, f.Set("email", "EXAMPLE"))
	require.NoError(t, f.Set("role", user.RoleAdmin))
	assert.True(t, f.Match(user.User{Email: "admin@example.com", Role: user.RoleAdmin}))
	assert.False(t, f.Match(user.User{Email: "admin@example.com", Role: user.RoleViewer}))

	assert.EqualError(t, f.Set("role", "root"), "role: invalid choice")
	assert.EqualError(t, f.Set("name", "x"), "name: unknown filter")
}

func TestNewUser_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	nu := user.NewUser{Email: " Head@School.NG ", Role: "Viewer"}
	require.NoError(t, nu.Validate(validate))
	assert.Equal(t, user.NewUser{Email: "head@school.ng", Role: user.RoleViewer}, nu)

	nu = user.NewUser{Email: "not-an-email", Role: "root"}
	assert.Error(t, nu.Validate(validate))

	creds := user.Credentials{Email: "  "}
	assert.Error(t, creds.Validate(validate))
}
