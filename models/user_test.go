package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(RegisterInput{
		Name:     " Dana ",
		Email:    " Dana@Example.COM ",
		Password: "secret-pass",
		Phone:    "555 123 4567",
	}, RoleUser, testNow)
	require.NoError(t, err)

	assert.Equal(t, "Dana", u.Name)
	assert.Equal(t, "dana@example.com", u.Email)
	assert.Equal(t, UserActive, u.Status)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, testNow, u.RegisteredAt)
	assert.NotEqual(t, "secret-pass", u.Password)
	assert.True(t, u.ComparePassword("secret-pass"))
	assert.False(t, u.ComparePassword("wrong"))
}

func TestNewUserFieldErrors(t *testing.T) {
	_, err := NewUser(RegisterInput{
		Name:     strings.Repeat("n", 51),
		Email:    "nope",
		Password: "123",
		Phone:    "12",
	}, RoleUser, testNow)

	assert.ElementsMatch(t, []string{"name", "email", "password", "phone"}, fieldNames(t, err))
}

func TestSetPasswordClearsReset(t *testing.T) {
	u, err := NewUser(RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "secret-pass"}, RoleUser, testNow)
	require.NoError(t, err)

	expires := testNow
	u.ResetPasswordToken = "digest"
	u.ResetPasswordExpires = &expires

	require.NoError(t, u.SetPassword("another-pass", testNow))
	assert.True(t, u.ComparePassword("another-pass"))
	assert.Empty(t, u.ResetPasswordToken)
	assert.Nil(t, u.ResetPasswordExpires)

	assert.Equal(t, []string{"password"}, fieldNames(t, u.SetPassword("abc", testNow)))
}

func TestApplyProfile(t *testing.T) {
	u := &User{Name: "Dana", Email: "dana@example.com", Status: UserActive}

	loc := "  Riverside  "
	require.NoError(t, u.ApplyProfile(ProfileInput{Location: &loc}, testNow))
	assert.Equal(t, "Riverside", u.Location)
	assert.Equal(t, "Dana", u.Name)

	empty := ""
	assert.Equal(t, []string{"name"}, fieldNames(t, u.ApplyProfile(ProfileInput{Name: &empty}, testNow)))
}

func TestCanLogin(t *testing.T) {
	assert.True(t, (&User{}).CanLogin())
	assert.True(t, (&User{Status: UserActive}).CanLogin())
	assert.False(t, (&User{Status: UserInactive}).CanLogin())
	assert.False(t, (&User{Status: UserSuspended}).CanLogin())
}

func TestParseUserStatus(t *testing.T) {
	s, err := ParseUserStatus("suspended")
	require.NoError(t, err)
	assert.Equal(t, UserSuspended, s)

	_, err = ParseUserStatus("banned")
	assert.Equal(t, []string{"status"}, fieldNames(t, err))
}
