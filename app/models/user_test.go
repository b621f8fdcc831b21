package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("jdoe", "jdoe@example.com", "secret123", RoleSubscriber)
	require.NoError(t, err)

	assert.Equal(t, "jdoe", u.Username)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.True(t, u.IsSubscriber())
	assert.False(t, u.IsProvider())
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		role     string
	}{
		{name: "short username", username: "ab", email: "a@example.com", password: "secret123", role: RoleProvider},
		{name: "bad email", username: "someone", email: "not-an-email", password: "secret123", role: RoleProvider},
		{name: "short password", username: "someone", email: "a@example.com", password: "pw", role: RoleProvider},
		{name: "unknown role", username: "someone", email: "a@example.com", password: "secret123", role: "superuser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.username, tt.email, tt.password, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestSetPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("first-password"))
	first := u.Password

	require.NoError(t, u.SetPassword("second-password"))
	assert.NotEqual(t, first, u.Password)
	assert.True(t, u.CheckPassword("second-password"))
	assert.False(t, u.CheckPassword("first-password"))
}

func TestRecordLogin(t *testing.T) {
	u := &User{}
	require.Nil(t, u.LastLoginAt)

	u.RecordLogin("203.0.113.7")

	assert.NotNil(t, u.LastLoginAt)
	assert.Equal(t, "203.0.113.7", u.LastLoginIP)
}
