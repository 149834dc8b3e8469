package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSerializationConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres serialization", errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), true},
		{"postgres deadlock", errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{"sqlite busy", errors.New("database is locked"), true},
		{"postgres unique violation", errors.New("ERROR: duplicate key value violates unique constraint \"idx_recipe_likes_user\" (SQLSTATE 23505)"), true},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: recipe_likes.recipe_id, recipe_likes.user_id"), true},
		{"plain not found", errors.New("record not found"), false},
		{"connection refused", errors.New("dial tcp: connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSerializationConflict(tc.err))
		})
	}
}

func TestActorCanModerate(t *testing.T) {
	owner := Actor{UserID: "u1", Role: RoleUser}
	admin := Actor{UserID: "a1", Role: RoleAdmin}
	stranger := Actor{UserID: "u2", Role: RoleUser}
	anonymous := Actor{}

	assert.True(t, owner.CanModerate("u1"))
	assert.True(t, admin.CanModerate("u1"))
	assert.False(t, stranger.CanModerate("u1"))
	assert.False(t, anonymous.CanModerate("u1"))
	assert.False(t, anonymous.CanModerate(""))
}
