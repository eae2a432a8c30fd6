package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(" " + string(r) + " ")
		assert.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRole("ADMIN")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, got)

	_, err = ParseRole("owner")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRole_Label(t *testing.T) {
	assert.Equal(t, "시스템 관리자", RoleAdmin.Label())
	assert.Equal(t, "조회 전용", RoleViewer.Label())
	assert.Equal(t, "미설정", Role("x").Label())
}
