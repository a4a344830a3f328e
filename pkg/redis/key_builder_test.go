package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantPrefix  string
	}{
		{"production environment", "production", "prod"},
		{"development environment", "development", "staging"},
		{"staging environment", "staging", "staging"},
		{"test environment", "test", "staging"},
		{"unknown environment defaults to prod", "qa", "prod"},
		{"empty environment defaults to prod", "", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderGroupKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:squad:group:g-42", kb.KeyGroup("g-42"))
	assert.Equal(t, "prod:squad:group:g-42:members", kb.KeyGroupMembers("g-42"))
	assert.Equal(t, "prod:squad:group:g-42:checks", kb.KeyCheckBoard("g-42"))
}

func TestKeyBuilderMemberAnswerKey(t *testing.T) {
	kb := NewKeyBuilder("staging")

	key := kb.KeyMemberAnswer("chk-7", "m-1")
	assert.Equal(t, "staging:squad:check:chk-7:m-1", key)
}

func TestKeyBuilderCustomKey(t *testing.T) {
	kb := NewKeyBuilder("production")

	key := kb.KeyCustom("idem:%s", "create-check:g-1:u-1")
	assert.Equal(t, "prod:idem:create-check:g-1:u-1", key)
}

func TestKeyBuilderEnvironmentIsolation(t *testing.T) {
	// The same logical key must never collide across environments.
	prodKB := NewKeyBuilder("production")
	stagingKB := NewKeyBuilder("staging")

	assert.NotEqual(t, prodKB.KeyGroup("g-1"), stagingKB.KeyGroup("g-1"))
}
