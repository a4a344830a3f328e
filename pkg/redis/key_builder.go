package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Group lifecycle key builders
func (kb *KeyBuilder) KeyGroup(groupID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyGroup, groupID))
}

func (kb *KeyBuilder) KeyGroupMembers(groupID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyGroupMembers, groupID))
}

// Ready-check key builders
func (kb *KeyBuilder) KeyCheckBoard(groupID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCheckBoard, groupID))
}

func (kb *KeyBuilder) KeyMemberAnswer(checkID, memberID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyMemberAnswer, checkID, memberID))
}

// KeyCustom builds a key from a custom pattern
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(pattern, args...))
}
