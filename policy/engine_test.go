package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyAllowsEverything(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngineForMode(ctx, "default")
	require.NoError(t, err)

	allowed, err := engine.Allowed(ctx, Input{Action: "rename", ActorID: "b", GroupAdmin: "a"})
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAdminOnlyPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngineForMode(ctx, "admin_only")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input Input
		want  bool
	}{
		{"admin renames", Input{Action: "rename", ActorID: "a", GroupAdmin: "a"}, true},
		{"member renames", Input{Action: "rename", ActorID: "b", GroupAdmin: "a"}, false},
		{"admin adds", Input{Action: "add_member", ActorID: "a", TargetID: "d", GroupAdmin: "a"}, true},
		{"member removes other", Input{Action: "remove_member", ActorID: "b", TargetID: "c", GroupAdmin: "a"}, false},
		{"member leaves", Input{Action: "remove_member", ActorID: "b", TargetID: "b", GroupAdmin: "a"}, true},
		{"no admin", Input{Action: "rename", ActorID: "b", GroupAdmin: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := engine.Allowed(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestUnknownPolicyMode(t *testing.T) {
	_, err := NewEngineForMode(context.Background(), "nope")
	assert.Error(t, err)
}
