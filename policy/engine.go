package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine for group management actions.
type Engine struct {
	query rego.PreparedEvalQuery
}

// Input is the document a group action is evaluated against.
type Input struct {
	Action       string   `json:"action"`
	ActorID      string   `json:"actor_id"`
	TargetID     string   `json:"target_id,omitempty"`
	ChatID       string   `json:"chat_id"`
	GroupAdmin   string   `json:"group_admin"`
	Participants []string `json:"participants"`
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chat_policy.allow"),
		rego.Module("chat_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// NewEngineForMode builds an engine from a named built-in policy.
func NewEngineForMode(ctx context.Context, mode string) (*Engine, error) {
	switch mode {
	case "", "default":
		return NewEngine(ctx, DefaultPolicy)
	case "admin_only":
		return NewEngine(ctx, AdminOnlyPolicy)
	default:
		return nil, fmt.Errorf("unknown group policy %q", mode)
	}
}

// Allowed reports whether the action described by input may proceed.
// An undefined result is treated as a deny.
func (e *Engine) Allowed(ctx context.Context, input Input) (bool, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}

	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy returned %T, want bool", results[0].Expressions[0].Value)
	}
	return allowed, nil
}

// DefaultPolicy lets any caller manage any group.
const DefaultPolicy = `
package chat_policy

default allow = true
`

// AdminOnlyPolicy restricts group management to the group admin. Members may
// always remove themselves.
const AdminOnlyPolicy = `
package chat_policy

default allow = false

allow {
	input.actor_id == input.group_admin
	input.group_admin != ""
}

allow {
	input.action == "remove_member"
	input.target_id == input.actor_id
}
`
