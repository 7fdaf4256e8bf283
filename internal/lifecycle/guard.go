package lifecycle

import (
	"context"
	"fmt"
)

// GuardedEngine runs an AuthorizationGate before each transition. The
// gate decides who may ask; the transition table still decides which
// transitions exist.
type GuardedEngine struct {
	*Engine
	Gate AuthorizationGate
}

// NewGuardedEngine wraps e with gate. A nil gate allows everything.
func NewGuardedEngine(e *Engine, gate AuthorizationGate) *GuardedEngine {
	if gate == nil {
		gate = AllowAll{}
	}
	return &GuardedEngine{Engine: e, Gate: gate}
}

// RequestTransition authorizes actor and then delegates to Engine.
func (g *GuardedEngine) RequestTransition(ctx context.Context, rec *Record, to State, actor, note string) (*Record, error) {
	if err := g.Gate.Authorize(ctx, actor, rec, to); err != nil {
		return nil, fmt.Errorf("authorize %s: %w", actor, err)
	}
	return g.Engine.RequestTransition(ctx, rec, to, actor, note)
}
