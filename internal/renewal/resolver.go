// Package renewal implements the bulk renewal-update pipeline: resolving
// target PO line IDs from explicit arguments and/or an Alma set, then
// rewriting the renewal fields on each record best-effort.
package renewal

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"porenew/internal/alma"
	"porenew/internal/logging"

	"go.uber.org/zap"
)

// ErrNoTargets means neither a set reference nor any literal PO line IDs
// were supplied. Callers should treat it as a usage error.
var ErrNoTargets = errors.New("renewal: no set reference and no PO line IDs given")

// SetAPI is the slice of the Alma client the resolver needs.
type SetAPI interface {
	FindSetByName(ctx context.Context, name string) (*alma.Set, error)
	GetSet(ctx context.Context, setID string) (*alma.Set, error)
	SetMembers(ctx context.Context, setID string) ([]string, error)
}

// Target describes which PO lines to update: zero or more literal IDs
// plus an optional set reference. SetID wins over SetName when both are
// given.
type Target struct {
	SetID     string
	SetName   string
	POLineIDs []string
}

// Empty reports whether the target names nothing at all.
func (t Target) Empty() bool {
	return t.SetID == "" && t.SetName == "" && len(t.POLineIDs) == 0
}

// Resolver turns a Target into a concrete list of PO line IDs.
type Resolver struct {
	api SetAPI
	log *zap.Logger
}

// NewResolver creates a resolver. A nil logger is replaced with a no-op.
func NewResolver(api SetAPI, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{api: api, log: log}
}

// Resolve returns the union of the target's literal IDs and the members
// of its set reference, de-duplicated and sorted. Fails with ErrNoTargets
// before any network call when the target is empty.
func (r *Resolver) Resolve(ctx context.Context, t Target) ([]string, error) {
	if t.Empty() {
		return nil, ErrNoTargets
	}

	seen := make(map[string]struct{}, len(t.POLineIDs))
	for _, id := range t.POLineIDs {
		seen[id] = struct{}{}
	}

	set, err := r.lookupSet(ctx, t)
	if err != nil {
		return nil, err
	}
	if set != nil {
		// The member list is still authoritative either way; these just
		// flag sets that Alma may refresh or hide underneath us.
		if !set.Itemized() {
			r.log.Warn("set is not itemized; membership may not be stable",
				zap.String("set_id", set.ID), zap.String("type", set.Type.Value))
		}
		if !set.Public() {
			r.log.Warn("set is private", zap.String("set_id", set.ID))
		}

		members, err := r.api.SetMembers(ctx, set.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of set %s: %w", set.ID, err)
		}
		for _, id := range members {
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	logging.Renewal("resolved %d target PO lines (%d literal)", len(ids), len(t.POLineIDs))
	r.log.Info("resolved targets",
		zap.Int("total", len(ids)),
		zap.Int("literal", len(t.POLineIDs)))
	return ids, nil
}

func (r *Resolver) lookupSet(ctx context.Context, t Target) (*alma.Set, error) {
	switch {
	case t.SetID != "":
		set, err := r.api.GetSet(ctx, t.SetID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up set %q: %w", t.SetID, err)
		}
		return set, nil
	case t.SetName != "":
		set, err := r.api.FindSetByName(ctx, t.SetName)
		if err != nil {
			return nil, fmt.Errorf("failed to find set named %q: %w", t.SetName, err)
		}
		return set, nil
	default:
		return nil, nil
	}
}
