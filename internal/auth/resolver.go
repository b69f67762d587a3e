package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/utils"
)

// ErrStoreUnavailable indicates a role store probe failed for backend
// reasons. It is never folded into "unassigned": an unreachable store
// means the role is unknown, not absent.
var ErrStoreUnavailable = errors.New("role store unavailable")

// RoleStore answers membership probes for exactly one role.
type RoleStore interface {
	// Role identifies which role this store backs.
	Role() models.Role

	// Contains reports whether uid has a record in this store.
	Contains(ctx context.Context, uid string) (bool, error)
}

// Resolution is the outcome of a role lookup. Role is RoleUnassigned
// when no store claimed the uid; Matches lists every store that did,
// in resolution order, and has more than one entry only when ambiguity
// detection is on and the uid appears in multiple stores.
type Resolution struct {
	Role    models.Role
	Matches []models.Role
}

// Unassigned reports whether the lookup ended with no role.
func (r Resolution) Unassigned() bool {
	return r.Role == models.RoleUnassigned
}

// EventSink receives resolution outcomes for publication. Implementations
// must not block; a nil sink disables publication.
type EventSink interface {
	RoleResolved(ctx context.Context, uid string, role models.Role)
	AmbiguousRecord(ctx context.Context, uid string, roles []models.Role)
}

// ResolverOptions tunes resolution behavior.
type ResolverOptions struct {
	// ProbeTimeout bounds each individual store probe. Zero disables the
	// per-probe deadline.
	ProbeTimeout time.Duration

	// DetectAmbiguity keeps probing after the first match so that a uid
	// present in more than one store is reported. The first match still
	// wins either way.
	DetectAmbiguity bool

	// Sink receives resolution events. May be nil.
	Sink EventSink
}

// Resolver determines a user's role by probing the role stores in a
// fixed priority order: admins, then students, then job seekers, then
// mentors. The first store that claims the uid decides the role.
type Resolver struct {
	stores  []RoleStore
	opts    ResolverOptions
	logger  utils.Logger
}

// NewResolver creates a resolver over the given stores. Stores are
// reordered to match the canonical resolution order; stores for unknown
// roles are rejected.
func NewResolver(stores []RoleStore, logger utils.Logger, opts ResolverOptions) (*Resolver, error) {
	ordered := make([]RoleStore, 0, len(stores))
	for _, role := range models.ResolutionOrder {
		idx := slices.IndexFunc(stores, func(s RoleStore) bool { return s.Role() == role })
		if idx >= 0 {
			ordered = append(ordered, stores[idx])
		}
	}

	if len(ordered) != len(stores) {
		return nil, fmt.Errorf("resolver configured with a store outside the resolution order")
	}

	return &Resolver{
		stores: ordered,
		opts:   opts,
		logger: logger,
	}, nil
}

// Resolve probes the stores in order and returns the first match.
// A uid found in no store resolves to RoleUnassigned with a nil error;
// that is a terminal outcome, not a failure. A store error before the
// first match aborts with ErrStoreUnavailable, because a missing answer
// from a higher-priority store could hide a higher-priority role.
func (r *Resolver) Resolve(ctx context.Context, uid string) (Resolution, error) {
	var matches []models.Role

	for _, store := range r.stores {
		if len(matches) > 0 && !r.opts.DetectAmbiguity {
			break
		}

		found, err := r.probe(ctx, store, uid)
		if err != nil {
			if len(matches) > 0 {
				// The winning role is already known; a failed probe only
				// degrades ambiguity detection.
				r.logger.Warn("role store probe failed after match",
					"uid", uid,
					"store", store.Role(),
					"error", err)
				continue
			}
			r.logger.Error("role store probe failed",
				"uid", uid,
				"store", store.Role(),
				"error", err)
			return Resolution{}, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, store.Role(), err)
		}

		if found {
			matches = append(matches, store.Role())
		}
	}

	res := Resolution{Role: models.RoleUnassigned, Matches: matches}
	if len(matches) > 0 {
		res.Role = matches[0]
	}

	if len(matches) > 1 {
		r.logger.Warn("uid present in multiple role stores",
			"uid", uid,
			"roles", matches,
			"resolved", res.Role)
		if r.opts.Sink != nil {
			r.opts.Sink.AmbiguousRecord(ctx, uid, matches)
		}
	}

	if r.opts.Sink != nil {
		r.opts.Sink.RoleResolved(ctx, uid, res.Role)
	}

	return res, nil
}

func (r *Resolver) probe(ctx context.Context, store RoleStore, uid string) (bool, error) {
	probeCtx := ctx
	if r.opts.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, r.opts.ProbeTimeout)
		defer cancel()
	}

	return store.Contains(probeCtx, uid)
}
