package vanity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// maxMutationRetries bounds retries on platform throttling.
const maxMutationRetries = 3

// mutationDelay spaces consecutive mutations inside one member's pass, on
// top of the rate limiter.
const mutationDelay = 500 * time.Millisecond

// RoleMutator issues role mutations against the platform.
type RoleMutator interface {
	AddRole(guildID, userID, roleID, reason string) error
	RemoveRole(guildID, userID, roleID, reason string) error
}

// RoleBinding ties a resolved guild role to the trigger text configured for
// it.
type RoleBinding struct {
	Role    *discordgo.Role
	Trigger string
}

// Mutation records one attempted role change.
type Mutation struct {
	RoleID   string
	RoleName string
	Action   string
	Trigger  string
	Reason   string
	Err      error
}

// Result aggregates the outcome of one member's reconciliation, structured
// enough for a manual-check caller to report per-role outcomes.
type Result struct {
	Applied []Mutation
	Failed  []Mutation
	Skipped []Mutation // hierarchy-guarded roles, never attempted
}

// Changed reports whether any mutation was attempted.
func (r Result) Changed() bool {
	return len(r.Applied) > 0 || len(r.Failed) > 0
}

// Reconciler closes the gap between the roles a member should have and the
// vanity roles they currently have, one mutation at a time through the rate
// limiter.
type Reconciler struct {
	mutator RoleMutator
	limiter *RateLimiter

	// opDelay is overridable so tests do not wait out real delays.
	opDelay time.Duration
}

// NewReconciler creates a reconciler that mutates through m, gated by rl.
func NewReconciler(m RoleMutator, rl *RateLimiter) *Reconciler {
	return &Reconciler{mutator: m, limiter: rl, opDelay: mutationDelay}
}

// Reconcile diffs the decision against the member's current vanity roles and
// issues the minimal set of add/remove mutations. Running it twice with no
// state change in between performs zero mutations the second time. A single
// failed mutation never aborts the rest of the member's pass.
func (r *Reconciler) Reconcile(ctx context.Context, guildID string, obs Observation, decision Decision, bindings map[string]RoleBinding, botTopPos int) Result {
	var res Result

	// Additions: decided roles the member does not have yet.
	for _, roleID := range sortedKeys(decision) {
		if obs.CurrentRoles[roleID] {
			continue
		}
		binding, ok := bindings[roleID]
		if !ok {
			continue
		}
		trigger := decision[roleID]
		reason := "Vanity trigger matched: " + trigger
		m := r.mutate(ctx, guildID, obs.MemberID, binding.Role, ActionAdded, trigger, reason, botTopPos)
		res.record(m)
		if !isHierarchySkip(m.Err) {
			if err := sleepCtx(ctx, r.opDelay); err != nil {
				return res
			}
		}
	}

	// Removals: vanity-managed roles the member has but should not.
	for _, roleID := range sortedBindingKeys(bindings) {
		if !obs.CurrentRoles[roleID] {
			continue
		}
		if _, keep := decision[roleID]; keep {
			continue
		}
		binding := bindings[roleID]
		m := r.mutate(ctx, guildID, obs.MemberID, binding.Role, ActionRemoved, binding.Trigger, "Vanity trigger no longer matched", botTopPos)
		res.record(m)
		if !isHierarchySkip(m.Err) {
			if err := sleepCtx(ctx, r.opDelay); err != nil {
				return res
			}
		}
	}

	return res
}

// mutate performs one guarded, rate-limited, retried role change.
func (r *Reconciler) mutate(ctx context.Context, guildID, userID string, role *discordgo.Role, action, trigger, reason string, botTopPos int) Mutation {
	m := Mutation{RoleID: role.ID, RoleName: role.Name, Action: action, Trigger: trigger, Reason: reason}

	// The platform forbids managing roles at or above the bot's own top
	// role; not retryable, so never attempt it.
	if role.Position >= botTopPos {
		log.Printf("Cannot %s role %s for member %s: role hierarchy", verbFor(action), role.Name, userID)
		m.Err = &PermissionError{Message: "role hierarchy: role is at or above the bot's top role"}
		return m
	}

	op := r.mutator.AddRole
	if action == ActionRemoved {
		op = r.mutator.RemoveRole
	}

	for attempt := 1; attempt <= maxMutationRetries; attempt++ {
		if err := r.limiter.Acquire(ctx); err != nil {
			m.Err = err
			return m
		}

		err := op(guildID, userID, role.ID, reason)
		if err == nil {
			log.Printf("%s role %s for member %s in guild %s (trigger: %s)", pastTense(action), role.Name, userID, guildID, trigger)
			return m
		}

		var throttled *ThrottledError
		if errors.As(err, &throttled) {
			log.Printf("Rate limited, waiting %s (attempt %d/%d)", throttled.RetryAfter, attempt, maxMutationRetries)
			if attempt == maxMutationRetries {
				break
			}
			if serr := sleepCtx(ctx, throttled.RetryAfter); serr != nil {
				m.Err = serr
				return m
			}
			continue
		}

		var perm *PermissionError
		if errors.As(err, &perm) {
			log.Printf("Missing permissions to %s role %s for member %s: %v", verbFor(action), role.Name, userID, err)
			m.Err = err
			return m
		}

		// Transient HTTP error: logged and abandoned, no retry.
		log.Printf("HTTP error while trying to %s role %s for member %s: %v", verbFor(action), role.Name, userID, err)
		m.Err = err
		return m
	}

	log.Printf("Failed to %s role %s for member %s after %d attempts", verbFor(action), role.Name, userID, maxMutationRetries)
	m.Err = fmt.Errorf("gave up after %d throttled attempts", maxMutationRetries)
	return m
}

func (res *Result) record(m Mutation) {
	switch {
	case m.Err == nil:
		res.Applied = append(res.Applied, m)
	case isHierarchySkip(m.Err):
		res.Skipped = append(res.Skipped, m)
	default:
		res.Failed = append(res.Failed, m)
	}
}

func isHierarchySkip(err error) bool {
	var perm *PermissionError
	return errors.As(err, &perm) && strings.HasPrefix(perm.Message, "role hierarchy")
}

func pastTense(action string) string {
	if action == ActionRemoved {
		return "Removed"
	}
	return "Added"
}

func verbFor(action string) string {
	if action == ActionRemoved {
		return "remove"
	}
	return "add"
}

func sortedKeys(d Decision) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBindingKeys(b map[string]RoleBinding) []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
