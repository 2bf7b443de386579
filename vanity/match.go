package vanity

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"vanity-bot/models"
)

// Decision maps a role ID to the trigger text that selected it. Under
// longest_first and shortest_first the map holds at most one entry.
type Decision map[string]string

// ComputeMatches evaluates a member's status text against a guild's trigger
// map and returns the roles that should apply.
func ComputeMatches(statusText string, triggers models.TriggerMap, settings models.GuildSettings, hasInvite bool) Decision {
	decision := Decision{}

	// Hard gate: without an invite in the status nothing matches.
	if settings.RequireServerInviteMatch && !hasInvite {
		return decision
	}
	if len(triggers) == 0 {
		return decision
	}

	enabled := make(map[string]bool, len(settings.EnabledTriggers))
	for _, t := range settings.EnabledTriggers {
		enabled[t] = true
	}

	status := statusText
	if !settings.CaseSensitive {
		status = strings.ToLower(status)
	}

	// Sorted iteration keeps priority tie-breaking deterministic: among
	// equal-length candidates the lexicographically first trigger wins.
	keys := make([]string, 0, len(triggers))
	for k := range triggers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	type match struct {
		trigger string
		roleID  string
	}
	var matches []match

	for _, trigger := range keys {
		// Empty triggers are rejected at creation time; skip any that made
		// it into an old file so they cannot match everything.
		if strings.TrimSpace(trigger) == "" {
			continue
		}
		if len(enabled) > 0 && !enabled[trigger] {
			continue
		}

		check := trigger
		if !settings.CaseSensitive {
			check = strings.ToLower(check)
		}

		var ok bool
		switch settings.MatchMode {
		case models.MatchExact:
			ok = status == check
		case models.MatchWordBoundary:
			ok = wordBoundaryMatch(status, check)
		default: // substring
			ok = strings.Contains(status, check)
		}
		if ok {
			matches = append(matches, match{trigger: trigger, roleID: triggers[trigger]})
		}
	}

	// Priority ranks by character count, not byte count, so non-ASCII
	// triggers are not over-weighted.
	switch settings.PriorityMode {
	case models.PriorityLongestFirst:
		if len(matches) > 1 {
			best := matches[0]
			for _, m := range matches[1:] {
				if utf8.RuneCountInString(m.trigger) > utf8.RuneCountInString(best.trigger) {
					best = m
				}
			}
			matches = []match{best}
		}
	case models.PriorityShortestFirst:
		if len(matches) > 1 {
			best := matches[0]
			for _, m := range matches[1:] {
				if utf8.RuneCountInString(m.trigger) < utf8.RuneCountInString(best.trigger) {
					best = m
				}
			}
			matches = []match{best}
		}
	}

	for _, m := range matches {
		decision[m.roleID] = m.trigger
	}
	return decision
}

// wordBoundaryMatch reports whether trigger occurs in status delimited by
// non-word runes. Go's regexp \b is ASCII-only, so boundaries are checked by
// rune class instead; "café" must not match inside "caféine".
func wordBoundaryMatch(status, trigger string) bool {
	if trigger == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(status[start:], trigger)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(trigger)
		if boundaryBefore(status, idx) && boundaryAfter(status, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(status[idx:])
		start = idx + size
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !isWordRune(r)
}

func boundaryAfter(s string, end int) bool {
	if end == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
