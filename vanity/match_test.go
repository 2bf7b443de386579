package vanity

import (
	"testing"

	"vanity-bot/models"
)

func settingsWith(mutate func(*models.GuildSettings)) models.GuildSettings {
	s := models.DefaultGuildSettings()
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestComputeMatchesSubstring(t *testing.T) {
	triggers := models.TriggerMap{"gamer": "roleA"}

	d := ComputeMatches("certified gamer here", triggers, settingsWith(nil), false)
	if d["roleA"] != "gamer" {
		t.Errorf("decision = %v, want roleA via \"gamer\"", d)
	}

	d = ComputeMatches("just vibing", triggers, settingsWith(nil), false)
	if len(d) != 0 {
		t.Errorf("decision = %v, want empty", d)
	}
}

func TestComputeMatchesCaseSensitivity(t *testing.T) {
	triggers := models.TriggerMap{"hello": "roleA"}

	d := ComputeMatches("Hello World", triggers, settingsWith(nil), false)
	if len(d) != 1 {
		t.Errorf("case-insensitive match failed: %v", d)
	}

	d = ComputeMatches("Hello World", triggers, settingsWith(func(s *models.GuildSettings) {
		s.CaseSensitive = true
	}), false)
	if len(d) != 0 {
		t.Errorf("case-sensitive match should fail: %v", d)
	}
}

func TestComputeMatchesExact(t *testing.T) {
	triggers := models.TriggerMap{"gamer": "roleA"}
	settings := settingsWith(func(s *models.GuildSettings) { s.MatchMode = models.MatchExact })

	if d := ComputeMatches("gamer", triggers, settings, false); len(d) != 1 {
		t.Errorf("exact match failed: %v", d)
	}
	if d := ComputeMatches("pro gamer", triggers, settings, false); len(d) != 0 {
		t.Errorf("exact mode should not substring-match: %v", d)
	}
}

func TestComputeMatchesWordBoundary(t *testing.T) {
	triggers := models.TriggerMap{"art": "roleA"}
	settings := settingsWith(func(s *models.GuildSettings) { s.MatchMode = models.MatchWordBoundary })

	if d := ComputeMatches("i make art daily", triggers, settings, false); len(d) != 1 {
		t.Errorf("word boundary match failed: %v", d)
	}
	if d := ComputeMatches("departure lounge", triggers, settings, false); len(d) != 0 {
		t.Errorf("word boundary should not match inside a word: %v", d)
	}
}

func TestComputeMatchesLongestFirst(t *testing.T) {
	triggers := models.TriggerMap{
		"gamer":     "roleA",
		"pro gamer": "roleB",
	}

	d := ComputeMatches("pro gamer for life", triggers, settingsWith(nil), false)
	if len(d) != 1 {
		t.Fatalf("longest_first must collapse to one role, got %v", d)
	}
	if d["roleB"] != "pro gamer" {
		t.Errorf("decision = %v, want roleB via \"pro gamer\"", d)
	}
	if _, ok := d["roleA"]; ok {
		t.Error("roleA must not be granted even though \"gamer\" also matches")
	}
}

func TestComputeMatchesShortestFirst(t *testing.T) {
	triggers := models.TriggerMap{
		"gamer":     "roleA",
		"pro gamer": "roleB",
	}
	settings := settingsWith(func(s *models.GuildSettings) {
		s.PriorityMode = models.PriorityShortestFirst
	})

	d := ComputeMatches("pro gamer for life", triggers, settings, false)
	if len(d) != 1 || d["roleA"] != "gamer" {
		t.Errorf("decision = %v, want only roleA via \"gamer\"", d)
	}
}

func TestComputeMatchesPriorityCountsCharacters(t *testing.T) {
	// "ééé" is 6 bytes but 3 characters; "abcd" must win longest_first.
	triggers := models.TriggerMap{
		"ééé":  "roleA",
		"abcd": "roleB",
	}

	d := ComputeMatches("ééé abcd", triggers, settingsWith(nil), false)
	if len(d) != 1 || d["roleB"] != "abcd" {
		t.Errorf("longest_first decision = %v, want roleB via 4-character \"abcd\"", d)
	}

	settings := settingsWith(func(s *models.GuildSettings) {
		s.PriorityMode = models.PriorityShortestFirst
	})
	d = ComputeMatches("ééé abcd", triggers, settings, false)
	if len(d) != 1 || d["roleA"] != "ééé" {
		t.Errorf("shortest_first decision = %v, want roleA via 3-character \"ééé\"", d)
	}
}

func TestComputeMatchesWordBoundaryNonASCII(t *testing.T) {
	triggers := models.TriggerMap{"café": "roleA"}
	settings := settingsWith(func(s *models.GuildSettings) { s.MatchMode = models.MatchWordBoundary })

	if d := ComputeMatches("best café in town", triggers, settings, false); len(d) != 1 {
		t.Errorf("word boundary should match %v", d)
	}
	if d := ComputeMatches("too much caféine", triggers, settings, false); len(d) != 0 {
		t.Errorf("word boundary must not match inside \"caféine\": %v", d)
	}
}

func TestComputeMatchesAll(t *testing.T) {
	triggers := models.TriggerMap{
		"gamer":     "roleA",
		"pro gamer": "roleB",
	}
	settings := settingsWith(func(s *models.GuildSettings) {
		s.PriorityMode = models.PriorityAll
	})

	d := ComputeMatches("pro gamer for life", triggers, settings, false)
	if len(d) != 2 {
		t.Errorf("priority all should keep both matches, got %v", d)
	}
}

func TestComputeMatchesTieBreakDeterministic(t *testing.T) {
	// Two equal-length triggers both match; the lexicographically first one
	// must win every time.
	triggers := models.TriggerMap{
		"abc": "roleA",
		"xyz": "roleB",
	}

	for i := 0; i < 20; i++ {
		d := ComputeMatches("abc xyz", triggers, settingsWith(nil), false)
		if len(d) != 1 || d["roleA"] != "abc" {
			t.Fatalf("tie-break not deterministic on run %d: %v", i, d)
		}
	}
}

func TestComputeMatchesInviteGate(t *testing.T) {
	triggers := models.TriggerMap{"gamer": "roleA"}
	settings := settingsWith(func(s *models.GuildSettings) {
		s.RequireServerInviteMatch = true
	})

	if d := ComputeMatches("certified gamer", triggers, settings, false); len(d) != 0 {
		t.Errorf("invite gate must suppress all matches, got %v", d)
	}
	if d := ComputeMatches("certified gamer", triggers, settings, true); len(d) != 1 {
		t.Errorf("invite present, expected match, got %v", d)
	}
}

func TestComputeMatchesEnabledTriggerFilter(t *testing.T) {
	triggers := models.TriggerMap{
		"gamer":  "roleA",
		"artist": "roleB",
	}
	settings := settingsWith(func(s *models.GuildSettings) {
		s.PriorityMode = models.PriorityAll
		s.EnabledTriggers = []string{"artist"}
	})

	d := ComputeMatches("gamer and artist", triggers, settings, false)
	if len(d) != 1 || d["roleB"] != "artist" {
		t.Errorf("enabled filter should keep only artist, got %v", d)
	}
}

func TestComputeMatchesEmptyInputs(t *testing.T) {
	if d := ComputeMatches("anything", models.TriggerMap{}, settingsWith(nil), false); len(d) != 0 {
		t.Errorf("empty trigger map must yield empty decision, got %v", d)
	}

	// An empty trigger that leaked into an old file must not match
	// everything.
	triggers := models.TriggerMap{"": "roleA"}
	if d := ComputeMatches("anything", triggers, settingsWith(nil), false); len(d) != 0 {
		t.Errorf("empty trigger must never match, got %v", d)
	}

	triggers = models.TriggerMap{"gamer": "roleA"}
	if d := ComputeMatches("", triggers, settingsWith(nil), false); len(d) != 0 {
		t.Errorf("empty status must not match, got %v", d)
	}
}
