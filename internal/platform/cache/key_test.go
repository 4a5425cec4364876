package cache

import "testing"

func TestKeyString(t *testing.T) {
	t.Parallel()

	if got := DashboardKey("team-1", "season-9").String(); got != "dashboard:team-1:season-9" {
		t.Fatalf("unexpected dashboard key: %q", got)
	}
	if got := ResponseKey("team-1", "/api/teams/team-1/matches?limit=5").String(); got != "cache:team-1:/api/teams/team-1/matches?limit=5" {
		t.Fatalf("unexpected response key: %q", got)
	}
}

func TestTeamPrefix(t *testing.T) {
	t.Parallel()

	prefix := TeamPrefix(NamespaceDashboard, "12")
	if prefix != "dashboard:12:" {
		t.Fatalf("unexpected prefix: %q", prefix)
	}

	key12 := DashboardKey("12", "s1").String()
	key123 := DashboardKey("123", "s1").String()
	if len(key12) < len(prefix) || key12[:len(prefix)] != prefix {
		t.Fatalf("key %q must match its own team prefix %q", key12, prefix)
	}
	if len(key123) >= len(prefix) && key123[:len(prefix)] == prefix {
		t.Fatalf("key %q must not match prefix %q", key123, prefix)
	}
}
