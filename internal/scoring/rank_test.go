package scoring

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
)

func testUser(username string, lastSubmit *time.Time) models.User {
	return models.User{
		ID:         "id-" + username,
		Username:   username,
		LastSubmit: lastSubmit,
	}
}

func fixedScores(scores map[string]int) func(u *models.User) int {
	return func(u *models.User) int {
		return scores[u.Username]
	}
}

func rankedUsernames(ranked []RankedUser) []string {
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.User.Username
	}
	return names
}

func TestRankUsers_TieBrokenByMostRecentSubmit(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := base.Add(-time.Hour)
	later := base

	users := []models.User{
		testUser("bob", &earlier),
		testUser("alice", &later),
		testUser("carol", &earlier),
	}
	scores := fixedScores(map[string]int{"alice": 100, "bob": 100, "carol": 50})

	ranked := RankUsers(users, "admin", scores)

	want := []string{"alice", "bob", "carol"}
	if got := rankedUsernames(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}

	rank, err := RankOf("carol", "admin", ranked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rank != 3 {
		t.Fatalf("expected carol at rank 3, got %d", rank)
	}
}

func TestRankUsers_ExcludesAdmin(t *testing.T) {
	now := time.Now()
	users := []models.User{
		testUser("admin", &now),
		testUser("alice", &now),
	}
	scores := fixedScores(map[string]int{"admin": 9999, "alice": 10})

	ranked := RankUsers(users, "admin", scores)
	if len(ranked) != 1 || ranked[0].User.Username != "alice" {
		t.Fatalf("expected admin to be excluded, got %v", rankedUsernames(ranked))
	}
}

func TestRankOf_AdminSentinel(t *testing.T) {
	rank, err := RankOf("admin", "admin", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rank != AdminRank {
		t.Fatalf("expected admin sentinel %d, got %d", AdminRank, rank)
	}
}

func TestRankOf_MissingUser(t *testing.T) {
	ranked := RankUsers([]models.User{testUser("alice", nil)}, "admin", fixedScores(nil))
	if _, err := RankOf("mallory", "admin", ranked); !errors.Is(err, ErrNotRanked) {
		t.Fatalf("expected ErrNotRanked, got %v", err)
	}
}

func TestRankUsers_NeverSubmittedRanksBelow(t *testing.T) {
	now := time.Now()
	users := []models.User{
		testUser("idle", nil),
		testUser("active", &now),
	}
	scores := fixedScores(map[string]int{"idle": 50, "active": 50})

	ranked := RankUsers(users, "admin", scores)
	want := []string{"active", "idle"}
	if got := rankedUsernames(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestRankUsers_DeterministicOnFullTie(t *testing.T) {
	now := time.Now()
	users := []models.User{
		testUser("zoe", &now),
		testUser("amy", &now),
	}
	scores := fixedScores(map[string]int{"zoe": 50, "amy": 50})

	first := rankedUsernames(RankUsers(users, "admin", scores))
	for i := 0; i < 10; i++ {
		again := rankedUsernames(RankUsers(users, "admin", scores))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("ranking not deterministic: %v vs %v", first, again)
		}
	}
}
