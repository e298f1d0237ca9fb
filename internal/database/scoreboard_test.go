package database_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Challenge{}, &models.Solve{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedSolvedState(t *testing.T, db *gorm.DB) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := base.Add(-time.Hour)

	users := []models.User{
		{ID: "u-admin", Username: "admin"},
		{ID: "u-alice", Username: "alice", LastSubmit: &base},
		{ID: "u-bob", Username: "bob", LastSubmit: &earlier},
		{ID: "u-carol", Username: "carol", LastSubmit: &earlier},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	challenges := []models.Challenge{
		{ID: "c-1", Name: "web-one", Flag: "flag{1}", Score: 100, Solves: 2},
		{ID: "c-2", Name: "pwn-two", Flag: "flag{2}", Score: 50, Solves: 1},
	}
	for i := range challenges {
		if err := db.Create(&challenges[i]).Error; err != nil {
			t.Fatalf("failed to seed challenge: %v", err)
		}
	}

	solves := []models.Solve{
		{UserID: "u-alice", ChallengeID: "c-1"},
		{UserID: "u-bob", ChallengeID: "c-1"},
		{UserID: "u-carol", ChallengeID: "c-2"},
		{UserID: "u-admin", ChallengeID: "c-1"},
	}
	for i := range solves {
		if err := db.Create(&solves[i]).Error; err != nil {
			t.Fatalf("failed to seed solve: %v", err)
		}
	}
}

func TestBuildScoreboard_OrderAndAdminExclusion(t *testing.T) {
	db := newTestDB(t)
	seedSolvedState(t, db)

	rows, ranked, err := database.BuildScoreboard(db, "admin")
	if err != nil {
		t.Fatalf("BuildScoreboard failed: %v", err)
	}

	// alice and bob both hold 100, alice submitted later so ranks first;
	// carol trails with 50; admin never appears.
	want := []struct {
		username string
		score    int
	}{
		{"alice", 100},
		{"bob", 100},
		{"carol", 50},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Username != w.username || rows[i].Score != w.score || rows[i].Rank != i+1 {
			t.Fatalf("row %d = %+v, want %s/%d at rank %d", i, rows[i], w.username, w.score, i+1)
		}
	}

	rank, err := scoring.RankOf("carol", "admin", ranked)
	if err != nil {
		t.Fatalf("RankOf failed: %v", err)
	}
	if rank != 3 {
		t.Fatalf("expected carol at rank 3, got %d", rank)
	}
}

func TestBuildScoreboard_TotalsFollowStoredScores(t *testing.T) {
	db := newTestDB(t)
	seedSolvedState(t, db)

	// Challenge c-1 decays from 100 to 99. Both earlier solvers drop by one
	// without any action of their own.
	if err := db.Model(&models.Challenge{}).Where("id = ?", "c-1").Update("score", 99).Error; err != nil {
		t.Fatalf("failed to decay score: %v", err)
	}

	rows, _, err := database.BuildScoreboard(db, "admin")
	if err != nil {
		t.Fatalf("BuildScoreboard failed: %v", err)
	}
	for _, row := range rows {
		if row.Username == "alice" && row.Score != 99 {
			t.Fatalf("expected alice at 99 after decay, got %d", row.Score)
		}
		if row.Username == "bob" && row.Score != 99 {
			t.Fatalf("expected bob at 99 after decay, got %d", row.Score)
		}
	}
}

func TestBuildScoreboard_SkipsSolvesOfDeletedChallenges(t *testing.T) {
	db := newTestDB(t)
	seedSolvedState(t, db)

	if err := db.Delete(&models.Challenge{}, "id = ?", "c-2").Error; err != nil {
		t.Fatalf("failed to delete challenge: %v", err)
	}

	rows, _, err := database.BuildScoreboard(db, "admin")
	if err != nil {
		t.Fatalf("BuildScoreboard failed: %v", err)
	}
	for _, row := range rows {
		if row.Username == "carol" && row.Score != 0 {
			t.Fatalf("expected carol's orphaned solve to be skipped, got score %d", row.Score)
		}
	}
}

func TestCreateChallenge_DuplicateName(t *testing.T) {
	db := newTestDB(t)

	first := &models.Challenge{ID: "c-1", Name: "web-one", Flag: "flag{1}", Score: 100}
	if err := database.CreateChallenge(db, first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	dup := &models.Challenge{ID: "c-2", Name: "web-one", Flag: "flag{other}", Score: 100}
	err := database.CreateChallenge(db, dup)
	if err != database.ErrDuplicateName {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Challenge{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected duplicate create to be rolled back, found %d challenges", count)
	}
}

func TestGetRecentSolves_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	users := []models.User{
		{ID: "u-1", Username: "alice"},
		{ID: "u-2", Username: "bob"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	challenge := models.Challenge{ID: "c-1", Name: "web-one", Category: "web", Flag: "flag{1}", Score: 100}
	if err := db.Create(&challenge).Error; err != nil {
		t.Fatalf("failed to seed challenge: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	solves := []models.Solve{
		{UserID: "u-1", ChallengeID: "c-1", CreatedAt: base},
		{UserID: "u-2", ChallengeID: "c-1", CreatedAt: base.Add(time.Minute)},
	}
	for i := range solves {
		if err := db.Create(&solves[i]).Error; err != nil {
			t.Fatalf("failed to seed solve: %v", err)
		}
	}

	feed, err := database.GetRecentSolves(db, 10)
	if err != nil {
		t.Fatalf("GetRecentSolves failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 feed entries, got %d", len(feed))
	}
	if feed[0].Username != "bob" || feed[1].Username != "alice" {
		t.Fatalf("expected newest solve first, got %+v", feed)
	}
	if feed[0].ChallengeName != "web-one" || feed[0].Category != "web" {
		t.Fatalf("unexpected feed entry: %+v", feed[0])
	}
}
