package pointsController

import (
	"fmt"
	"testing"

	"lms/database"
	"lms/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	return db
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{600, 4},
		{1000, 5},
		{1500, 6},
		{2200, 7},
		{3000, 8},
		{4000, 9},
		{5000, 10},
		{99999, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d points", tt.total), func(t *testing.T) {
			if got := LevelForPoints(tt.total); got != tt.want {
				t.Errorf("LevelForPoints(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestAwardPointsFirstAwardCreatesLedger(t *testing.T) {
	db := setupTestDB(t)

	var result *AwardResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = AwardPoints(tx, 7, 25, models.PointsReasonQuizPass, "Passed quiz: Intro", 0)
		return txErr
	})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}

	if result.NewTotal != 25 || result.NewLevel != 1 || result.LeveledUp {
		t.Errorf("result = %+v, want total 25 level 1 no level-up", result)
	}

	var row models.UserPoints
	if err := db.Where("user_id = ?", 7).First(&row).Error; err != nil {
		t.Fatalf("ledger row not created: %v", err)
	}
	if row.TotalPoints != 25 || row.Level != 1 {
		t.Errorf("ledger = %d points level %d, want 25/1", row.TotalPoints, row.Level)
	}

	var txn models.PointsTransaction
	if err := db.Where("user_id = ?", 7).First(&txn).Error; err != nil {
		t.Fatalf("transaction row not created: %v", err)
	}
	if txn.TotalBefore != 0 || txn.TotalAfter != 25 || txn.LevelAfter != 1 {
		t.Errorf("transaction = %+v, want 0 -> 25 at level 1", txn)
	}
	if txn.Reason != models.PointsReasonQuizPass {
		t.Errorf("reason = %q, want %q", txn.Reason, models.PointsReasonQuizPass)
	}
}

func TestAwardPointsAccumulatesAndLevels(t *testing.T) {
	db := setupTestDB(t)

	award := func(points int) *AwardResult {
		t.Helper()
		var result *AwardResult
		err := db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			result, txErr = AwardPoints(tx, 3, points, models.PointsReasonAdminAward, "bonus", 1)
			return txErr
		})
		if err != nil {
			t.Fatalf("award failed: %v", err)
		}
		return result
	}

	if r := award(60); r.NewTotal != 60 || r.NewLevel != 1 || r.LeveledUp {
		t.Errorf("after 60: %+v, want 60/1 no level-up", r)
	}
	// 60 + 50 crosses the 100-point level boundary
	if r := award(50); r.NewTotal != 110 || r.NewLevel != 2 || !r.LeveledUp {
		t.Errorf("after 110: %+v, want 110/2 leveled up", r)
	}
	// Further points within the same level do not re-trigger the flag
	if r := award(50); r.NewTotal != 160 || r.NewLevel != 2 || r.LeveledUp {
		t.Errorf("after 160: %+v, want 160/2 no level-up", r)
	}
	// A single large award can jump multiple levels
	if r := award(500); r.NewTotal != 660 || r.NewLevel != 4 || !r.LeveledUp {
		t.Errorf("after 660: %+v, want 660/4 leveled up", r)
	}

	var txnCount int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", 3).Count(&txnCount)
	if txnCount != 4 {
		t.Errorf("transactions = %d, want 4", txnCount)
	}
}

func TestAwardPointsRejectsNonPositive(t *testing.T) {
	db := setupTestDB(t)

	seed := func() {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, txErr := AwardPoints(tx, 5, 40, models.PointsReasonManual, "seed", 0)
			return txErr
		})
		if err != nil {
			t.Fatalf("seed award failed: %v", err)
		}
	}
	seed()

	for _, points := range []int{0, -10} {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, txErr := AwardPoints(tx, 5, points, models.PointsReasonManual, "bad", 0)
			return txErr
		})
		if err != ErrNonPositivePoints {
			t.Errorf("award of %d: err = %v, want ErrNonPositivePoints", points, err)
		}
	}

	var row models.UserPoints
	if err := db.Where("user_id = ?", 5).First(&row).Error; err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	if row.TotalPoints != 40 {
		t.Errorf("total = %d after rejected awards, want 40", row.TotalPoints)
	}

	var txnCount int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", 5).Count(&txnCount)
	if txnCount != 1 {
		t.Errorf("transactions = %d, want 1", txnCount)
	}
}
