package bogie

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	id := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:bogie_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", id)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&BogieChecksheetForm{}, &BogieDetails{}, &BogieChecksheet{}, &BmbcChecksheet{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func newCreateRequest(formNumber string) *CreateBogieChecksheetRequest {
	return &CreateBogieChecksheetRequest{
		FormNumber:     formNumber,
		InspectionBy:   "user_id_456",
		InspectionDate: "2025-07-03",
		BogieDetails: &BogieDetailsInput{
			BogieNo:            strPtr("BG1234"),
			MakerYearBuilt:     strPtr("RDSO/2018"),
			IncomingDivAndDate: strPtr("NR / 2025-06-25"),
			DeficitComponents:  strPtr("None"),
			DateOfIOH:          strPtr("2025-07-01"),
		},
		BogieChecksheet: &BogieChecksheetInput{
			BogieFrameCondition:      strPtr("Good"),
			Bolster:                  strPtr("Good"),
			BolsterSuspensionBracket: strPtr("Cracked"),
			LowerSpringSeat:          strPtr("Good"),
			AxleGuide:                strPtr("Worn"),
		},
		BmbcChecksheet: &BmbcChecksheetInput{
			CylinderBody:   strPtr("WORN OUT"),
			PistonTrunnion: strPtr("GOOD"),
			AdjustingTube:  strPtr("DAMAGED"),
			PlungerSpring:  strPtr("GOOD"),
		},
	}
}
