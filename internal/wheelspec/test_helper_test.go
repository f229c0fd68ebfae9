package wheelspec

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	id := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:wheelspec_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", id)

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

	if err := db.AutoMigrate(&WheelSpecification{}, &WheelSpecificationFields{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func breakDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return gdb, mock
}

func strPtr(s string) *string { return &s }

func fixedNow() time.Time {
	return time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
}

func fullFieldsInput() *WheelSpecificationFieldsInput {
	return &WheelSpecificationFieldsInput{
		TreadDiameterNew:      strPtr("915 (900-1000)"),
		LastShopIssueSize:     strPtr("837 (800-900)"),
		CondemningDia:         strPtr("825 (800-900)"),
		WheelGauge:            strPtr("1600 (+2,-1)"),
		VariationSameAxle:     strPtr("0.5"),
		VariationSameBogie:    strPtr("5"),
		VariationSameCoach:    strPtr("13"),
		WheelProfile:          strPtr("29.4 Flange Thickness"),
		IntermediateWWP:       strPtr("20 TO 28"),
		BearingSeatDiameter:   strPtr("130.043 TO 130.068"),
		RollerBearingOuterDia: strPtr("280 (+0.0/-0.035)"),
		RollerBearingBoreDia:  strPtr("130 (+0.0/-0.025)"),
		RollerBearingWidth:    strPtr("93 (+0/-0.250)"),
		AxleBoxHousingBoreDia: strPtr("280 (+0.030/+0.052)"),
		WheelDiscWidth:        strPtr("127 (+4/-0)"),
	}
}

func newCreateRequest(formNumber, submittedBy, submittedDate string) *CreateWheelSpecificationRequest {
	return &CreateWheelSpecificationRequest{
		FormNumber:    formNumber,
		SubmittedBy:   submittedBy,
		SubmittedDate: submittedDate,
		Fields:        fullFieldsInput(),
	}
}

func mustCreate(t *testing.T, svc *WheelSpecService, formNumber, submittedBy, submittedDate string) *WheelSpecification {
	t.Helper()

	form, err := svc.CreateWheelSpecification(context.Background(), newCreateRequest(formNumber, submittedBy, submittedDate))
	if err != nil {
		t.Fatalf("create %s: %v", formNumber, err)
	}
	return form
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
