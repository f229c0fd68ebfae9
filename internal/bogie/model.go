package bogie

import (
	"errors"
	"strings"
	"time"

	"kpa-forms-api/internal/util"

	"gorm.io/datatypes"
)

type BogieChecksheetForm struct {
	ID              int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	FormNumber      string          `json:"formNumber" gorm:"column:form_number;type:varchar(100);not null;uniqueIndex:uq_bogie_checksheet_forms_form_number"`
	InspectionBy    string          `json:"inspectionBy" gorm:"column:inspection_by;type:varchar(255);not null"`
	InspectionDate  datatypes.Date  `json:"inspectionDate" gorm:"column:inspection_date;not null"`
	BogieDetails    BogieDetails    `json:"bogieDetails" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	BogieChecksheet BogieChecksheet `json:"bogieChecksheet" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	BmbcChecksheet  BmbcChecksheet  `json:"bmbcChecksheet" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"-" gorm:"not null;autoCreateTime"`
}

func (BogieChecksheetForm) TableName() string { return "bogie_checksheet_forms" }

// BogieDetails.DateOfIOH is stored as submitted; it is not a date column.
type BogieDetails struct {
	ID                 int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	FormID             int64  `json:"-" gorm:"column:form_id;not null;uniqueIndex:uq_bogie_details_form"`
	BogieNo            string `json:"bogieNo" gorm:"type:text"`
	MakerYearBuilt     string `json:"makerYearBuilt" gorm:"type:text"`
	IncomingDivAndDate string `json:"incomingDivAndDate" gorm:"type:text"`
	DeficitComponents  string `json:"deficitComponents" gorm:"type:text"`
	DateOfIOH          string `json:"dateOfIOH" gorm:"column:date_of_ioh;type:text"`
}

func (BogieDetails) TableName() string { return "bogie_details" }

type BogieChecksheet struct {
	ID                       int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	FormID                   int64  `json:"-" gorm:"column:form_id;not null;uniqueIndex:uq_bogie_checksheets_form"`
	BogieFrameCondition      string `json:"bogieFrameCondition" gorm:"type:text"`
	Bolster                  string `json:"bolster" gorm:"type:text"`
	BolsterSuspensionBracket string `json:"bolsterSuspensionBracket" gorm:"type:text"`
	LowerSpringSeat          string `json:"lowerSpringSeat" gorm:"type:text"`
	AxleGuide                string `json:"axleGuide" gorm:"type:text"`
}

func (BogieChecksheet) TableName() string { return "bogie_checksheets" }

type BmbcChecksheet struct {
	ID             int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	FormID         int64  `json:"-" gorm:"column:form_id;not null;uniqueIndex:uq_bmbc_checksheets_form"`
	CylinderBody   string `json:"cylinderBody" gorm:"type:text"`
	PistonTrunnion string `json:"pistonTrunnion" gorm:"type:text"`
	AdjustingTube  string `json:"adjustingTube" gorm:"type:text"`
	PlungerSpring  string `json:"plungerSpring" gorm:"type:text"`
}

func (BmbcChecksheet) TableName() string { return "bmbc_checksheets" }

// ---- requests ----

type BogieDetailsInput struct {
	BogieNo            *string `json:"bogieNo" binding:"required"`
	MakerYearBuilt     *string `json:"makerYearBuilt" binding:"required"`
	IncomingDivAndDate *string `json:"incomingDivAndDate" binding:"required"`
	DeficitComponents  *string `json:"deficitComponents" binding:"required"`
	DateOfIOH          *string `json:"dateOfIOH" binding:"required"`
}

type BogieChecksheetInput struct {
	BogieFrameCondition      *string `json:"bogieFrameCondition" binding:"required"`
	Bolster                  *string `json:"bolster" binding:"required"`
	BolsterSuspensionBracket *string `json:"bolsterSuspensionBracket" binding:"required"`
	LowerSpringSeat          *string `json:"lowerSpringSeat" binding:"required"`
	AxleGuide                *string `json:"axleGuide" binding:"required"`
}

type BmbcChecksheetInput struct {
	CylinderBody   *string `json:"cylinderBody" binding:"required"`
	PistonTrunnion *string `json:"pistonTrunnion" binding:"required"`
	AdjustingTube  *string `json:"adjustingTube" binding:"required"`
	PlungerSpring  *string `json:"plungerSpring" binding:"required"`
}

type CreateBogieChecksheetRequest struct {
	FormNumber      string                `json:"formNumber" binding:"required"`
	InspectionBy    string                `json:"inspectionBy" binding:"required"`
	InspectionDate  string                `json:"inspectionDate" binding:"required"`
	BogieDetails    *BogieDetailsInput    `json:"bogieDetails" binding:"required"`
	BogieChecksheet *BogieChecksheetInput `json:"bogieChecksheet" binding:"required"`
	BmbcChecksheet  *BmbcChecksheetInput  `json:"bmbcChecksheet" binding:"required"`
}

type BogieChecksheetSummary struct {
	FormNumber     string `json:"formNumber"`
	InspectionBy   string `json:"inspectionBy"`
	InspectionDate string `json:"inspectionDate"`
	Status         string `json:"status"`
}

var (
	ErrFormNumberRequired   = errors.New("formNumber must not be empty")
	ErrInspectionByRequired = errors.New("inspectionBy must not be empty")
	ErrNestedGroupsRequired = errors.New("bogieDetails, bogieChecksheet and bmbcChecksheet are required")
)

// Normalize trims the root strings and checks what binding tags cannot.
func (r *CreateBogieChecksheetRequest) Normalize() error {
	r.FormNumber = strings.TrimSpace(r.FormNumber)
	r.InspectionBy = strings.TrimSpace(r.InspectionBy)

	if r.FormNumber == "" {
		return ErrFormNumberRequired
	}
	if r.InspectionBy == "" {
		return ErrInspectionByRequired
	}
	if r.BogieDetails == nil || r.BogieChecksheet == nil || r.BmbcChecksheet == nil {
		return ErrNestedGroupsRequired
	}
	if _, err := util.ParseDate(r.InspectionDate); err != nil {
		return errors.New("inspectionDate: " + err.Error())
	}
	return nil
}

func (r *CreateBogieChecksheetRequest) toModel() (BogieChecksheetForm, error) {
	if r.BogieDetails == nil || r.BogieChecksheet == nil || r.BmbcChecksheet == nil {
		return BogieChecksheetForm{}, ErrNestedGroupsRequired
	}

	inspected, err := util.ParseDate(r.InspectionDate)
	if err != nil {
		return BogieChecksheetForm{}, err
	}

	return BogieChecksheetForm{
		FormNumber:     r.FormNumber,
		InspectionBy:   r.InspectionBy,
		InspectionDate: datatypes.Date(inspected),
		BogieDetails: BogieDetails{
			BogieNo:            deref(r.BogieDetails.BogieNo),
			MakerYearBuilt:     deref(r.BogieDetails.MakerYearBuilt),
			IncomingDivAndDate: deref(r.BogieDetails.IncomingDivAndDate),
			DeficitComponents:  deref(r.BogieDetails.DeficitComponents),
			DateOfIOH:          deref(r.BogieDetails.DateOfIOH),
		},
		BogieChecksheet: BogieChecksheet{
			BogieFrameCondition:      deref(r.BogieChecksheet.BogieFrameCondition),
			Bolster:                  deref(r.BogieChecksheet.Bolster),
			BolsterSuspensionBracket: deref(r.BogieChecksheet.BolsterSuspensionBracket),
			LowerSpringSeat:          deref(r.BogieChecksheet.LowerSpringSeat),
			AxleGuide:                deref(r.BogieChecksheet.AxleGuide),
		},
		BmbcChecksheet: BmbcChecksheet{
			CylinderBody:   deref(r.BmbcChecksheet.CylinderBody),
			PistonTrunnion: deref(r.BmbcChecksheet.PistonTrunnion),
			AdjustingTube:  deref(r.BmbcChecksheet.AdjustingTube),
			PlungerSpring:  deref(r.BmbcChecksheet.PlungerSpring),
		},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toSummary(f *BogieChecksheetForm) BogieChecksheetSummary {
	return BogieChecksheetSummary{
		FormNumber:     f.FormNumber,
		InspectionBy:   f.InspectionBy,
		InspectionDate: util.FormatDate(time.Time(f.InspectionDate)),
		Status:         "Saved",
	}
}
