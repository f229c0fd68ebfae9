package wheelspec

import (
	"errors"
	"strings"
	"time"

	"kpa-forms-api/internal/util"

	"gorm.io/datatypes"
)

type WheelSpecification struct {
	ID            int64                    `json:"id" gorm:"primaryKey;autoIncrement"`
	FormNumber    string                   `json:"formNumber" gorm:"column:form_number;type:varchar(100);not null;uniqueIndex:uq_wheel_specifications_form_number"`
	SubmittedBy   string                   `json:"submittedBy" gorm:"column:submitted_by;type:varchar(255);not null;index"`
	SubmittedDate datatypes.Date           `json:"submittedDate" gorm:"column:submitted_date;not null;index"`
	Fields        WheelSpecificationFields `json:"fields" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time                `json:"-" gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time                `json:"-" gorm:"not null;autoUpdateTime"`
}

func (WheelSpecification) TableName() string { return "wheel_specifications" }

// WheelSpecificationFields holds the measurements. Values are free text: ranges and
// annotations such as "915 (900-1000)" are normal.
type WheelSpecificationFields struct {
	ID                    int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	FormID                int64  `json:"-" gorm:"column:form_id;not null;uniqueIndex:uq_wheel_specification_fields_form"`
	TreadDiameterNew      string `json:"treadDiameterNew" gorm:"type:text"`
	LastShopIssueSize     string `json:"lastShopIssueSize" gorm:"type:text"`
	CondemningDia         string `json:"condemningDia" gorm:"type:text"`
	WheelGauge            string `json:"wheelGauge" gorm:"type:text"`
	VariationSameAxle     string `json:"variationSameAxle" gorm:"type:text"`
	VariationSameBogie    string `json:"variationSameBogie" gorm:"type:text"`
	VariationSameCoach    string `json:"variationSameCoach" gorm:"type:text"`
	WheelProfile          string `json:"wheelProfile" gorm:"type:text"`
	IntermediateWWP       string `json:"intermediateWWP" gorm:"column:intermediate_wwp;type:text"`
	BearingSeatDiameter   string `json:"bearingSeatDiameter" gorm:"type:text"`
	RollerBearingOuterDia string `json:"rollerBearingOuterDia" gorm:"type:text"`
	RollerBearingBoreDia  string `json:"rollerBearingBoreDia" gorm:"type:text"`
	RollerBearingWidth    string `json:"rollerBearingWidth" gorm:"type:text"`
	AxleBoxHousingBoreDia string `json:"axleBoxHousingBoreDia" gorm:"type:text"`
	WheelDiscWidth        string `json:"wheelDiscWidth" gorm:"type:text"`
}

func (WheelSpecificationFields) TableName() string { return "wheel_specification_fields" }

// ---- requests ----

// WheelSpecificationFieldsInput requires every key; empty strings are allowed.
type WheelSpecificationFieldsInput struct {
	TreadDiameterNew      *string `json:"treadDiameterNew" binding:"required"`
	LastShopIssueSize     *string `json:"lastShopIssueSize" binding:"required"`
	CondemningDia         *string `json:"condemningDia" binding:"required"`
	WheelGauge            *string `json:"wheelGauge" binding:"required"`
	VariationSameAxle     *string `json:"variationSameAxle" binding:"required"`
	VariationSameBogie    *string `json:"variationSameBogie" binding:"required"`
	VariationSameCoach    *string `json:"variationSameCoach" binding:"required"`
	WheelProfile          *string `json:"wheelProfile" binding:"required"`
	IntermediateWWP       *string `json:"intermediateWWP" binding:"required"`
	BearingSeatDiameter   *string `json:"bearingSeatDiameter" binding:"required"`
	RollerBearingOuterDia *string `json:"rollerBearingOuterDia" binding:"required"`
	RollerBearingBoreDia  *string `json:"rollerBearingBoreDia" binding:"required"`
	RollerBearingWidth    *string `json:"rollerBearingWidth" binding:"required"`
	AxleBoxHousingBoreDia *string `json:"axleBoxHousingBoreDia" binding:"required"`
	WheelDiscWidth        *string `json:"wheelDiscWidth" binding:"required"`
}

type CreateWheelSpecificationRequest struct {
	FormNumber    string                         `json:"formNumber" binding:"required"`
	SubmittedBy   string                         `json:"submittedBy" binding:"required"`
	SubmittedDate string                         `json:"submittedDate" binding:"required"`
	Fields        *WheelSpecificationFieldsInput `json:"fields" binding:"required"`
}

// WheelSpecificationFieldsPatch carries any subset of the measurement keys.
type WheelSpecificationFieldsPatch struct {
	TreadDiameterNew      util.Optional[string] `json:"treadDiameterNew"`
	LastShopIssueSize     util.Optional[string] `json:"lastShopIssueSize"`
	CondemningDia         util.Optional[string] `json:"condemningDia"`
	WheelGauge            util.Optional[string] `json:"wheelGauge"`
	VariationSameAxle     util.Optional[string] `json:"variationSameAxle"`
	VariationSameBogie    util.Optional[string] `json:"variationSameBogie"`
	VariationSameCoach    util.Optional[string] `json:"variationSameCoach"`
	WheelProfile          util.Optional[string] `json:"wheelProfile"`
	IntermediateWWP       util.Optional[string] `json:"intermediateWWP"`
	BearingSeatDiameter   util.Optional[string] `json:"bearingSeatDiameter"`
	RollerBearingOuterDia util.Optional[string] `json:"rollerBearingOuterDia"`
	RollerBearingBoreDia  util.Optional[string] `json:"rollerBearingBoreDia"`
	RollerBearingWidth    util.Optional[string] `json:"rollerBearingWidth"`
	AxleBoxHousingBoreDia util.Optional[string] `json:"axleBoxHousingBoreDia"`
	WheelDiscWidth        util.Optional[string] `json:"wheelDiscWidth"`
}

// UpdateWheelSpecificationRequest is PUT-shaped but merged like a PATCH: keys left out
// of the body keep their stored value. "fields": null is the same as leaving it out.
type UpdateWheelSpecificationRequest struct {
	FormNumber    util.Optional[string]          `json:"formNumber"`
	SubmittedBy   util.Optional[string]          `json:"submittedBy"`
	SubmittedDate util.Optional[string]          `json:"submittedDate"`
	Fields        *WheelSpecificationFieldsPatch `json:"fields"`
}

// WheelSpecificationPatch is a validated update: nil root pointers and missing Fields
// keys are left untouched. Fields is keyed by column name.
type WheelSpecificationPatch struct {
	FormNumber    *string
	SubmittedBy   *string
	SubmittedDate *time.Time
	Fields        map[string]string
}

type WheelSpecificationFilter struct {
	FormNumber    *string
	SubmittedBy   *string
	SubmittedDate *time.Time
}

// ---- responses ----

type WheelSpecificationSummary struct {
	FormNumber    string `json:"formNumber"`
	SubmittedBy   string `json:"submittedBy"`
	SubmittedDate string `json:"submittedDate"`
	Status        string `json:"status"`
}

// WheelSpecificationListFields is the narrowed view served by the list endpoint.
type WheelSpecificationListFields struct {
	TreadDiameterNew  string `json:"treadDiameterNew"`
	LastShopIssueSize string `json:"lastShopIssueSize"`
	CondemningDia     string `json:"condemningDia"`
	WheelGauge        string `json:"wheelGauge"`
}

type WheelSpecificationListItem struct {
	FormNumber    string                       `json:"formNumber"`
	SubmittedBy   string                       `json:"submittedBy"`
	SubmittedDate string                       `json:"submittedDate"`
	Fields        WheelSpecificationListFields `json:"fields"`
}

// ---- validation and mapping ----

var (
	ErrFormNumberRequired    = errors.New("formNumber must not be empty")
	ErrSubmittedByRequired   = errors.New("submittedBy must not be empty")
	ErrSubmittedDateInFuture = errors.New("submittedDate cannot be in the future")
)

// Validate checks the fields binding tags cannot express.
func (r *CreateWheelSpecificationRequest) Validate(now time.Time) error {
	if strings.TrimSpace(r.FormNumber) == "" {
		return ErrFormNumberRequired
	}
	if strings.TrimSpace(r.SubmittedBy) == "" {
		return ErrSubmittedByRequired
	}
	_, err := parseSubmittedDate(r.SubmittedDate, now)
	return err
}

func parseSubmittedDate(raw string, now time.Time) (time.Time, error) {
	d, err := util.ParseDate(raw)
	if err != nil {
		return time.Time{}, errors.New("submittedDate: " + err.Error())
	}
	if util.IsFutureDate(d, now) {
		return time.Time{}, ErrSubmittedDateInFuture
	}
	return d, nil
}

func (in *WheelSpecificationFieldsInput) toModel() WheelSpecificationFields {
	return WheelSpecificationFields{
		TreadDiameterNew:      deref(in.TreadDiameterNew),
		LastShopIssueSize:     deref(in.LastShopIssueSize),
		CondemningDia:         deref(in.CondemningDia),
		WheelGauge:            deref(in.WheelGauge),
		VariationSameAxle:     deref(in.VariationSameAxle),
		VariationSameBogie:    deref(in.VariationSameBogie),
		VariationSameCoach:    deref(in.VariationSameCoach),
		WheelProfile:          deref(in.WheelProfile),
		IntermediateWWP:       deref(in.IntermediateWWP),
		BearingSeatDiameter:   deref(in.BearingSeatDiameter),
		RollerBearingOuterDia: deref(in.RollerBearingOuterDia),
		RollerBearingBoreDia:  deref(in.RollerBearingBoreDia),
		RollerBearingWidth:    deref(in.RollerBearingWidth),
		AxleBoxHousingBoreDia: deref(in.AxleBoxHousingBoreDia),
		WheelDiscWidth:        deref(in.WheelDiscWidth),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type fieldPatchEntry struct {
	key    string
	column string
	value  util.Optional[string]
}

// columns pairs every patch key with its column so presence can be checked in order.
func (p *WheelSpecificationFieldsPatch) columns() []fieldPatchEntry {
	return []fieldPatchEntry{
		{"treadDiameterNew", "tread_diameter_new", p.TreadDiameterNew},
		{"lastShopIssueSize", "last_shop_issue_size", p.LastShopIssueSize},
		{"condemningDia", "condemning_dia", p.CondemningDia},
		{"wheelGauge", "wheel_gauge", p.WheelGauge},
		{"variationSameAxle", "variation_same_axle", p.VariationSameAxle},
		{"variationSameBogie", "variation_same_bogie", p.VariationSameBogie},
		{"variationSameCoach", "variation_same_coach", p.VariationSameCoach},
		{"wheelProfile", "wheel_profile", p.WheelProfile},
		{"intermediateWWP", "intermediate_wwp", p.IntermediateWWP},
		{"bearingSeatDiameter", "bearing_seat_diameter", p.BearingSeatDiameter},
		{"rollerBearingOuterDia", "roller_bearing_outer_dia", p.RollerBearingOuterDia},
		{"rollerBearingBoreDia", "roller_bearing_bore_dia", p.RollerBearingBoreDia},
		{"rollerBearingWidth", "roller_bearing_width", p.RollerBearingWidth},
		{"axleBoxHousingBoreDia", "axle_box_housing_bore_dia", p.AxleBoxHousingBoreDia},
		{"wheelDiscWidth", "wheel_disc_width", p.WheelDiscWidth},
	}
}

// Patch validates the request and keeps only the keys that were sent. Explicit null
// is rejected: none of these values can be cleared.
func (r *UpdateWheelSpecificationRequest) Patch(now time.Time) (*WheelSpecificationPatch, error) {
	patch := &WheelSpecificationPatch{}

	if r.FormNumber.Set {
		v := strings.TrimSpace(r.FormNumber.Value)
		if r.FormNumber.Null || v == "" {
			return nil, ErrFormNumberRequired
		}
		patch.FormNumber = &v
	}

	if r.SubmittedBy.Set {
		v := strings.TrimSpace(r.SubmittedBy.Value)
		if r.SubmittedBy.Null || v == "" {
			return nil, ErrSubmittedByRequired
		}
		patch.SubmittedBy = &v
	}

	if r.SubmittedDate.Set {
		if r.SubmittedDate.Null {
			return nil, errors.New("submittedDate cannot be null")
		}
		d, err := parseSubmittedDate(r.SubmittedDate.Value, now)
		if err != nil {
			return nil, err
		}
		patch.SubmittedDate = &d
	}

	if r.Fields != nil {
		for _, c := range r.Fields.columns() {
			if !c.value.Set {
				continue
			}
			if c.value.Null {
				return nil, errors.New("fields." + c.key + " cannot be null")
			}
			if patch.Fields == nil {
				patch.Fields = make(map[string]string)
			}
			patch.Fields[c.column] = c.value.Value
		}
	}

	return patch, nil
}

// IsEmpty reports a patch that would not change anything.
func (p *WheelSpecificationPatch) IsEmpty() bool {
	return p.FormNumber == nil && p.SubmittedBy == nil && p.SubmittedDate == nil && len(p.Fields) == 0
}

func (p *WheelSpecificationPatch) rootChanges() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.FormNumber != nil {
		changes["form_number"] = *p.FormNumber
	}
	if p.SubmittedBy != nil {
		changes["submitted_by"] = *p.SubmittedBy
	}
	if p.SubmittedDate != nil {
		changes["submitted_date"] = datatypes.Date(*p.SubmittedDate)
	}
	return changes
}

func (p *WheelSpecificationPatch) fieldChanges() map[string]interface{} {
	changes := make(map[string]interface{}, len(p.Fields))
	for col, v := range p.Fields {
		changes[col] = v
	}
	return changes
}

func submittedDateString(d datatypes.Date) string {
	return util.FormatDate(time.Time(d))
}

func toSummary(f *WheelSpecification, status string) WheelSpecificationSummary {
	return WheelSpecificationSummary{
		FormNumber:    f.FormNumber,
		SubmittedBy:   f.SubmittedBy,
		SubmittedDate: submittedDateString(f.SubmittedDate),
		Status:        status,
	}
}

func toListItem(f *WheelSpecification) WheelSpecificationListItem {
	return WheelSpecificationListItem{
		FormNumber:    f.FormNumber,
		SubmittedBy:   f.SubmittedBy,
		SubmittedDate: submittedDateString(f.SubmittedDate),
		Fields: WheelSpecificationListFields{
			TreadDiameterNew:  f.Fields.TreadDiameterNew,
			LastShopIssueSize: f.Fields.LastShopIssueSize,
			CondemningDia:     f.Fields.CondemningDia,
			WheelGauge:        f.Fields.WheelGauge,
		},
	}
}
