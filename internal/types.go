package internal

import "time"

type CanonicalField string

const (
	FieldProduct       CanonicalField = "Product"
	FieldCategory      CanonicalField = "Category"
	FieldTransport     CanonicalField = "Transport_kgCO2e"
	FieldMaterials     CanonicalField = "Materials_kgCO2e"
	FieldProduction    CanonicalField = "Production_kgCO2e"
	FieldUseKWhPerYear CanonicalField = "Use_kWh_per_year"
	FieldWaterL        CanonicalField = "Water_L"
	FieldRecyclingPct  CanonicalField = "Recycling_Quota_%"
	FieldLocalPct      CanonicalField = "Local_Quota_%"
	FieldEULabel       CanonicalField = "EU_Label"
)

// CanonicalFields is the fixed target schema, required fields first.
var CanonicalFields = []CanonicalField{
	FieldProduct, FieldCategory,
	FieldTransport, FieldMaterials, FieldProduction, FieldUseKWhPerYear,
	FieldWaterL, FieldRecyclingPct, FieldLocalPct, FieldEULabel,
}

// RequiredNumericFields are validated on every mapped record.
var RequiredNumericFields = []CanonicalField{
	FieldTransport, FieldMaterials, FieldProduction, FieldUseKWhPerYear,
}

func (f CanonicalField) Required() bool {
	switch f {
	case FieldProduct, FieldCategory, FieldTransport, FieldMaterials, FieldProduction, FieldUseKWhPerYear:
		return true
	}
	return false
}

type Category string

const (
	CategoryCooking Category = "Cooking"
	CategoryCooling Category = "Cooling"
	CategoryWashing Category = "Washing"
	CategoryUnknown Category = "Unknown"
)

// Row is one raw data row keyed by the detected header texts.
type Row map[string]string

type MappingSuggestion struct {
	Target     CanonicalField `json:"target"`
	FromHeader *string        `json:"fromHeader"`
	Confidence float64        `json:"confidence"`
}

// Mapping is the (possibly user-edited) field-to-header assignment.
// An absent or empty entry means the field has no source.
type Mapping map[CanonicalField]string

type MappedRecord struct {
	Product           string   `json:"Product"`
	Category          Category `json:"Category"`
	Transport         *float64 `json:"Transport_kgCO2e"`
	Materials         *float64 `json:"Materials_kgCO2e"`
	Production        *float64 `json:"Production_kgCO2e"`
	UseKWhPerYear     *float64 `json:"Use_kWh_per_year"`
	WaterL            *float64 `json:"Water_L"`
	RecyclingQuotaPct *float64 `json:"Recycling_Quota_%"`
	LocalQuotaPct     *float64 `json:"Local_Quota_%"`
	EULabel           *string  `json:"EU_Label"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type ValidationIssue struct {
	RowIndex int            `json:"rowIndex"` // 1-based
	Field    CanonicalField `json:"field"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
}

type QualityStatus string

const (
	QualityRed   QualityStatus = "red"
	QualityAmber QualityStatus = "amber"
	QualityGreen QualityStatus = "green"
)

type DataQualitySummary struct {
	Status QualityStatus     `json:"status"`
	Issues []ValidationIssue `json:"issues"`
}

type GridRegion string

const (
	GridMexico     GridRegion = "Mexico"
	GridEU27       GridRegion = "EU-27"
	GridUSA        GridRegion = "USA"
	GridRenewables GridRegion = "Renewables"
)

type GridFactor struct {
	Region GridRegion `json:"region"`
	Factor float64    `json:"factor"` // kg CO2e per kWh; <=0 means unset
}

type Thresholds struct {
	UsePhasePercentRed float64 `json:"usePhasePercentRed"`
	MaterialsKgRed     float64 `json:"materialsKgRed"`
	ProductionKgGreen  float64 `json:"productionKgGreen"`
}

type StatusColor string

const (
	StatusRed   StatusColor = "red"
	StatusAmber StatusColor = "amber"
	StatusGreen StatusColor = "green"
)

type StageBreakdown struct {
	Transport  float64 `json:"Transport"`
	Materials  float64 `json:"Materials"`
	Production float64 `json:"Production"`
	Use        float64 `json:"Use"`
}

type StatusSet struct {
	UsePhase   StatusColor `json:"UsePhase"`
	Materials  StatusColor `json:"Materials"`
	Production StatusColor `json:"Production"`
}

type KPIResult struct {
	Product          string         `json:"Product"`
	Category         Category       `json:"Category"`
	Stages           StageBreakdown `json:"Stages"`
	UsePhaseCO2e     float64        `json:"UsePhase_CO2e"`
	TotalCO2e        float64        `json:"Total_CO2e"`
	UsePhaseSharePct float64        `json:"UsePhase_Share_Pct"`
	EnergyLabel      string         `json:"EnergyLabel,omitempty"`
	Status           StatusSet      `json:"Status"`
}

type SnapshotTotals struct {
	Count        int     `json:"count"`
	SumTotalCO2e float64 `json:"sumTotalCO2e"`
}

// Snapshot is an immutable, value-copied freeze of KPI results and the
// thresholds in force at lock time.
type Snapshot struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"timestamp"`
	KPIs       []KPIResult    `json:"kpis"`
	Totals     SnapshotTotals `json:"totals"`
	Thresholds Thresholds     `json:"thresholds"`
}

type ProvenanceMethod string

const (
	MethodAnchor ProvenanceMethod = "anchor"
	MethodTable  ProvenanceMethod = "table"
	MethodFailed ProvenanceMethod = "failed"
)

type Provenance struct {
	Method     ProvenanceMethod `json:"method"`
	Sheet      string           `json:"sheet"`
	CellRef    string           `json:"cellRef"`
	AnchorText *string          `json:"anchorText"`
	Confidence float64          `json:"confidence"`
}

// AnchorHit is one extracted value with its provenance.
type AnchorHit struct {
	Field      CanonicalField `json:"field"`
	Value      float64        `json:"value"`
	Provenance Provenance     `json:"provenance"`
}