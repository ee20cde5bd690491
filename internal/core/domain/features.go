package domain

import "strconv"

// Feature column names. The names and their order are the schema the
// pipeline models were trained against and must not change.
const (
	ColumnYear            = "YEAR"
	ColumnQuantity        = "QUANTITY"
	ColumnTenor           = "TENOR OF PAYMENT"
	ColumnFreight         = "FREIGHT CHARGES"
	ColumnExporter        = "EXPORTER"
	ColumnExporterCountry = "EXPORTER'S COUNTRY"
	ColumnImporter        = "IMPORTER"
	ColumnOriginCountry   = "COUNTRY_OF_ORIGIN"
	ColumnCurrency        = "CURRENCY"
	ColumnTradeTerm       = "TRADE-TERM"
	ColumnShipmentFrom    = "SHIPMENT FROM"
	ColumnShipmentTo      = "SHIPMENT TO"
)

const FeatureCount = 12

var featureColumns = [FeatureCount]string{
	ColumnYear,
	ColumnQuantity,
	ColumnTenor,
	ColumnFreight,
	ColumnExporter,
	ColumnExporterCountry,
	ColumnImporter,
	ColumnOriginCountry,
	ColumnCurrency,
	ColumnTradeTerm,
	ColumnShipmentFrom,
	ColumnShipmentTo,
}

// FeatureKind tells whether a feature value is numeric or categorical.
type FeatureKind int

const (
	FeatureNumeric FeatureKind = iota
	FeatureCategorical
)

func (k FeatureKind) String() string {
	if k == FeatureNumeric {
		return "numeric"
	}
	return "categorical"
}

// FeatureColumns returns the column names in schema order.
func FeatureColumns() []string {
	out := make([]string, FeatureCount)
	copy(out, featureColumns[:])
	return out
}

// FeatureKinds returns the kind of each column in schema order: the first
// four columns are numeric, the remaining eight categorical.
func FeatureKinds() []FeatureKind {
	kinds := make([]FeatureKind, FeatureCount)
	for i := range kinds {
		if i >= 4 {
			kinds[i] = FeatureCategorical
		}
	}
	return kinds
}

// ColumnIndex returns the schema position of a column name.
func ColumnIndex(name string) (int, bool) {
	for i, c := range featureColumns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// FeatureValue is a single cell of a feature record: a number or a string.
type FeatureValue struct {
	kind FeatureKind
	num  float64
	str  string
}

func NumericValue(v float64) FeatureValue {
	return FeatureValue{kind: FeatureNumeric, num: v}
}

func CategoricalValue(s string) FeatureValue {
	return FeatureValue{kind: FeatureCategorical, str: s}
}

func (v FeatureValue) Kind() FeatureKind { return v.kind }

// Number returns the numeric value; zero for categorical values.
func (v FeatureValue) Number() float64 { return v.num }

// Text returns the categorical value; empty for numeric values.
func (v FeatureValue) Text() string { return v.str }

func (v FeatureValue) String() string {
	if v.kind == FeatureNumeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// FeatureRecord is the labeled, fixed-order input for a single prediction.
// It is a value type and is never mutated after assembly.
type FeatureRecord struct {
	values [FeatureCount]FeatureValue
}

func NewFeatureRecord(values [FeatureCount]FeatureValue) FeatureRecord {
	return FeatureRecord{values: values}
}

func (r FeatureRecord) Columns() []string { return FeatureColumns() }

// Value returns the value stored under a column name.
func (r FeatureRecord) Value(column string) (FeatureValue, bool) {
	i, ok := ColumnIndex(column)
	if !ok {
		return FeatureValue{}, false
	}
	return r.values[i], true
}

// Vector returns the flat form of the record in schema order.
func (r FeatureRecord) Vector() []FeatureValue {
	out := make([]FeatureValue, FeatureCount)
	copy(out, r.values[:])
	return out
}
