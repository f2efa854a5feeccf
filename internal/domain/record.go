package domain

import "strconv"

// Header names after whitespace stripping.
const (
	FieldCrashDate     = "CrashDate"
	FieldDayOfWeek     = "DayOfWeek"
	FieldHourOfDay     = "HourOfDay"
	FieldCrashType     = "CrashType"
	FieldCrashSeverity = "CrashSeverity"
	FieldCrashLocation = "CrashLocation"

	FieldPropertyDamage    = "PropertyDamage"
	FieldAlcoholInvolved   = "AlcoholInvolved"
	FieldAggressiveDriving = "AggressiveDriving"
	FieldBicycleInvolved   = "BicycleInvolved"
	FieldCellPhoneInvolved = "CellPhoneInvolved"
	FieldAnimalInvolved    = "AnimalInvolved"
	FieldDrugInvolved      = "DrugInvolved"
)

// Flag names one of the seven involvement counters in a summary.
type Flag string

const (
	FlagPropertyDamage    Flag = "includesPropertyDamage"
	FlagAlcohol           Flag = "includesAlcohol"
	FlagAggressiveDriving Flag = "includesAggressiveDriving"
	FlagBicycle           Flag = "includesBicycle"
	FlagCellPhone         Flag = "includesCellPhone"
	FlagAnimal            Flag = "includesAnimal"
	FlagDrug              Flag = "includesDrug"
)

// FlagField pairs an involvement counter with the column that feeds it.
type FlagField struct {
	Flag  Flag
	Field string
	Label string
}

// Flags lists the involvement counters in report order.
var Flags = []FlagField{
	{FlagPropertyDamage, FieldPropertyDamage, "Property damage"},
	{FlagAlcohol, FieldAlcoholInvolved, "Alcohol involved"},
	{FlagAggressiveDriving, FieldAggressiveDriving, "Aggressive driving"},
	{FlagBicycle, FieldBicycleInvolved, "Bicycle involved"},
	{FlagCellPhone, FieldCellPhoneInvolved, "Cell phone involved"},
	{FlagAnimal, FieldAnimalInvolved, "Animal involved"},
	{FlagDrug, FieldDrugInvolved, "Drug involved"},
}

// RequiredFields are the columns aggregation reads.
var RequiredFields = []string{
	FieldCrashDate,
	FieldDayOfWeek,
	FieldHourOfDay,
	FieldCrashType,
	FieldCrashSeverity,
	FieldCrashLocation,
	FieldPropertyDamage,
	FieldAlcoholInvolved,
	FieldAggressiveDriving,
	FieldBicycleInvolved,
	FieldCellPhoneInvolved,
	FieldAnimalInvolved,
	FieldDrugInvolved,
}

// Kind identifies which member of a Value is set.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "string"
	}
}

// Value is a normalized field value: exactly one of string, bool or number.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	Num  float64
}

// StringValue, BoolValue and NumberValue construct a Value of each kind.
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Label renders the value as a breakdown label. Numbers use the shortest
// representation, so 42 renders as "42" and 42.5 as "42.5".
func (v Value) Label() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return v.Str
	}
}

// Record is one normalized crash row. Fields keeps header order.
type Record struct {
	Fields []string
	Values map[string]Value
}

// NewRecord normalizes a decoded row against its header. Missing trailing
// values are treated as empty strings.
func NewRecord(header, row []string) Record {
	rec := Record{
		Fields: header,
		Values: make(map[string]Value, len(header)),
	}
	for i, name := range header {
		var raw string
		if i < len(row) {
			raw = row[i]
		}
		rec.Values[name] = NormalizeField(name, raw)
	}
	return rec
}

// Get returns the value for a field and whether the field exists.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r.Values[field]
	return v, ok
}

// Label returns the field's label, or "" when the field is absent.
func (r Record) Label(field string) string {
	return r.Values[field].Label()
}

// IsTrue reports whether the field normalized to boolean true.
func (r Record) IsTrue(field string) bool {
	v, ok := r.Values[field]
	return ok && v.Kind == KindBool && v.Bool
}
