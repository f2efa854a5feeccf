// Package domain models municipal traffic-collision records.
//
// # Data Source
//
// Crash records come from a city open-data portal export, refreshed by hand
// and saved as a single CSV file. Column headers contain spaces
// ("Crash Type", "Hour of Day"); the loader strips all whitespace so fields
// are addressed as "CrashType", "HourOfDay" and so on. See the Field*
// constants for the full schema.
//
// # Field Conventions
//
// Involvement flags:
//
//	"Yes" / "No" in any letter case. Normalized to booleans.
//
// Ordinals:
//
//	DayOfWeek is 1–7 with 1 = Sunday.
//	HourOfDay is 0–23 counted from midnight. Reports regroup hours into
//	shift buckets where bucket 0 is 4 AM and bucket 23 is 3 AM, see
//	[ShiftedHourBucket].
//
// Location:
//
//	"<street> & <street>", e.g. "ELM ST & OAK AVE". The same intersection
//	appears with the streets in either order, so [CanonicalLocation] sorts
//	the pair to produce one key per intersection.
//
// Crash date:
//
//	Usually ISO-8601 ("2021-03-14T18:22:00Z") but older exports use
//	"2021/03/14 18:22:00+00" or US "03/14/2021 06:22:00 PM". Parsed by
//	[ParseCrashDate] and always interpreted in UTC.
//
// # Value Coercion
//
// Normalization is per field and type-blind apart from the location column:
// any value that reads "yes"/"no" becomes a boolean and any numeric-looking
// value becomes a float64, whatever column it sits in. See [NormalizeField].
package domain
