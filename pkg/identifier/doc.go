// Package identifier derives program identifiers from catalog path segments.
//
// A segment is split before every uppercase letter, and runs of single
// letters are joined back together so that initialisms stay intact:
//
//	"VSSVehicleID" -> ["VSS", "Vehicle", "ID"] -> "vssVehicleID"
//	"VehicleId"    -> ["Vehicle", "Id"]        -> "vehicleId"
//	"IsOpen"       -> ["Is", "Open"]           -> "isOpen"
//
// The first token is lower-cased. Later tokens of at most two runes keep
// their casing; longer ones are capitalised.
//
// A result that matches a reserved structural property name (compared
// case-insensitively) is derived again from the segment with the marker
// prefix prepended, e.g. "Children" -> "vssChildren".
//
// Identifiers are only unique among siblings.
package identifier
