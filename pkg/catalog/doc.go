// Package catalog parses signal catalogs into ordered flat records.
//
// A catalog describes a tree of signals as a flat list of records keyed by
// dot-separated path. Three encodings are understood.
//
// # Line-oriented text
//
// Records are separated by blank lines. The first line of a record is the
// path followed by a colon; the remaining lines are "key: value" pairs in
// any order:
//
//	Vehicle:
//	  type: branch
//	  uuid: ccc825f94139544dbb5f4bfd033bece6
//	  description: High-level vehicle data.
//
//	Vehicle.Speed:
//	  datatype: float
//	  type: sensor
//	  unit: km/h
//	  uuid: efe50798638d55fab18ab7d43cc490e9
//
// Recognised keys are uuid, type, description, comment, datatype, unit, min
// and max. Unknown keys are ignored. Lines starting with '#' are comments.
//
// # Structured documents
//
// YAML (and JSON) documents hold one mapping per path with the same field
// names. Entries are read in document order.
//
// # Snapshots
//
// EncodeCBOR and ParseCBOR store an accepted record list in a compact binary
// form so a catalog does not have to be re-parsed on every start.
//
// # Invalid records
//
// A record without uuid or type, with an unknown type, or without a datatype
// on a non-branch kind is invalid. Options.Policy decides what happens:
// PolicyStrict (the default) aborts the parse, PolicySkip drops the record
// and reports it in Catalog.Skipped. A record header that cannot be read at
// all makes the catalog malformed and always aborts. Bounds that do not parse
// for the declared datatype are dropped without invalidating the record.
//
// # Watching
//
// Watcher reports debounced changes to a single catalog file so tools can
// recompile it while it is being edited.
package catalog
