// Package model holds the records returned by USOS services.
//
// Records map JSON keys one to one onto fields. Nested objects are pointers and
// lists are slices, both nil when the key is absent or null. Unknown keys are
// ignored. The only coercions are the ones USOS makes necessary: identifiers
// may arrive as numbers or strings, dates as "2006-01-02" with an optional
// time, and enumerated values are checked against the known set.
package model
