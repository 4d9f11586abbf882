// Package segment holds the in-memory form of a segment's attribute columns.
//
// An [AttributeSet] maps field names to [Attribute] values. Every Attribute
// decoded from the same segment directory shares one [RowIDs] list, which must
// be treated as read-only. An empty RowIDs list on a decoded Attribute means
// the row identifiers are unknown, not that the segment has zero rows.
package segment
