// Package diff is a small structural differ that produces delta-view
// reports.
//
// A Report maps an operation name to the paths it affected:
//
//	values_changed                     {path: {"new_value": v}}
//	type_changes                       {path: {"old_type": t, "new_type": t, "new_value": v}}
//	dictionary_item_added / _removed   {path: value}
//	iterable_item_added / _removed     {path: value}
//
// With IgnoreOrder, slices are compared as multisets of content hashes and
// differences are reported as
//
//	iterable_items_added_at_indexes    {path: {index: item}}
//	iterable_items_removed_at_indexes  {path: {index: item}}
//	repetition_change                  {path: {"old_repeat": n, "new_repeat": m, "value": v}}
//
// where repetition_change only appears when ReportRepetition is set.
//
// Paths render as root['key'][0].Field.
package diff
