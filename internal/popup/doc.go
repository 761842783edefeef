// Package popup renders the HTML fragment shown when a user interacts
// with a partner's map marker.
//
// The popup is modeled as an ordered list of optional sections. Each
// section inspects the record and yields zero or one markup fragment;
// fragments are concatenated in declaration order with no separator
// beyond what each section emits. This keeps every section
// independently testable and makes the layout contract explicit:
//
//  1. Name (bolded, always)
//  2. Address line 1 (if present)
//  3. Address line 2 (if present)
//  4. City, State  Zip line (if city present)
//  5. "Get Directions" link (if city and address present)
//  6. Type line (always, defaulted category)
//  7. Dates (if present)
//  8. Day(s) of the week (if present)
//  9. Hours (if present)
// 10. Website link (if present)
// 11. Notes (if present, leading separator, appended last)
//
// Rendering is pure and never fails: an absent field is an omitted
// section, not an error. The same record always renders to
// byte-identical markup.
//
// Free text from the source table is NFC-normalized and HTML-escaped
// before embedding. The source data is maintained by hand in
// spreadsheets; without escaping a stray angle bracket in a Notes cell
// would be injected straight into the rendered map.
package popup
