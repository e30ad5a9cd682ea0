// Package hko fetches the Hong Kong Observatory tide-text page and turns its
// HTML tables into a single combined table. The page lists predicted tide
// times and heights month by month, split across many tables; only the first
// few tables in document order are used (see ExtractTables).
package hko
