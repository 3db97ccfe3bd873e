// Package logtail reads the tail of meteo's log file.
//
// Read extracts the last N lines with a ring buffer, so memory stays
// O(N) whatever the file size. A missing file is not an error: meteo may
// simply not have logged anything yet.
//
// FilterLevel narrows the lines to a minimum logrus severity. It understands
// both formatter outputs meteo can produce:
//
//	time="2026-10-16T09:12:03+02:00" level=warning msg="weather lookup failed" city=Atlantis component=search
//	{"city":"Atlantis","component":"search","level":"warning","msg":"weather lookup failed"}
//
// Lines without a recognizable level are kept.
//
// Follow streams new lines as they are appended, surviving log rotation, and
// applies the same level filter.
package logtail
