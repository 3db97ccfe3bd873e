// Package state holds the display state of the weather widget.
//
// # Overview
//
// Display is a plain value describing what the UI shows: the displayed city,
// the rounded temperature, the condition text and icon, the loading flag and
// the current error message. Every change goes through a method that returns
// an updated copy, so callers always replace their Display wholesale:
//
//	d = d.Begin()
//	d = d.Succeed(*resp)
//
// # Lifecycle
//
//	Idle ──Begin()──> Loading ──Succeed()──> Success
//	                     │
//	                     ├──Fail()──────────> Failure
//	                     └──MissingAPIKey()─> Failure (no request sent)
//
// A new search always re-enters Loading. Begin clears the previous readings
// and error but keeps the displayed city until the result arrives; Fail is
// the only transition that clears the city.
//
// # Favorite Status
//
// Whether the displayed city is a favorite is never stored. IsFavorite
// computes it from the Display and a Membership (the favorites store) each
// time it is read, which keeps it consistent with both the displayed city and
// the favorites list without any recompute calls.
package state
