package state

import (
	"fmt"
	"math"
	"strings"

	"github.com/five82/meteo/internal/openweather"
)

// User-facing messages.
const (
	MsgEmptyInput      = "please enter a city name"
	MsgMissingAPIKey   = "API key not configured"
	MsgAuthFailed      = "authentication error, check API key"
	ConditionsMissing  = "conditions unavailable"
	msgNotFoundFmt     = "city %q not found"
	msgGenericErrorFmt = "an error occurred (%d): %s"
)

// Membership answers whether a city is a favorite.
type Membership interface {
	Contains(city string) bool
}

// Display is what the UI renders for the most recent completed or in-flight
// search. Transitions return an updated copy.
type Display struct {
	City        string
	Temperature *int
	Condition   string
	IconURL     string
	Loading     bool
	Err         string

	// Supplementary readings, nil when the API omitted them.
	Country   string
	Humidity  *int
	Pressure  *int
	WindSpeed *float64
}

// IsFavorite reports whether the displayed city is in m. A pending search
// reports false until its result arrives.
func (d Display) IsFavorite(m Membership) bool {
	if d.City == "" || d.Loading || m == nil {
		return false
	}
	return m.Contains(d.City)
}

// HasResult reports whether d holds a completed successful lookup.
func (d Display) HasResult() bool {
	return d.City != "" && !d.Loading && d.Err == "" && d.Temperature != nil
}

// RejectInput records an empty-input error and leaves everything else alone.
func (d Display) RejectInput() Display {
	d.Err = MsgEmptyInput
	return d
}

// Begin enters the loading state for a new search. The displayed city is
// kept until the result arrives.
func (d Display) Begin() Display {
	d.Loading = true
	d.Err = ""
	d.Temperature = nil
	d.Condition = ""
	d.IconURL = ""
	d.Country = ""
	d.Humidity = nil
	d.Pressure = nil
	d.WindSpeed = nil
	return d
}

// MissingAPIKey aborts a search that has no credential.
func (d Display) MissingAPIKey() Display {
	d.Err = MsgMissingAPIKey
	d.Loading = false
	return d
}

// Succeed folds a successful response into d.
func (d Display) Succeed(resp openweather.CurrentResponse) Display {
	d.City = resp.Name
	temp := RoundHalfUp(resp.Main.Temp)
	d.Temperature = &temp
	if primary, ok := resp.Primary(); ok {
		d.Condition = primary.Description
		d.IconURL = openweather.IconURL(primary.Icon)
	} else {
		d.Condition = ConditionsMissing
		d.IconURL = ""
	}
	d.Humidity = resp.Main.Humidity
	d.Pressure = resp.Main.Pressure
	d.WindSpeed = nil
	if resp.Wind != nil {
		speed := resp.Wind.Speed
		d.WindSpeed = &speed
	}
	d.Country = ""
	if resp.Sys != nil {
		d.Country = strings.TrimSpace(resp.Sys.Country)
	}
	d.Err = ""
	d.Loading = false
	return d
}

// Fail records a failed lookup for the trimmed input. statusCode is zero
// for failures that never produced an HTTP response.
func (d Display) Fail(input string, statusCode int, message string) Display {
	d.City = ""
	d.Err = FailureMessage(input, statusCode, message)
	d.Loading = false
	return d
}

// FailureMessage maps a failed lookup to the message shown to the user.
func FailureMessage(input string, statusCode int, message string) string {
	switch statusCode {
	case 404:
		return fmt.Sprintf(msgNotFoundFmt, input)
	case 401:
		return MsgAuthFailed
	default:
		return fmt.Sprintf(msgGenericErrorFmt, statusCode, message)
	}
}

// RoundHalfUp rounds to the nearest integer with halves going up, so -2.5
// becomes -2 rather than -3.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
