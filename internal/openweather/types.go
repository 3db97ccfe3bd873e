package openweather

import "fmt"

const iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// CurrentResponse mirrors the payload returned by the current weather endpoint.
type CurrentResponse struct {
	Name    string      `json:"name"`
	Main    MainReading `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    *Wind       `json:"wind,omitempty"`
	Sys     *Sys        `json:"sys,omitempty"`
}

// MainReading carries temperature and atmospheric readings.
type MainReading struct {
	Temp      float64  `json:"temp"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	Humidity  *int     `json:"humidity,omitempty"`
	Pressure  *int     `json:"pressure,omitempty"`
}

// Condition is one entry of the weather list. The first entry is the primary one.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind holds wind readings.
type Wind struct {
	Speed float64 `json:"speed"`
}

// Sys holds location metadata.
type Sys struct {
	Country string `json:"country"`
}

// Primary returns the first weather condition, if any.
func (r CurrentResponse) Primary() (Condition, bool) {
	if len(r.Weather) == 0 {
		return Condition{}, false
	}
	return r.Weather[0], true
}

// IconURL builds the icon asset URL for an icon code.
func IconURL(code string) string {
	return fmt.Sprintf(iconURLTemplate, code)
}

// apiError is the error body the API sends with non-2xx responses.
// cod arrives as a number or a string depending on the endpoint.
type apiError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
