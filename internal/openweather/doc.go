// Package openweather provides an HTTP client for the OpenWeatherMap current
// weather API.
//
// # Overview
//
// The package is split into two files:
//
//   - client.go: HTTP client, query encoding and error mapping
//   - types.go: data structures mirroring the API payload
//
// # Client Usage
//
//	client, err := openweather.NewClient(openweather.Options{APIKey: key})
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	resp, err := client.FetchCurrent(ctx, "Catanzaro")
//	var serr *openweather.StatusError
//	if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
//		// unknown city
//	}
//
// # Request Shape
//
// Every lookup is a single GET against the configured base URL with the query
// parameters q, appid, units and lang. Units default to "metric" and the
// language to "it".
//
// # Error Handling
//
// Non-2xx responses become *StatusError carrying the HTTP status and the
// message from the API's {"cod", "message"} body, falling back to the HTTP
// status text. Transport failures are wrapped with "execute request" and
// malformed bodies with "decode response". A blank API key yields
// ErrMissingAPIKey without touching the network.
//
// # Icons
//
// IconURL builds the icon asset URL for a condition's icon code. The client
// never fetches icons itself.
package openweather
