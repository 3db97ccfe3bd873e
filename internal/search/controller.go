// Package search drives a weather lookup from raw user input to a settled
// state.Display.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/meteo/internal/openweather"
	"github.com/five82/meteo/internal/state"
)

// Query is a validated lookup ready to be sent.
type Query struct {
	City string
}

// Result is the outcome of a lookup. Exactly one of Response and Err is set.
type Result struct {
	Query    Query
	Response *openweather.CurrentResponse
	Err      error
}

// Controller validates input and performs lookups.
type Controller struct {
	fetcher openweather.Fetcher
	apiKey  string
	log     *logrus.Entry
}

// New creates a Controller. An empty apiKey makes every search fail fast.
func New(fetcher openweather.Fetcher, apiKey string, log *logrus.Entry) *Controller {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Controller{fetcher: fetcher, apiKey: strings.TrimSpace(apiKey), log: log}
}

// Begin runs the synchronous half of a search. When ok is false no request
// must be issued and the returned Display is final.
func (c *Controller) Begin(d state.Display, raw string) (state.Display, Query, bool) {
	city := strings.TrimSpace(raw)
	if city == "" {
		return d.RejectInput(), Query{}, false
	}

	d = d.Begin()
	if c.apiKey == "" {
		c.log.Error("api key not configured, search aborted")
		return d.MissingAPIKey(), Query{}, false
	}
	return d, Query{City: city}, true
}

// Fetch performs the lookup for q. It blocks until the request completes.
func (c *Controller) Fetch(ctx context.Context, q Query) Result {
	resp, err := c.fetcher.FetchCurrent(ctx, q.City)
	if err != nil {
		c.log.WithError(err).WithField("city", q.City).Warn("weather lookup failed")
		return Result{Query: q, Err: err}
	}
	c.log.WithField("city", resp.Name).Debug("weather lookup succeeded")
	return Result{Query: q, Response: resp}
}

// Apply folds a completed lookup into d.
func Apply(d state.Display, r Result) state.Display {
	if r.Err == nil && r.Response != nil {
		return d.Succeed(*r.Response)
	}
	status, message := describe(r.Err)
	return d.Fail(r.Query.City, status, message)
}

// Search runs Begin, Fetch and Apply in sequence.
func (c *Controller) Search(ctx context.Context, d state.Display, raw string) state.Display {
	d, q, ok := c.Begin(d, raw)
	if !ok {
		return d
	}
	return Apply(d, c.Fetch(ctx, q))
}

func describe(err error) (int, string) {
	if err == nil {
		return 0, "empty response"
	}
	var serr *openweather.StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode, serr.Message
	}
	return 0, err.Error()
}
