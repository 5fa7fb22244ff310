package model

import "net/url"

// Endpoint identifies one of the two catalog query endpoints.
type Endpoint string

const (
	EndpointDiscover Endpoint = "discover/movie"
	EndpointSearch   Endpoint = "search/movie"
)

// Path returns the endpoint path relative to the service base URL.
func (e Endpoint) Path() string { return string(e) }

// Param is one query parameter. Descriptors keep parameters in insertion
// order so logs and tests see them the way they were built.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RequestDescriptor is a transport-agnostic description of one catalog
// query. Credentials are not part of it; the client adds them.
type RequestDescriptor struct {
	Endpoint Endpoint `json:"endpoint"`
	Params   []Param  `json:"params"`
}

// Get returns the value of the first parameter named key.
func (r RequestDescriptor) Get(key string) (string, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values converts the parameters into url.Values for encoding.
func (r RequestDescriptor) Values() url.Values {
	v := make(url.Values, len(r.Params))
	for _, p := range r.Params {
		v.Add(p.Key, p.Value)
	}
	return v
}

// OutcomeKind tags a FetchOutcome.
type OutcomeKind string

const (
	OutcomeLoading OutcomeKind = "loading"
	OutcomeSuccess OutcomeKind = "success"
	OutcomeFailure OutcomeKind = "failure"
)

// FetchOutcome is what the display layer sees of the latest request.
// Results and TotalPages are meaningful on success; Message on failure.
type FetchOutcome struct {
	Kind       OutcomeKind
	Results    []Movie
	TotalPages int
	Message    string
}

// Empty reports whether a settled request produced no movies.
func (o FetchOutcome) Empty() bool {
	return o.Kind == OutcomeSuccess && len(o.Results) == 0
}
