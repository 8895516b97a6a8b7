package datamall

import (
	"fmt"
	"net/url"
	"strings"
)

// Fixed components of every DataMall URL.
const (
	DefaultHost = "https://datamall2.mytransport.sg"
	APIVersion  = "/ltaodataservice"
	BaseURL     = DefaultHost + APIVersion
)

// Route is the per-domain path fragment of an endpoint, e.g. "/BusStops".
// Service packages declare their routes as typed constants.
type Route string

// Endpoint is a fully resolved absolute request URL.
type Endpoint string

func (e Endpoint) String() string { return string(e) }

// ResolveEndpoint joins host, version and route into an Endpoint.
// It performs no I/O and returns the same result for the same inputs.
//
// Example:
//
//	ep, err := datamall.ResolveEndpoint(datamall.DefaultHost, datamall.APIVersion, bus.RouteStops)
//	// ep == "https://datamall2.mytransport.sg/ltaodataservice/BusStops"
func ResolveEndpoint(host, version string, route Route) (Endpoint, error) {
	if err := validateBase(host, version); err != nil {
		return "", err
	}
	if err := validateRoute(route); err != nil {
		return "", err
	}
	return Endpoint(host + version + string(route)), nil
}

// MustResolve is like ResolveEndpoint against the default host and version,
// but panics if the route is malformed. Intended for package-level variables.
func MustResolve(route Route) Endpoint {
	ep, err := ResolveEndpoint(DefaultHost, APIVersion, route)
	if err != nil {
		panic(err)
	}
	return ep
}

// validateBase checks the host and version prefix.
func validateBase(host, version string) error {
	u, err := url.Parse(host)
	if err != nil {
		return &Error{Kind: KindResolve, Op: "resolve", Message: "malformed host", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &Error{Kind: KindResolve, Op: "resolve", Message: fmt.Sprintf("host %q must be an absolute http(s) URL", host)}
	}
	if u.Host == "" || u.RawQuery != "" || u.Fragment != "" || (u.Path != "" && u.Path != "/") || strings.HasSuffix(host, "/") {
		return &Error{Kind: KindResolve, Op: "resolve", Message: fmt.Sprintf("host %q must be scheme://host[:port] only", host)}
	}
	if version != "" {
		if !strings.HasPrefix(version, "/") || strings.HasSuffix(version, "/") || !cleanSegment(version) {
			return &Error{Kind: KindResolve, Op: "resolve", Message: fmt.Sprintf("malformed version prefix %q", version)}
		}
	}
	return nil
}

// validateRoute checks a route fragment. Query strings belong in params.
func validateRoute(route Route) error {
	r := string(route)
	if len(r) < 2 || r[0] != '/' || strings.HasSuffix(r, "/") || !cleanSegment(r) {
		return &Error{Kind: KindResolve, Op: r, Message: fmt.Sprintf("malformed route %q", r)}
	}
	return nil
}

func cleanSegment(s string) bool {
	if strings.ContainsAny(s, "?#% \t\r\n") || strings.Contains(s, "//") {
		return false
	}
	for _, part := range strings.Split(s, "/") {
		if part == "." || part == ".." {
			return false
		}
	}
	return true
}
