package navigation

import "strings"

// Route maps a URL path to a named view.
type Route struct {
	Path string `json:"path"`
	Name string `json:"name"`
	View string `json:"view"`
}

// Revision selects which set of views the client ships with.
type Revision string

const (
	RevisionBase     Revision = "base"
	RevisionPayments Revision = "payments"
)

var baseRoutes = []Route{
	{Path: "/", Name: "Home", View: "Home"},
	{Path: "/login", Name: "Login", View: "Login"},
	{Path: "/register", Name: "Register", View: "Register"},
	{Path: "/journey-planner", Name: "JourneyPlanner", View: "JourneyPlanner"},
	{Path: "/saved-journeys", Name: "SavedJourneys", View: "SavedJourneys"},
	{Path: "/profile", Name: "Profile", View: "Profile"},
}

var paymentRoutes = []Route{
	{Path: "/payment-success", Name: "PaymentSuccess", View: "PaymentSuccess"},
	{Path: "/test-payment", Name: "TestPayment", View: "TestPayment"},
}

// ParseRevision maps a config value to a Revision, defaulting to RevisionBase.
func ParseRevision(s string) Revision {
	if Revision(strings.ToLower(strings.TrimSpace(s))) == RevisionPayments {
		return RevisionPayments
	}
	return RevisionBase
}

// Table returns a fresh copy of the route table for rev.
func Table(rev Revision) []Route {
	out := make([]Route, 0, len(baseRoutes)+len(paymentRoutes))
	out = append(out, baseRoutes...)
	if rev == RevisionPayments {
		out = append(out, paymentRoutes...)
	}
	return out
}

// Resolve finds the route for path. A trailing slash is ignored except on "/".
func Resolve(table []Route, path string) (Route, bool) {
	p := strings.TrimSpace(path)
	if p == "" {
		p = "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	for _, r := range table {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}
