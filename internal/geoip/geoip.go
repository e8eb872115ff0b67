package geoip

// Location is the enrichment attached to a source IP.
type Location struct {
	Country string
	City    string
}

// Resolver enriches source IPs. Implementations must be safe for concurrent
// use and must never block the capture path.
type Resolver interface {
	Lookup(ip string) Location
}

// Noop is the default resolver. A honeypot making outbound lookups per hit
// would leak its own presence, so enrichment stays off unless an operator
// plugs in a local database.
type Noop struct{}

// Lookup returns an empty location.
func (Noop) Lookup(string) Location { return Location{} }
