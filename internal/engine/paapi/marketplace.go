package paapi

// DefaultMarketplace is used whenever a marketplace name is not in the table.
const DefaultMarketplace = "www.amazon.com"

type Marketplace struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	Host   string `json:"host"`
}

var marketplaces = map[string]Marketplace{
	"www.amazon.com":   {Name: "www.amazon.com", Region: "us-east-1", Host: "webservices.amazon.com"},
	"www.amazon.co.uk": {Name: "www.amazon.co.uk", Region: "eu-west-1", Host: "webservices.amazon.co.uk"},
	"www.amazon.de":    {Name: "www.amazon.de", Region: "eu-west-1", Host: "webservices.amazon.de"},
	"www.amazon.fr":    {Name: "www.amazon.fr", Region: "eu-west-1", Host: "webservices.amazon.fr"},
	// Far East locales are signed for us-west-2 even though the host is in Japan.
	"www.amazon.co.jp": {Name: "www.amazon.co.jp", Region: "us-west-2", Host: "webservices.amazon.co.jp"},
	"www.amazon.ca":    {Name: "www.amazon.ca", Region: "us-east-1", Host: "webservices.amazon.ca"},
}

// marketplaceOrder is the display order used by the dashboard selector.
var marketplaceOrder = []string{
	"www.amazon.com",
	"www.amazon.co.uk",
	"www.amazon.de",
	"www.amazon.fr",
	"www.amazon.co.jp",
	"www.amazon.ca",
}

// LookupMarketplace returns the table entry for name. Unknown names resolve
// to the US entry; the Name field of the result is always a known marketplace.
func LookupMarketplace(name string) Marketplace {
	if m, ok := marketplaces[name]; ok {
		return m
	}
	return marketplaces[DefaultMarketplace]
}

// IsKnownMarketplace reports whether name has its own table entry.
func IsKnownMarketplace(name string) bool {
	_, ok := marketplaces[name]
	return ok
}

func Marketplaces() []Marketplace {
	out := make([]Marketplace, 0, len(marketplaceOrder))
	for _, name := range marketplaceOrder {
		out = append(out, marketplaces[name])
	}
	return out
}
