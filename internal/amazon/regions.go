package amazon

import "strings"

// Region identifies a Selling Partner API deployment zone.
type Region string

// Supported marketplace regions.
const (
	RegionNA Region = "NA"
	RegionEU Region = "EU"
	RegionFE Region = "FE"
)

// DefaultRegion is used when a bundle carries no recognizable region tag.
const DefaultRegion = RegionNA

var regionEndpoints = map[Region]string{
	RegionNA: "https://sellingpartnerapi-na.amazon.com",
	RegionEU: "https://sellingpartnerapi-eu.amazon.com",
	RegionFE: "https://sellingpartnerapi-fe.amazon.com",
}

// ParseRegion maps a region tag to a supported Region. Unrecognized or
// empty tags resolve to the default region.
func ParseRegion(tag string) Region {
	region := Region(strings.ToUpper(strings.TrimSpace(tag)))
	if _, ok := regionEndpoints[region]; !ok {
		return DefaultRegion
	}
	return region
}

// Endpoint returns the API host for the region.
func (r Region) Endpoint() string {
	if endpoint, ok := regionEndpoints[r]; ok {
		return endpoint
	}
	return regionEndpoints[DefaultRegion]
}

// Regions lists the supported region tags.
func Regions() []Region {
	return []Region{RegionNA, RegionEU, RegionFE}
}
