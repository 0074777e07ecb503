package amazon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want Region
	}{
		{name: "north america", tag: "NA", want: RegionNA},
		{name: "europe", tag: "EU", want: RegionEU},
		{name: "far east", tag: "FE", want: RegionFE},
		{name: "lowercase", tag: "eu", want: RegionEU},
		{name: "whitespace", tag: " NA ", want: RegionNA},
		{name: "unknown defaults", tag: "MARS", want: RegionNA},
		{name: "empty defaults", tag: "", want: RegionNA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRegion(tt.tag))
		})
	}
}

func TestRegionEndpoint(t *testing.T) {
	assert.Equal(t, "https://sellingpartnerapi-na.amazon.com", RegionNA.Endpoint())
	assert.Equal(t, "https://sellingpartnerapi-eu.amazon.com", RegionEU.Endpoint())
	assert.Equal(t, "https://sellingpartnerapi-fe.amazon.com", RegionFE.Endpoint())

	// A bundle with a bogus region tag must still resolve to a host.
	assert.Equal(t, RegionNA.Endpoint(), Region("bogus").Endpoint())
}

func TestRegions(t *testing.T) {
	assert.Equal(t, []Region{RegionNA, RegionEU, RegionFE}, Regions())
}
