package amazon

import (
	"net/url"
	"strconv"
	"strings"
)

// Param enumerates the query parameters the dispatcher knows how to send.
// Keeping them typed avoids the encoding bugs of hand-concatenated query
// strings.
type Param string

// Known Selling Partner API query parameters.
const (
	ParamMarketplaceIDs    Param = "MarketplaceIds"
	ParamMarketplaceID     Param = "MarketplaceId"
	ParamCreatedAfter      Param = "CreatedAfter"
	ParamCreatedBefore     Param = "CreatedBefore"
	ParamOrderStatuses     Param = "OrderStatuses"
	ParamMaxResultsPerPage Param = "MaxResultsPerPage"
	ParamPostedAfter       Param = "PostedAfter"
	ParamPostedBefore      Param = "PostedBefore"
	ParamShipmentStatuses  Param = "ShipmentStatusList"
	ParamQueryType         Param = "QueryType"

	// Inventory parameters use lowerCamelCase on the wire.
	ParamGranularityType    Param = "granularityType"
	ParamGranularityID      Param = "granularityId"
	ParamInventoryMarkets   Param = "marketplaceIds"
	ParamSellerSKUs         Param = "sellerSkus"
	ParamInventoryDetails   Param = "details"
)

// Query accumulates typed parameters for one API call.
type Query struct {
	values url.Values
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Set assigns a single-valued parameter.
func (q *Query) Set(p Param, value string) *Query {
	q.values.Set(string(p), value)
	return q
}

// SetInt assigns an integer parameter.
func (q *Query) SetInt(p Param, value int) *Query {
	q.values.Set(string(p), strconv.Itoa(value))
	return q
}

// SetBool assigns a boolean parameter.
func (q *Query) SetBool(p Param, value bool) *Query {
	q.values.Set(string(p), strconv.FormatBool(value))
	return q
}

// SetList assigns a comma-joined list parameter, skipping empty elements.
func (q *Query) SetList(p Param, values []string) *Query {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) > 0 {
		q.values.Set(string(p), strings.Join(cleaned, ","))
	}
	return q
}

// Values exposes the accumulated parameters.
func (q *Query) Values() url.Values {
	return q.values
}

// Encode returns the canonical (sorted-key) query string.
func (q *Query) Encode() string {
	return q.values.Encode()
}
