package paapi

import (
	"errors"
	"strings"
)

var ErrUnknownOperation = errors.New("unknown paapi operation")

type Operation string

const (
	OperationSearchItems Operation = "SearchItems"
	OperationGetItems    Operation = "GetItems"
)

const (
	PartnerTypeAssociates = "Associates"
	DefaultSearchIndex    = "All"
	MaxItemCount          = 10
	MaxItemIDs            = 10
)

func (o Operation) Valid() bool {
	return o == OperationSearchItems || o == OperationGetItems
}

// Path is both the canonical URI and the request path, e.g. /paapi5/searchitems.
func (o Operation) Path() string {
	return "/paapi5/" + strings.ToLower(string(o))
}

func (o Operation) Target() string {
	return "com.amazon.paapi5.v1.ProductAdvertisingAPIv1." + string(o)
}

// SearchResources is the resource set requested by SearchItems.
var SearchResources = []string{
	"BrowseNodeInfo.BrowseNodes",
	"BrowseNodeInfo.WebsiteSalesRank",
	"CustomerReviews.Count",
	"CustomerReviews.StarRating",
	"Images.Primary.Large",
	"Images.Primary.Medium",
	"Images.Variants.Large",
	"ItemInfo.ByLineInfo",
	"ItemInfo.ContentInfo",
	"ItemInfo.Features",
	"ItemInfo.ManufactureInfo",
	"ItemInfo.ProductInfo",
	"ItemInfo.Title",
	"Offers.Listings.Availability.Message",
	"Offers.Listings.Availability.Type",
	"Offers.Listings.Condition",
	"Offers.Listings.DeliveryInfo.IsAmazonFulfilled",
	"Offers.Listings.DeliveryInfo.IsPrimeEligible",
	"Offers.Listings.IsBuyBoxWinner",
	"Offers.Listings.MerchantInfo",
	"Offers.Listings.Price",
	"Offers.Summaries.HighestPrice",
	"Offers.Summaries.LowestPrice",
}

// GetItemsResources is the resource set requested by GetItems.
var GetItemsResources = []string{
	"BrowseNodeInfo.BrowseNodes",
	"BrowseNodeInfo.BrowseNodes.Ancestor",
	"BrowseNodeInfo.BrowseNodes.SalesRank",
	"BrowseNodeInfo.WebsiteSalesRank",
	"CustomerReviews.Count",
	"CustomerReviews.StarRating",
	"Images.Primary.Small",
	"Images.Primary.Medium",
	"Images.Primary.Large",
	"Images.Variants.Large",
	"ItemInfo.ByLineInfo",
	"ItemInfo.ContentInfo",
	"ItemInfo.Classifications",
	"ItemInfo.Features",
	"ItemInfo.ManufactureInfo",
	"ItemInfo.ProductInfo",
	"ItemInfo.Title",
	"Offers.Listings.Availability.Message",
	"Offers.Listings.Availability.Type",
	"Offers.Listings.Condition",
	"Offers.Listings.DeliveryInfo.IsAmazonFulfilled",
	"Offers.Listings.DeliveryInfo.IsPrimeEligible",
	"Offers.Listings.IsBuyBoxWinner",
	"Offers.Listings.MerchantInfo",
	"Offers.Listings.Price",
	"Offers.Summaries.HighestPrice",
	"Offers.Summaries.LowestPrice",
	"ParentASIN",
}

type SearchItemsRequest struct {
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount"`
	Resources   []string `json:"Resources"`
	Marketplace string   `json:"Marketplace"`
}

type GetItemsRequest struct {
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	ItemIds     []string `json:"ItemIds"`
	Resources   []string `json:"Resources"`
	Marketplace string   `json:"Marketplace"`
}

func NewSearchItemsRequest(partnerTag, marketplace, keywords string, itemCount int, searchIndex string) SearchItemsRequest {
	if searchIndex == "" {
		searchIndex = DefaultSearchIndex
	}
	return SearchItemsRequest{
		PartnerTag:  partnerTag,
		PartnerType: PartnerTypeAssociates,
		Keywords:    keywords,
		SearchIndex: searchIndex,
		ItemCount:   itemCount,
		Resources:   SearchResources,
		Marketplace: marketplace,
	}
}

func NewGetItemsRequest(partnerTag, marketplace string, itemIDs []string) GetItemsRequest {
	return GetItemsRequest{
		PartnerTag:  partnerTag,
		PartnerType: PartnerTypeAssociates,
		ItemIds:     itemIDs,
		Resources:   GetItemsResources,
		Marketplace: marketplace,
	}
}
