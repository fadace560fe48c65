// Package products flattens PA-API item objects into fixed-shape records.
//
// Every field of a Record has a default ("N/A", 0, false, "" or an empty
// list) that is used when the source path is missing or has the wrong type,
// so a Record never has an absent field.
package products

import (
	"github.com/shopspring/decimal"
)

const NotAvailable = "N/A"

// DefaultMerchant names the seller when a listing carries no merchant name.
const DefaultMerchant = "Amazon"

func init() {
	// Amounts are JSON numbers, like every other numeric field.
	decimal.MarshalJSONWithoutQuotes = true
}

type Record struct {
	ASIN         string   `json:"asin"`
	Title        string   `json:"title"`
	Brand        string   `json:"brand"`
	Manufacturer string   `json:"manufacturer"`
	Color        string   `json:"color"`
	Size         string   `json:"size"`
	Features     []string `json:"features"`

	Price             string          `json:"price"`
	PriceAmount       decimal.Decimal `json:"price_amount"`
	Availability      string          `json:"availability"`
	IsPrime           bool            `json:"is_prime"`
	IsAmazonFulfilled bool            `json:"is_amazon_fulfilled"`
	MerchantName      string          `json:"merchant_name"`
	MerchantRating    string          `json:"merchant_rating"`

	Rating      string  `json:"rating"`
	RatingValue float64 `json:"rating_value"`
	ReviewCount int     `json:"review_count"`

	// SalesRank is 0 when the item has no website sales rank.
	SalesRank int `json:"sales_rank"`

	ImageURL    string `json:"image_url"`
	ImageMedium string `json:"image_medium"`
	URL         string `json:"url"`
}

// HasPrice reports whether PriceAmount is a real price; 0 marks an absent one.
func (r Record) HasPrice() bool {
	return r.PriceAmount.IsPositive()
}

func (r Record) HasRating() bool {
	return r.Rating != NotAvailable
}

func (r Record) HasSalesRank() bool {
	return r.SalesRank > 0
}

type offer struct {
	price             string
	priceAmount       decimal.Decimal
	availability      string
	isPrime           bool
	isAmazonFulfilled bool
	merchantName      string
	merchantRating    string
}

var noOffer = offer{
	price:          NotAvailable,
	priceAmount:    decimal.Zero,
	availability:   NotAvailable,
	merchantName:   NotAvailable,
	merchantRating: NotAvailable,
}

// Normalize maps one raw item object to a Record. It never fails; a nil or
// empty item yields the all-defaults record.
func Normalize(item map[string]any) Record {
	if item == nil {
		item = map[string]any{}
	}

	itemInfo := object(item, "ItemInfo")
	r := Record{
		ASIN:         str(item, NotAvailable, "ASIN"),
		Title:        str(itemInfo, NotAvailable, "Title", "DisplayValue"),
		Brand:        str(itemInfo, NotAvailable, "ByLineInfo", "Brand", "DisplayValue"),
		Manufacturer: str(itemInfo, NotAvailable, "ByLineInfo", "Manufacturer", "DisplayValue"),
		Color:        str(itemInfo, NotAvailable, "ProductInfo", "Color", "DisplayValue"),
		Size:         str(itemInfo, NotAvailable, "ProductInfo", "Size", "DisplayValue"),
		Features:     strs(itemInfo, "Features", "DisplayValues"),
		URL:          str(item, NotAvailable, "DetailPageURL"),
	}

	o := firstOffer(item)
	r.Price = o.price
	r.PriceAmount = o.priceAmount
	r.Availability = o.availability
	r.IsPrime = o.isPrime
	r.IsAmazonFulfilled = o.isAmazonFulfilled
	r.MerchantName = o.merchantName
	r.MerchantRating = o.merchantRating

	reviews := object(item, "CustomerReviews")
	r.Rating = str(reviews, NotAvailable, "StarRating", "Value")
	if v, ok := number(reviews, "StarRating", "Value"); ok {
		r.RatingValue = v.InexactFloat64()
	}
	r.ReviewCount = integer(reviews, "Count")

	if rank := integer(item, "BrowseNodeInfo", "WebsiteSalesRank", "SalesRank"); rank > 0 {
		r.SalesRank = rank
	}

	primary := object(item, "Images", "Primary")
	r.ImageURL = str(primary, "", "Large", "URL")
	r.ImageMedium = str(primary, "", "Medium", "URL")

	return r
}

// firstOffer reads every offer field from the first listing, or returns the
// complete no-offer set when there is none.
func firstOffer(item map[string]any) offer {
	listing, ok := firstObject(item, "Offers", "Listings")
	if !ok {
		return noOffer
	}

	amount, _ := number(listing, "Price", "Amount")
	return offer{
		price:             str(listing, NotAvailable, "Price", "DisplayAmount"),
		priceAmount:       amount,
		availability:      str(listing, NotAvailable, "Availability", "Message"),
		isPrime:           boolean(listing, "DeliveryInfo", "IsPrimeEligible"),
		isAmazonFulfilled: boolean(listing, "DeliveryInfo", "IsAmazonFulfilled"),
		merchantName:      str(listing, DefaultMerchant, "MerchantInfo", "Name"),
		merchantRating:    str(listing, NotAvailable, "MerchantInfo", "FeedbackRating"),
	}
}

func NormalizeAll(items []map[string]any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, Normalize(item))
	}
	return out
}

// VariantImages returns up to limit large variant image URLs.
func VariantImages(item map[string]any, limit int) []string {
	out := []string{}
	for _, variant := range objects(item, "Images", "Variants") {
		if len(out) >= limit {
			break
		}
		if u := str(variant, "", "Large", "URL"); u != "" {
			out = append(out, u)
		}
	}
	return out
}
