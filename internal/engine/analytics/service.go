package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"associates/internal/engine/paapi"
	"associates/internal/engine/products"
)

// SampleSize is the number of search results a trend analysis looks at.
const SampleSize = 10

// TopN is the length of the most-reviewed list.
const TopN = 5

type Searcher interface {
	SearchItems(ctx context.Context, keywords string, itemCount int, searchIndex string) (*paapi.Response, error)
}

type Row struct {
	Product   string `json:"product"`
	ASIN      string `json:"asin"`
	Brand     string `json:"brand"`
	Price     string `json:"price"`
	Rating    string `json:"rating"`
	Reviews   int    `json:"reviews"`
	SalesRank string `json:"sales_rank"`
	Prime     string `json:"prime"`
}

type Summary struct {
	Keywords      string              `json:"keywords"`
	Products      int                 `json:"products"`
	AveragePrice  decimal.NullDecimal `json:"average_price"`
	AverageRating *float64            `json:"average_rating"`
	TotalReviews  int                 `json:"total_reviews"`
	PrimeCount    int                 `json:"prime_count"`
	Rows          []Row               `json:"rows"`
	TopByReviews  []Row               `json:"top_by_reviews"`
}

type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Analyze searches keywords and summarizes the first SampleSize results.
func (s *Service) Analyze(ctx context.Context, keywords string) (*Summary, error) {
	resp, err := s.searcher.SearchItems(ctx, keywords, SampleSize, paapi.DefaultSearchIndex)
	if err != nil {
		return nil, err
	}

	summary := Summarize(products.NormalizeAll(resp.Items()))
	summary.Keywords = keywords
	return &summary, nil
}

// Summarize computes the trend metrics. Zero prices and unrated items are
// left out of the averages since 0 and N/A mark absent values.
func Summarize(records []products.Record) Summary {
	summary := Summary{
		Products:     len(records),
		Rows:         make([]Row, 0, len(records)),
		TopByReviews: []Row{},
	}

	priceSum := decimal.Zero
	priced := 0
	ratingSum := 0.0
	rated := 0

	for _, r := range records {
		if r.HasPrice() {
			priceSum = priceSum.Add(r.PriceAmount)
			priced++
		}
		if r.HasRating() {
			ratingSum += r.RatingValue
			rated++
		}
		summary.TotalReviews += r.ReviewCount
		if r.IsPrime {
			summary.PrimeCount++
		}
		summary.Rows = append(summary.Rows, rowFor(r))
	}

	if priced > 0 {
		avg := priceSum.Div(decimal.NewFromInt(int64(priced))).Round(2)
		summary.AveragePrice = decimal.NullDecimal{Decimal: avg, Valid: true}
	}
	if rated > 0 {
		avg := math.Round(ratingSum/float64(rated)*10) / 10
		summary.AverageRating = &avg
	}

	top := make([]Row, len(summary.Rows))
	copy(top, summary.Rows)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Reviews > top[j].Reviews })
	if len(top) > TopN {
		top = top[:TopN]
	}
	summary.TopByReviews = top

	return summary
}

func rowFor(r products.Record) Row {
	return Row{
		Product:   products.Truncate(r.Title, 40) + "...",
		ASIN:      r.ASIN,
		Brand:     r.Brand,
		Price:     r.Price,
		Rating:    r.Rating,
		Reviews:   r.ReviewCount,
		SalesRank: r.SalesRankDisplay(),
		Prime:     products.PrimeMark(r.IsPrime),
	}
}
