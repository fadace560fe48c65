// Package export writes dashboard tables as CSV downloads.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"associates/internal/engine/analytics"
	"associates/internal/engine/products"
)

var trendingHeader = []string{"ASIN", "Title", "Brand", "Price", "Rating", "Reviews", "Sales Rank", "Prime", "Availability", "URL"}

var analysisHeader = []string{"Product", "Brand", "Price", "Rating", "Reviews", "Sales Rank", "Prime"}

// FileName builds names like trending_sea_otter_plush_20241203.csv.
func FileName(prefix, keywords string, at time.Time) string {
	return prefix + "_" + strings.ReplaceAll(keywords, " ", "_") + "_" + at.Format("20060102") + ".csv"
}

// WriteTrending writes the daily tracking table. Titles are cut to 60 runes.
func WriteTrending(w io.Writer, records []products.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trendingHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ASIN,
			products.Truncate(r.Title, 60),
			r.Brand,
			r.Price,
			r.Rating,
			strconv.Itoa(r.ReviewCount),
			r.SalesRankDisplay(),
			products.PrimeMark(r.IsPrime),
			r.Availability,
			r.URL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteAnalysis(w io.Writer, rows []analytics.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(analysisHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Product, r.Brand, r.Price, r.Rating, strconv.Itoa(r.Reviews), r.SalesRank, r.Prime}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
