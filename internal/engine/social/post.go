// Package social renders product records as ready-to-paste social media posts.
package social

import (
	"fmt"
	"strings"

	"associates/internal/engine/products"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// MaxPosts bounds a single post generation run.
const MaxPosts = 5

type Post struct {
	Platform string          `json:"platform"`
	Text     string          `json:"text"`
	ImageURL string          `json:"image_url"`
	Product  products.Record `json:"product"`
}

const facebookTemplate = `🎉 Amazing Deal Alert! 🎉

%s

💰 Price: %s
⭐ Rating: %s stars
📦 Fast Shipping Available

Get it now: %s

#AmazonFinds #DealOfTheDay #Shopping #MustHave`

const instagramTemplate = `✨ %s ✨

💵 %s
⭐ %s stars

Check out the link in bio! 🔗

#amazon #deals #shopping #musthave #amazonfinds #onlineshopping #dealoftheday`

// NormalizePlatform maps anything that is not facebook to instagram.
func NormalizePlatform(platform string) string {
	if strings.EqualFold(strings.TrimSpace(platform), PlatformFacebook) {
		return PlatformFacebook
	}
	return PlatformInstagram
}

func FormatPost(r products.Record, platform string) string {
	if NormalizePlatform(platform) == PlatformFacebook {
		return fmt.Sprintf(facebookTemplate, r.Title, r.Price, r.Rating, r.URL)
	}
	// instagram posts link from the bio
	return fmt.Sprintf(instagramTemplate, r.Title, r.Price, r.Rating)
}

func BuildPosts(records []products.Record, platform string) []Post {
	platform = NormalizePlatform(platform)
	posts := make([]Post, 0, len(records))
	for _, r := range records {
		posts = append(posts, Post{
			Platform: platform,
			Text:     FormatPost(r, platform),
			ImageURL: r.ImageURL,
			Product:  r,
		})
	}
	return posts
}
