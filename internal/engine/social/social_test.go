package social

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"associates/internal/engine/products"
)

func sampleRecord() products.Record {
	r := products.Normalize(nil)
	r.Title = "Glass Ornament Set"
	r.Price = "$19.99"
	r.Rating = "4.6"
	r.URL = "https://www.amazon.com/dp/B0C76343HK?tag=demo-20"
	r.ImageURL = "https://m.media-amazon.com/images/I/large.jpg"
	return r
}

func TestFormatPost_Facebook(t *testing.T) {
	post := FormatPost(sampleRecord(), "facebook")

	for _, want := range []string{
		"🎉 Amazing Deal Alert! 🎉",
		"Glass Ornament Set",
		"💰 Price: $19.99",
		"⭐ Rating: 4.6 stars",
		"Get it now: https://www.amazon.com/dp/B0C76343HK?tag=demo-20",
		"#AmazonFinds #DealOfTheDay #Shopping #MustHave",
	} {
		if !strings.Contains(post, want) {
			t.Errorf("facebook post missing %q:\n%s", want, post)
		}
	}
}

func TestFormatPost_Instagram(t *testing.T) {
	tests := []struct {
		name     string
		platform string
	}{
		{"Instagram", "instagram"},
		{"Unknown platform", "tiktok"},
		{"Empty platform", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := FormatPost(sampleRecord(), tt.platform)
			if !strings.HasPrefix(post, "✨ Glass Ornament Set ✨") {
				t.Errorf("unexpected post start:\n%s", post)
			}
			if !strings.Contains(post, "💵 $19.99") || !strings.Contains(post, "Check out the link in bio! 🔗") {
				t.Errorf("unexpected post body:\n%s", post)
			}
			if strings.Contains(post, "https://") {
				t.Error("instagram post should not carry the link")
			}
		})
	}
}

func TestFormatPost_Defaults(t *testing.T) {
	post := FormatPost(products.Normalize(nil), PlatformFacebook)
	if !strings.Contains(post, "💰 Price: N/A") || !strings.Contains(post, "⭐ Rating: N/A stars") {
		t.Errorf("unexpected default post:\n%s", post)
	}
}

func TestBuildPosts(t *testing.T) {
	posts := BuildPosts([]products.Record{sampleRecord(), sampleRecord()}, "FACEBOOK")
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[0].Platform != PlatformFacebook {
		t.Errorf("Platform = %s", posts[0].Platform)
	}
	if posts[1].ImageURL != "https://m.media-amazon.com/images/I/large.jpg" {
		t.Errorf("ImageURL = %s", posts[1].ImageURL)
	}

	if got := BuildPosts(nil, "instagram"); got == nil || len(got) != 0 {
		t.Errorf("Expected empty list, got %v", got)
	}
}

func TestGenerateQRCode(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		size    int
		wantErr error
	}{
		{name: "Valid QR Code", link: "https://example.com", size: 512},
		{name: "Default size", link: "https://example.com", size: 0},
		{name: "Size Too Small", link: "https://example.com", size: 100, wantErr: ErrInvalidQRSize},
		{name: "Size Too Large", link: "https://example.com", size: 5000, wantErr: ErrInvalidQRSize},
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateQRCode(tt.link, tt.size)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GenerateQRCode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateQRCode() error = %v", err)
			}
			if !bytes.HasPrefix(got, pngMagic) {
				t.Errorf("GenerateQRCode() did not return a PNG")
			}
		})
	}
}

func TestGenerateQRCode_EmptyLink(t *testing.T) {
	if _, err := GenerateQRCode("", 256); err == nil {
		t.Error("Expected error for empty link")
	}
}
