package internal

import "strings"

// categoryTable maps categories to known domains. Classification is a
// substring match against the website hostname; unmatched hosts fall into
// "other".
var categoryTable = map[string][]string{
	"social":        {"facebook.com", "twitter.com", "instagram.com", "linkedin.com", "pinterest.com", "reddit.com", "tiktok.com", "snapchat.com"},
	"productivity":  {"github.com", "gitlab.com", "slack.com", "trello.com", "asana.com", "notion.so", "docs.google.com", "office.com"},
	"entertainment": {"youtube.com", "netflix.com", "twitch.tv", "spotify.com", "hulu.com", "disneyplus.com", "primevideo.com"},
	"shopping":      {"amazon.com", "ebay.com", "walmart.com", "target.com", "bestbuy.com", "etsy.com", "aliexpress.com"},
	"news":          {"cnn.com", "nytimes.com", "bbc.com", "wsj.com", "reuters.com", "bloomberg.com", "apnews.com"},
	"education":     {"udemy.com", "coursera.org", "edx.org", "khanacademy.org", "wikipedia.org", "stackoverflow.com", "medium.com"},
}

// CategoryOther is the fallback category for unclassified websites
const CategoryOther = "other"

// Categorize classifies a website hostname into a category
func Categorize(website string) string {
	for category, domains := range categoryTable {
		for _, domain := range domains {
			if strings.Contains(website, domain) {
				return category
			}
		}
	}
	return CategoryOther
}

// CapitalizeCategory formats a category name for display
func CapitalizeCategory(category string) string {
	if category == "" {
		return category
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
