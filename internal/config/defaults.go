package config

import "sort"

// DefaultUserAgents is the pool a random User-Agent is drawn from per
// request. Rotating agents keeps requests from looking like a single client.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/119 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/119.0",
}

// DefaultCategories is the stock business-category list for discovery.
var DefaultCategories = []string{
	"Convenience Stores",
	"Grocery Stores",
	"Gas Stations",
	"Gift Shops",
	"Pharmacies",
	"Candy Stores",
	"General Stores",
	"Variety Stores",
	"Trading Posts",
	"Tourist Attractions",
	"Sports Complexes",
	"Sports Venues",
	"Museums",
	"Art Galleries",
	"Bookstores",
	"Music Stores",
	"Sports Stores",
	"Electronics Stores",
	"Fashion Stores",
	"Pet Stores",
}

// DefaultLocalities is the stock Northern Ontario locality list, sorted.
var DefaultLocalities = sortedCopy([]string{
	"Sudbury, ON",
	"North Bay, ON",
	"Sault Ste. Marie, ON",
	"Timmins, ON",
	"Thunder Bay, ON",
	"Elliot Lake, ON",
	"Temiskaming Shores, ON",
	"Kenora, ON",
	"Dryden, ON",
	"Fort Frances, ON",
	"Kapuskasing, ON",
	"Kirkland Lake, ON",
	"Espanola, ON",
	"Blind River, ON",
	"Cochrane, ON",
	"Hearst, ON",
	"Iroquois Falls, ON",
	"Marathon, ON",
	"Wawa, ON",
	"Little Current, ON",
	"Sioux Lookout, ON",
	"Red Lake, ON",
	"Chapleau, ON",
	"Nipigon, ON",
	"Parry Sound, ON",
	"Sturgeon Falls, ON",
	"Manitouwadge, ON",
	"Gogama, ON",
	"Foleyet, ON",
	"Britt, ON",
})

func sortedCopy(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}
