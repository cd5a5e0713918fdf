package analysis

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// categoryRule binds a category to the keywords that identify it. Rule order
// encodes priority: when a description matches keywords from several rules,
// the earliest rule wins, so "WHOLEFDS.COM" stays groceries even though
// ".com" also matches online shopping.
type categoryRule struct {
	category Category
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryGroceries, []string{
		"walmart", "kroger", "safeway", "whole foods", "wholefds", "trader joe",
		"aldi", "publix", "wegmans", "heb ", "food lion", "albertsons",
		"supermarket", "grocery",
	}},
	{CategoryDining, []string{
		"starbucks", "mcdonald", "chipotle", "dunkin", "taco bell", "wendy",
		"burger king", "domino", "panera", "olive garden", "kfc",
		"doordash", "uber eats", "grubhub", "restaurant", "pizza", "cafe",
		"coffee", "diner", "grill", "bakery", "sushi", "subway",
	}},
	{CategoryGas, []string{
		"shell", "chevron", "exxon", "mobil", "sunoco", "valero", "marathon",
		"speedway", "circle k", "76 ", "phillips 66", "fuel", "gas station",
		"wawa", "quiktrip",
	}},
	{CategoryTravel, []string{
		"united air", "delta air", "american air", "southwest", "jetblue",
		"alaska air", "spirit air", "airline", "airways", "marriott", "hilton",
		"hyatt", "airbnb", "vrbo", "expedia", "booking.com", "hotels.com",
		"hotel", "resort", "hertz", "avis", "enterprise rent", "cruise",
		"airport", "flight",
	}},
	{CategoryStreaming, []string{
		"netflix", "spotify", "hulu", "disney plus", "disney+", "hbo", "max.com",
		"youtube premium", "apple music", "apple tv", "paramount", "peacock",
		"audible", "twitch",
	}},
	{CategoryDepartmentStores, []string{
		"target", "macy", "nordstrom", "kohl", "jcpenney", "dillard",
		"bloomingdale", "marshalls", "tj maxx", "tjmaxx", "ross stores",
		"burlington",
	}},
	{CategoryDrugStores, []string{
		"cvs", "walgreens", "rite aid", "duane reade", "pharmacy", "drugstore",
	}},
	{CategoryOnlineShopping, []string{
		"amazon", "amzn", "ebay", "etsy", "wayfair", "aliexpress", "temu",
		"shein", "chewy", "paypal", "shopify", ".com",
	}},
	{CategoryWarehouseClubs, []string{
		"costco", "sam's club", "sams club", "bj's wholesale", "bjs wholesale",
		"wholesale club",
	}},
	{CategoryTransit, []string{
		"uber", "lyft", "mta ", "metro", "amtrak", "transit", "parking",
		"toll", "taxi", "caltrain", "bart ", "greyhound",
	}},
}

// Categorizer classifies transaction descriptions. All keywords across all
// rules are compiled into a single Aho-Corasick matcher so one pass over the
// text finds every candidate; the earliest rule among the hits decides.
type Categorizer struct {
	matcher   *ahocorasick.Matcher
	ruleIndex []int // pattern index -> index into categoryRules
}

// NewCategorizer compiles the rule keywords into a matcher.
func NewCategorizer() *Categorizer {
	var (
		patterns  [][]byte
		ruleIndex []int
	)
	for ri, rule := range categoryRules {
		for _, kw := range rule.keywords {
			patterns = append(patterns, []byte(strings.ToUpper(kw)))
			ruleIndex = append(ruleIndex, ri)
		}
	}

	return &Categorizer{
		matcher:   ahocorasick.NewMatcher(patterns),
		ruleIndex: ruleIndex,
	}
}

// Categorize maps a description to exactly one category, falling back to
// general when no rule matches. It is total and deterministic.
func (c *Categorizer) Categorize(description string) Category {
	if description == "" {
		return CategoryGeneral
	}

	hits := c.matcher.Match([]byte(strings.ToUpper(description)))
	best := -1
	for _, h := range hits {
		if h < 0 || h >= len(c.ruleIndex) {
			continue
		}
		if ri := c.ruleIndex[h]; best == -1 || ri < best {
			best = ri
		}
	}
	if best == -1 {
		return CategoryGeneral
	}
	return categoryRules[best].category
}

// CategorizeBatch classifies multiple descriptions in one call.
func (c *Categorizer) CategorizeBatch(descriptions []string) []Category {
	out := make([]Category, len(descriptions))
	for i, d := range descriptions {
		out[i] = c.Categorize(d)
	}
	return out
}
