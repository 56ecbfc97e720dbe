package fallback

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

// builder produces the domain fields of one synthetic record. The
// caller assigns the id field afterwards.
type builder func(rng *rand.Rand, anchor time.Time, n int) collection.Record

var cityStates = []string{
	"Miami, FL", "Tampa, FL", "Austin, TX", "Dallas, TX", "Houston, TX",
	"Scottsdale, AZ", "Phoenix, AZ", "Denver, CO", "Boulder, CO",
	"Charlotte, NC", "Raleigh, NC", "Atlanta, GA", "Nashville, TN",
	"Chicago, IL", "Columbus, OH", "Boston, MA", "New York, NY",
	"San Diego, CA", "Irvine, CA", "Seattle, WA", "Portland, OR",
	"Minneapolis, MN", "Kansas City, MO", "Salt Lake City, UT",
}

var firmAdjectives = []string{
	"Summit", "Legacy", "Harbor", "Beacon", "Crestview", "Oakmont",
	"Sterling", "Meridian", "Pinnacle", "Granite", "Lighthouse",
	"Blue Ridge", "Keystone", "Northstar", "Heritage", "Compass",
}

var firmNouns = []string{
	"Wealth Partners", "Capital Advisors", "Financial Group",
	"Wealth Management", "Advisory Group", "Asset Management",
	"Private Wealth", "Planning Associates",
}

var firstNames = []string{
	"James", "Sarah", "Michael", "Jennifer", "David", "Laura", "Robert",
	"Emily", "William", "Rachel", "Thomas", "Karen", "Daniel", "Susan",
	"Mark", "Nancy", "Paul", "Angela", "Steven", "Diane",
}

var lastNames = []string{
	"Mitchell", "Reynolds", "Carter", "Bennett", "Harrison", "Coleman",
	"Brooks", "Sullivan", "Hayes", "Fletcher", "Donovan", "Whitfield",
	"Parker", "Lawson", "Granger", "Maxwell", "Thornton", "Ellis",
}

var custodians = []string{
	"Schwab", "Fidelity", "Pershing", "LPL", "Raymond James", "Altruist",
}

var dealTypes = []string{"Acquisition", "Succession", "Breakaway", "Merger"}
var dealStages = []string{"Prospect", "NDA", "LOI", "Due Diligence", "Closed"}
var listingStatuses = []string{"Active", "Pending", "Sold"}
var profileStatuses = []string{"Active", "Onboarding", "Inactive"}
var userRoles = []string{"admin", "editor", "advisor"}
var userStatuses = []string{"Active", "Invited", "Suspended"}
var blogCategories = []string{"Practice Management", "M&A", "Compliance", "Growth"}
var contentStatuses = []string{"Draft", "Published", "Archived"}
var newsTopics = []string{"Markets", "Regulation", "RIA M&A", "Technology", "Recruiting"}
var newsSources = []string{
	"AdvisorHub", "WealthManagement.com", "Citywire RIA", "Barron's Advisor",
	"Financial Planning", "InvestmentNews",
}

var builders = map[collection.ID]builder{
	collection.FirmDeals:        buildFirmDeal,
	collection.FirmParameters:   buildFirmParameters,
	collection.FirmProfiles:     buildFirmProfile,
	collection.AdminUsers:       buildAdminUser,
	collection.BlogPosts:        buildBlogPost,
	collection.NewsArticles:     buildNewsArticle,
	collection.PracticeListings: buildPracticeListing,
}

func buildFirmDeal(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	// Deal value loosely tracks the firm's AUM at roughly 2% of assets.
	aumMillions := 20 + rng.Intn(480)
	value := float64(aumMillions) * 1e6 * (0.015 + rng.Float64()*0.015)
	return collection.Record{
		"firmName":    pick(rng, firmAdjectives) + " " + pick(rng, firmNouns),
		"advisorName": pick(rng, firstNames) + " " + pick(rng, lastNames),
		"dealType":    pick(rng, dealTypes),
		"stage":       pick(rng, dealStages),
		"location":    pick(rng, cityStates),
		"value":       fmt.Sprintf("$%.1fM", value/1e6),
		"createdAt":   pastDate(rng, anchor, 180),
	}
}

func buildFirmParameters(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	return collection.Record{
		"firmName":    pick(rng, firmAdjectives) + " " + pick(rng, firmNouns),
		"payoutRate":  fmt.Sprintf("%d%%", 55+rng.Intn(36)),
		"platformFee": fmt.Sprintf("%d bps", 5+rng.Intn(21)),
		"minimumAUM":  fmt.Sprintf("$%dM", 5*(1+rng.Intn(10))),
		"custodian":   pick(rng, custodians),
		"updatedAt":   pastDate(rng, anchor, 90),
	}
}

func buildFirmProfile(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	return collection.Record{
		"firmName":     pick(rng, firmAdjectives) + " " + pick(rng, firmNouns),
		"headquarters": pick(rng, cityStates),
		"aum":          fmt.Sprintf("$%dM", 25+rng.Intn(475)),
		"advisors":     2 + rng.Intn(40),
		"founded":      1985 + rng.Intn(38),
		"custodian":    pick(rng, custodians),
		"status":       pick(rng, profileStatuses),
		"updatedAt":    pastDate(rng, anchor, 120),
	}
}

func buildAdminUser(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	return collection.Record{
		"name":        first + " " + last,
		"email":       fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
		"role":        pick(rng, userRoles),
		"firmName":    pick(rng, firmAdjectives) + " " + pick(rng, firmNouns),
		"status":      pick(rng, userStatuses),
		"lastLoginAt": pastDate(rng, anchor, 30),
	}
}

func buildBlogPost(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	category := pick(rng, blogCategories)
	return collection.Record{
		"title":       fmt.Sprintf("%s Insights, Part %d", category, n+1),
		"author":      pick(rng, firstNames) + " " + pick(rng, lastNames),
		"category":    category,
		"status":      pick(rng, contentStatuses),
		"publishedAt": pastDate(rng, anchor, 365),
	}
}

func buildNewsArticle(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	topic := pick(rng, newsTopics)
	return collection.Record{
		"headline":    fmt.Sprintf("%s roundup: what advisors should watch", topic),
		"sourceName":  pick(rng, newsSources),
		"topic":       topic,
		"status":      pick(rng, contentStatuses),
		"publishedAt": pastDate(rng, anchor, 60),
	}
}

func buildPracticeListing(rng *rand.Rand, anchor time.Time, n int) collection.Record {
	// Revenue runs around 1% of AUM; asking price is a revenue multiple.
	aumMillions := 15 + rng.Intn(385)
	revenue := float64(aumMillions) * 1e6 * (0.008 + rng.Float64()*0.004)
	price := revenue * (2.2 + rng.Float64()*0.9)
	return collection.Record{
		"practiceName": pick(rng, firmAdjectives) + " " + pick(rng, firmNouns),
		"location":     pick(rng, cityStates),
		"aum":          fmt.Sprintf("$%dM", aumMillions),
		"revenue":      fmt.Sprintf("$%.2fM", revenue/1e6),
		"price":        fmt.Sprintf("$%.2fM", price/1e6),
		"clients":      40 + rng.Intn(360),
		"status":       pick(rng, listingStatuses),
		"listedAt":     pastDate(rng, anchor, 240),
	}
}

// pick returns a random element of the list.
func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

// pastDate returns an RFC3339 date up to maxDays before the anchor.
func pastDate(rng *rand.Rand, anchor time.Time, maxDays int) string {
	days := rng.Intn(maxDays)
	hours := rng.Intn(24)
	return anchor.AddDate(0, 0, -days).Add(-time.Duration(hours) * time.Hour).Format(time.RFC3339)
}
