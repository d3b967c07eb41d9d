package utils

import (
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/gocolly/colly/v2"
)

var (
	pcppURLMatcher          = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com(/.*)?$`, 0)
	productURLMatcher       = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/product/[a-zA-Z0-9]{4,8}/[\S]*`, 0)
	partListURLMatcher      = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/((list/[a-zA-Z0-9]{4,8})|((user/\w*/saved/(#view=)?[a-zA-Z0-9]{4,8})))`, 0)
	vendorNameMatcher       = regexp2.MustCompile(`(?<=pcpartpicker\.com/mr/).*(?=\/)`, 0)
	pcppUserSavedURLMatcher = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/user/[a-zA-Z0-9]*/saved/#view=[a-zA-Z0-9]{4,8}`, 0)
	scriptImageCheck        = regexp2.MustCompile(`(?<=src:\s").*(?=")`, 0)
)

func matches(re *regexp2.Regexp, s string) bool {
	ok, _ := re.MatchString(s)
	return ok
}

// ExtractVendorName pulls the merchant slug out of a PCPartPicker "/mr/<vendor>/" redirect link.
func ExtractVendorName(URL string) string {
	if URL == "" {
		return ""
	}
	m, err := vendorNameMatcher.FindStringMatch(URL)
	if err != nil || m == nil {
		return ""
	}
	return m.String()
}

// ConvertListURL rewrites a saved-list URL ("#view=abcd") into a directly fetchable one.
func ConvertListURL(URL string) string {
	if !matches(pcppUserSavedURLMatcher, URL) {
		return URL
	}
	return strings.Replace(URL, "#view=", "", 1)
}

func MatchPCPPURL(URL string) bool {
	return matches(pcppURLMatcher, URL)
}

func MatchProductURL(URL string) bool {
	return matches(productURLMatcher, URL)
}

func MatchPartListURL(URL string) bool {
	return matches(partListURLMatcher, URL)
}

// FindScriptImages appends gallery image sources declared inside an inline script.
func FindScriptImages(script *colly.HTMLElement, images []string) []string {
	for _, match := range Regexp2SearchAllText(scriptImageCheck, script.Text) {
		if strings.HasPrefix(match, "//") {
			match = "https:" + match
		}
		images = append(images, match)
	}
	return images
}

func Regexp2SearchAllText(re *regexp2.Regexp, s string) []string {
	var matches []string
	m, _ := re.FindStringMatch(s)
	for m != nil {
		matches = append(matches, m.String())
		m, _ = re.FindNextMatch(m)
	}
	return matches
}

// BuildPrefixURL returns the regional PCPartPicker root, e.g. "https://uk.pcpartpicker.com/".
// An empty region and "us" both map to the main site.
func BuildPrefixURL(region string) string {
	region = strings.ToLower(strings.TrimSpace(region))
	if region != "" && region != "us" {
		region += "."
	} else {
		region = ""
	}
	return "https://" + region + "pcpartpicker.com/"
}

// BuildSearchURL returns the regional search page for term.
func BuildSearchURL(term, region string) string {
	return BuildPrefixURL(region) + "search?q=" + url.QueryEscape(term)
}
