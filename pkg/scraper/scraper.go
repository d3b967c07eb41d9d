package scraper

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"github.com/gofiber/fiber/v2/log"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
)

var (
	partListClassMappings = map[string]string{
		"Base":     ".td__base",
		"Promo":    ".td__promo",
		"Shipping": ".td__shipping",
		"Tax":      ".td__tax",
		"Price":    ".td__price",
	}

	partClassMappings = map[string]string{
		"Base":     ".td__base",
		"Promo":    ".td__promo",
		"Shipping": ".td__shipping",
		"Tax":      ".td__tax",
		"Total":    ".td__finalPrice",
	}

	ErrInvalidRegion  = errors.New("invalid region")
	ErrInvalidPartURL = errors.New("invalid part URL")
	ErrInvalidListURL = errors.New("invalid PCPartPicker URL")
)

// Scraper reads PCPartPicker pages. Every call works on a fresh clone of Collector so callbacks registered for
// one page never fire for another.
type Scraper struct {
	Collector *colly.Collector

	mu       sync.RWMutex
	headers  map[string]map[string]string
	randomUA bool
}

// RedirectError is returned by SearchPCParts when PCPartPicker answers a search with a single product page.
type RedirectError struct {
	URL string
}

func (r RedirectError) Error() string {
	return r.URL
}

func linkURL(parts ...string) string {
	last := parts[len(parts)-1]
	if last == "" {
		return ""
	} else if strings.HasPrefix(last, "http") {
		return last
	}
	return strings.Join(parts, "")
}

// NewScraper creates a scraper whose collector revisits URLs and runs asynchronously.
func NewScraper() *Scraper {
	col := colly.NewCollector()
	col.Async = true
	col.AllowURLRevisit = true

	return &Scraper{
		Collector: col,
		headers: map[string]map[string]string{
			"global": {},
		},
	}
}

// UpdateHeaders sets request headers for site. Headers for "global" apply to every host.
func (scrap *Scraper) UpdateHeaders(site string, newHeaders map[string]string) {
	scrap.mu.Lock()
	defer scrap.mu.Unlock()

	h := make(map[string]string, len(newHeaders))
	for k, v := range newHeaders {
		h[k] = v
	}
	scrap.headers[site] = h
}

// RandomizeUserAgent makes every request use a random browser User-Agent.
func (scrap *Scraper) RandomizeUserAgent() {
	scrap.mu.Lock()
	scrap.randomUA = true
	scrap.mu.Unlock()
}

func (scrap *Scraper) requestHeaders(host string) map[string]string {
	scrap.mu.RLock()
	defer scrap.mu.RUnlock()

	headers := map[string]string{}
	for k, v := range scrap.headers["global"] {
		headers[k] = v
	}
	for k, v := range scrap.headers[host] {
		headers[k] = v
	}
	return headers
}

func (scrap *Scraper) newCollector() *colly.Collector {
	col := scrap.Collector.Clone()

	scrap.mu.RLock()
	randomUA := scrap.randomUA
	scrap.mu.RUnlock()

	if randomUA {
		extensions.RandomUserAgent(col)
	}
	col.OnRequest(func(r *colly.Request) {
		for k, v := range scrap.requestHeaders(r.URL.Hostname()) {
			if len(k) > 0 && len(v) > 0 {
				r.Headers.Set(k, v)
			}
		}
		log.Debug("User-Agent:", r.Headers.Get("User-Agent"))
	})
	return col
}

func visit(col *colly.Collector, URL string) error {
	err := col.Visit(URL)
	col.Wait()
	return err
}

// GetPartList retrieves a part list from the given PCPartPicker URL.
func (scrap *Scraper) GetPartList(URL string) (*models.PartList, error) {
	if !utils.MatchPartListURL(URL) {
		return nil, ErrInvalidListURL
	}
	URL = utils.ConvertListURL(URL)

	col := scrap.newCollector()
	var partList models.PartList

	col.OnHTML(".partlist__wrapper", func(elem *colly.HTMLElement) {
		parts := []models.ListPart{}

		elem.ForEach(".tr__product", func(i int, prod *colly.HTMLElement) {
			prodVendor := models.Vendor{}

			for k, v := range partListClassMappings {
				toParse := prod.ChildText(v)

				if strings.HasSuffix(toParse, "No Prices Available") || toParse == "FREE" {
					continue
				}
				stringPrice := strings.Replace(toParse, k, "", 1)
				price, curr, _ := models.ParsePrice(stringPrice)

				switch k {
				case "Base":
					prodVendor.Price.Base = price
				case "Promo":
					prodVendor.Price.Discounts = price
				case "Shipping":
					prodVendor.Price.Shipping = price
				case "Tax":
					prodVendor.Price.Tax = price
				case "Price":
					prodVendor.Price.TotalString = strings.TrimSpace(stringPrice)
					prodVendor.Price.Total = price
					prodVendor.Price.Currency = curr
					prodVendor.InStock = price > 0
				}
			}

			if prodVendor.InStock {
				prodVendor.URL = linkURL("https://", elem.Request.URL.Host, prod.ChildAttr(".td__where a", "href"))
				prodVendor.Image = linkURL("https:", prod.ChildAttr(".td__where a img", "src"))
				prodVendor.Name = utils.ExtractVendorName(prodVendor.URL)
			}

			parts = append(parts, models.ListPart{
				Type:   prod.ChildText(".td__component"),
				Name:   prod.ChildText(".td__name"),
				Image:  linkURL("https:", prod.ChildAttr(".td__image a img", "src")),
				URL:    linkURL("https://", elem.Request.URL.Host, prod.ChildAttr(".td__name a", "href")),
				Vendor: prodVendor,
			})
		})

		listPrice := models.Price{}

		elem.ForEach(".tr__total", func(i int, node *colly.HTMLElement) {
			stringPrice := node.ChildText(".td__price")
			val, curr, _ := models.ParsePrice(stringPrice)

			switch node.ChildText(".td__label") {
			case "Base Total:":
				listPrice.Base = val
			case "Tax:":
				listPrice.Tax = val
			case "Promo Discounts:":
				listPrice.Discounts = val
			case "Shipping:":
				listPrice.Shipping = val
			case "Total:":
				listPrice.Total = val
				listPrice.TotalString = stringPrice
				listPrice.Currency = curr
			}
		})

		compNotes := []models.CompatibilityInfo{}

		elem.ForEach("#compatibility_notes .info-message", func(i int, note *colly.HTMLElement) {
			mode := note.ChildText("span")
			compNotes = append(compNotes, models.CompatibilityInfo{
				Message: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(note.Text), mode)),
				Level:   strings.TrimRight(mode, ":"),
			})
		})

		partList = models.PartList{
			URL:           elem.Request.URL.String(),
			Parts:         parts,
			Price:         listPrice,
			Wattage:       strings.TrimSpace(strings.TrimPrefix(elem.ChildText(".partlist__keyMetric"), "Estimated Wattage:")),
			Compatibility: compNotes,
		}
	})

	if err := visit(col, URL); err != nil {
		return nil, err
	}
	return &partList, nil
}

// SearchPCParts runs a PCPartPicker search in region. A search that lands on a product page returns a
// *RedirectError carrying the product URL.
func (scrap *Scraper) SearchPCParts(searchTerm string, region string) ([]models.SearchPart, error) {
	fullURL := utils.BuildSearchURL(searchTerm, region)
	if !utils.MatchPCPPURL(fullURL) {
		return nil, ErrInvalidRegion
	}

	col := scrap.newCollector()
	searchResults := []models.SearchPart{}
	var reqURL string

	col.OnHTML(".pageTitle", func(h *colly.HTMLElement) {
		reqURL = h.Request.URL.String()
	})

	col.OnHTML(".search-results__pageContent .block", func(elem *colly.HTMLElement) {
		elem.ForEach(".list-unstyled li", func(i int, searchResult *colly.HTMLElement) {
			searchResultURL := linkURL("https://", elem.Request.URL.Host, searchResult.ChildAttr(".search_results--price a", "href"))
			extractedPrice := searchResult.ChildText(".search_results--price a")
			price, curr, _ := models.ParsePrice(extractedPrice)

			extractedVendorName := ""
			if extractedPrice != "" {
				extractedVendorName = utils.ExtractVendorName(searchResultURL)
			}

			searchResults = append(searchResults, models.SearchPart{
				Name:  searchResult.ChildText(".search_results--link a"),
				Image: linkURL("https:", searchResult.ChildAttr(".search_results--img a img", "src")),
				URL:   linkURL("https://", elem.Request.URL.Host, searchResult.ChildAttr(".search_results--link a", "href")),
				Vendor: models.Vendor{
					URL:  searchResultURL,
					Name: extractedVendorName,
					Price: models.Price{
						Total:       price,
						TotalString: extractedPrice,
						Currency:    curr,
					},
					InStock: len(extractedPrice) > 0,
				},
			})
		})
	})

	if err := visit(col, fullURL); err != nil {
		return nil, err
	}

	if utils.MatchProductURL(reqURL) {
		return nil, &RedirectError{URL: reqURL}
	}
	return searchResults, nil
}

// GetPart scrapes a single product page.
func (scrap *Scraper) GetPart(URL string) (*models.Part, error) {
	if !utils.MatchProductURL(URL) {
		return nil, ErrInvalidPartURL
	}

	col := scrap.newCollector()
	var (
		images   []string
		scripted []string
		rating   models.RatingStats
		name     string
		partType string
		vendors  []models.Vendor
		specs    []models.PartSpec
	)

	col.OnHTML(".single_image_gallery_box", func(image *colly.HTMLElement) {
		images = append(images, linkURL("https:", image.ChildAttr("a img", "src")))
	})

	col.OnHTML("script", func(script *colly.HTMLElement) {
		scripted = utils.FindScriptImages(script, scripted)
	})

	col.OnHTML(".breadcrumb", func(crumbs *colly.HTMLElement) {
		if partType == "" {
			partType = crumbs.ChildText("li:last-child")
		}
	})

	col.OnHTML(".wrapper__pageTitle section.xs-col-11", func(ratingContainer *colly.HTMLElement) {
		var stars uint
		ratingContainer.ForEach(".product--rating li", func(i int, _ *colly.HTMLElement) {
			stars++
		})

		rating.Stars = stars
		name = ratingContainer.ChildText(".pageTitle")

		splitParts := strings.Split(strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(ratingContainer.Text, name, ""), ratingContainer.ChildText(".breadcrumb"), "")), ",")
		if len(splitParts) < 2 {
			return
		}

		countParse, _ := strconv.Atoi(strings.Trim(strings.ReplaceAll(splitParts[0], "Ratings", ""), "( "))
		rating.Count = uint(countParse)

		averageParse, _ := strconv.ParseFloat(strings.Trim(strings.ReplaceAll(splitParts[1], "Average", ""), ") "), 64)
		rating.Average = averageParse
	})

	col.OnHTML("#prices table tbody tr", func(vendor *colly.HTMLElement) {
		if vendor.Attr("class") != "" {
			return
		}

		price := models.Price{}
		for k, v := range partClassMappings {
			stringPrice := vendor.ChildText(v)
			val, curr, _ := models.ParsePrice(stringPrice)

			switch k {
			case "Base":
				price.Base = val
			case "Shipping":
				price.Shipping = val
			case "Tax":
				price.Tax = val
			case "Promo":
				price.Discounts = val
			case "Total":
				price.Total = val
				price.Currency = curr
				price.TotalString = stringPrice
			}
		}

		vendors = append(vendors, models.Vendor{
			Name:    vendor.ChildAttr(".td__logo a img", "alt"),
			Image:   linkURL("https:", vendor.ChildAttr(".td__logo a img", "src")),
			InStock: vendor.ChildText(".td__availability") == "In stock",
			URL:     linkURL("https://", vendor.Request.URL.Host, vendor.ChildAttr(".td__finalPrice a", "href")),
			Price:   price,
		})
	})

	col.OnHTML(".specs", func(specsContainer *colly.HTMLElement) {
		if len(specs) > 0 {
			return
		}
		specsContainer.ForEach(".group", func(i int, spec *colly.HTMLElement) {
			var values []string
			spec.ForEach(".group__content li", func(i int, specValue *colly.HTMLElement) {
				values = append(values, strings.TrimSpace(specValue.Text))
			})
			if len(values) == 0 {
				values = []string{spec.ChildText(".group__content")}
			}

			specs = append(specs, models.PartSpec{
				Name:   spec.ChildText(".group__title"),
				Values: values,
			})
		})
	})

	if err := visit(col, URL); err != nil {
		return nil, err
	}

	if len(images) == 0 {
		images = scripted
	}
	return &models.Part{
		Type:    partType,
		Name:    name,
		URL:     URL,
		Rating:  rating,
		Specs:   specs,
		Vendors: vendors,
		Images:  images,
	}, nil
}
