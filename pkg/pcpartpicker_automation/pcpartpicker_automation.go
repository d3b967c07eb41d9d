// Package pcpartpicker_automation drives a headless browser to build PCPartPicker part lists.
package pcpartpicker_automation

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/playwright-community/playwright-go"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
)

var (
	ErrInvalidRegion = errors.New("invalid region")
	ErrNoSourceParts = errors.New("no selected component has a PCPartPicker source URL")
)

// SourceLinks returns the PCPartPicker product URLs of the selected components in wizard order.
func SourceLinks(sel models.BuildSelection) []string {
	var links []string
	for _, c := range models.Categories {
		if comp := sel.Get(c); comp != nil && utils.MatchProductURL(comp.SourceURL()) {
			links = append(links, comp.SourceURL())
		}
	}
	return links
}

// ExportSelection adds every imported component of sel to a new part list and returns its share URL.
func ExportSelection(region string, sel models.BuildSelection) (*models.SearchPart, error) {
	links := SourceLinks(sel)
	if len(links) == 0 {
		return nil, ErrNoSourceParts
	}
	return ProcessPartLinks(region, links)
}

// ProcessPartLinks adds each product in partLinks to a fresh part list and reads back the list URL.
func ProcessPartLinks(region string, partLinks []string) (*models.SearchPart, error) {
	prefixURL := utils.BuildPrefixURL(region)
	if !utils.MatchPCPPURL(prefixURL) {
		return nil, ErrInvalidRegion
	}
	pw, browser, page, err := initializePlaywright()
	if err != nil {
		return nil, err
	}
	defer cleanup(pw, browser)

	if err := navigateTo(page, prefixURL); err != nil {
		return nil, err
	}
	if err := page.GetByLabel("allow cookies").Click(); err != nil {
		log.Warnf("Error handling cookies, continuing: %v", err)
	}

	for _, link := range partLinks {
		if err := addPart(prefixURL, page, link); err != nil {
			return nil, fmt.Errorf("error adding part from link %s: %w", link, err)
		}
	}
	return readListURL(page)
}

func initializePlaywright() (*playwright.Playwright, playwright.Browser, playwright.Page, error) {
	log.Info("Initializing Playwright")
	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start Playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch()
	if err != nil {
		_ = pw.Stop()
		return nil, nil, nil, fmt.Errorf("could not launch browser: %w", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		cleanup(pw, browser)
		return nil, nil, nil, fmt.Errorf("could not create page: %w", err)
	}
	return pw, browser, page, nil
}

func navigateTo(page playwright.Page, url string) error {
	if _, err := page.Goto(url); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

func addPart(prefixURL string, page playwright.Page, url string) error {
	if err := navigateTo(page, url); err != nil {
		return err
	}
	options := playwright.PageGetByRoleOptions{Name: "Add to Part List"}
	if err := page.GetByRole("link", options).Click(); err != nil {
		return fmt.Errorf("could not click 'Add to Part List': %w", err)
	}
	if err := page.WaitForURL(prefixURL + "list/"); err != nil {
		return fmt.Errorf("error waiting for redirection to the list: %w", err)
	}
	log.Info("Added to Part List: ", url)
	return nil
}

func readListURL(page playwright.Page) (*models.SearchPart, error) {
	textbox := page.GetByRole("textbox")
	if err := textbox.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible}); err != nil {
		return nil, fmt.Errorf("could not wait for the list URL textbox: %w", err)
	}
	value, err := textbox.InputValue()
	if err != nil {
		return nil, err
	}
	return &models.SearchPart{URL: value}, nil
}

func cleanup(pw *playwright.Playwright, browser playwright.Browser) {
	log.Info("Cleaning up Playwright")
	if err := browser.Close(); err != nil {
		log.Errorf("Could not close browser: %v", err)
	}
	if err := pw.Stop(); err != nil {
		log.Errorf("Could not stop Playwright: %v", err)
	}
}
