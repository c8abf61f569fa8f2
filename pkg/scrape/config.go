// Package scrape discovers legislation XML documents by paginating a
// legislation.gov.uk listing page and collecting data.xml URLs for each
// statutory instrument found.
package scrape

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LegislationBaseURL is the root of legislation.gov.uk, used to absolutize
// relative listing links.
const LegislationBaseURL = "https://www.legislation.gov.uk"

// DefaultListingURL is the listing scraped when no base URL is configured:
// UK statutory instruments under the employment-law theme.
const DefaultListingURL = LegislationBaseURL + "/uksi?theme=employment-law"

// DefaultUserAgent is sent with listing-page requests.
const DefaultUserAgent = "legchunk-scraper/1.0"

// Config holds scraper settings.
type Config struct {
	// BaseURL is the first listing page to fetch.
	BaseURL string

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// OutputPath is where the collected URL list is written.
	OutputPath string

	// MinDelay and MaxDelay bound the randomized pause between page
	// fetches, keeping the crawl polite.
	MinDelay time.Duration
	MaxDelay time.Duration

	// MaxPages caps pagination; 0 means no cap.
	MaxPages int
}

// DefaultConfig returns scraper settings matching the employment-law corpus
// crawl: one to three seconds between pages, no page cap.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultListingURL,
		UserAgent:  DefaultUserAgent,
		OutputPath: "legislation_xml_urls.txt",
		MinDelay:   1 * time.Second,
		MaxDelay:   3 * time.Second,
	}
}

// configFile is the YAML shape of a scraper configuration file. Delays are
// Go duration strings ("1s", "1500ms").
type configFile struct {
	BaseURL    string `yaml:"base_url,omitempty"`
	UserAgent  string `yaml:"user_agent,omitempty"`
	OutputPath string `yaml:"output_path,omitempty"`
	MinDelay   string `yaml:"min_delay,omitempty"`
	MaxDelay   string `yaml:"max_delay,omitempty"`
	MaxPages   int    `yaml:"max_pages,omitempty"`
}

// LoadConfig reads a YAML configuration file, applying defaults for any
// fields left unset.
func LoadConfig(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read scraper config %s: %w", configPath, err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse scraper config %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if file.BaseURL != "" {
		config.BaseURL = file.BaseURL
	}
	if file.UserAgent != "" {
		config.UserAgent = file.UserAgent
	}
	if file.OutputPath != "" {
		config.OutputPath = file.OutputPath
	}
	if file.MaxPages > 0 {
		config.MaxPages = file.MaxPages
	}
	if file.MinDelay != "" {
		minDelay, err := time.ParseDuration(file.MinDelay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid min_delay %q: %w", file.MinDelay, err)
		}
		config.MinDelay = minDelay
	}
	if file.MaxDelay != "" {
		maxDelay, err := time.ParseDuration(file.MaxDelay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid max_delay %q: %w", file.MaxDelay, err)
		}
		config.MaxDelay = maxDelay
	}

	if config.MaxDelay < config.MinDelay {
		return Config{}, fmt.Errorf("max_delay %s is shorter than min_delay %s", config.MaxDelay, config.MinDelay)
	}

	return config, nil
}
