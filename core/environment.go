package core

import (
	"fmt"
	"strings"
)

// Environment selects the Quarters deployment a client talks to.
type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
	Sandbox     Environment = "sandbox"
)

const (
	apiVersion  = "v1"
	longDomain  = "pocketfulofquarters.com"
	shortDomain = "poq.gg"
)

type environmentURLs struct {
	prefix   string
	apiURL   string
	longURL  string
	shortURL string
}

var environmentRegistry = map[Environment]environmentURLs{
	Production: {
		prefix:   "",
		apiURL:   "https://api." + longDomain + "/" + apiVersion + "/",
		longURL:  "https://www." + longDomain,
		shortURL: "https://www." + shortDomain,
	},
	Development: {
		prefix:   "dev",
		apiURL:   "https://api.dev." + longDomain + "/" + apiVersion + "/",
		longURL:  "https://dev." + longDomain,
		shortURL: "https://www.dev." + shortDomain,
	},
	Sandbox: {
		prefix:   "sandbox",
		apiURL:   "https://api.sandbox." + longDomain + "/" + apiVersion + "/",
		longURL:  "https://sandbox." + longDomain,
		shortURL: "https://sandbox." + shortDomain,
	},
}

// Environments lists every supported environment in a fixed order.
func Environments() []Environment {
	return []Environment{Production, Development, Sandbox}
}

// ParseEnvironment accepts the canonical names and the prod/dev aliases.
func ParseEnvironment(value string) (Environment, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "prod", string(Production):
		return Production, nil
	case "dev", string(Development):
		return Development, nil
	case string(Sandbox):
		return Sandbox, nil
	default:
		return "", fmt.Errorf("core: unknown environment %q", value)
	}
}

func (e Environment) Validate() error {
	if _, ok := environmentRegistry[e]; !ok {
		return fmt.Errorf("core: environment %q is invalid", string(e))
	}
	return nil
}

// Prefix is the subdomain inserted for non-production hosts, empty for production.
func (e Environment) Prefix() string {
	return environmentRegistry[e].prefix
}

// APIBaseURL returns the versioned API root, always ending in "/v1/".
func (e Environment) APIBaseURL() string {
	return environmentRegistry[e].apiURL
}

// WebBaseURL returns the user-facing site root without a trailing slash.
func (e Environment) WebBaseURL(short bool) string {
	urls := environmentRegistry[e]
	if short {
		return urls.shortURL
	}
	return urls.longURL
}

func (e Environment) String() string {
	return string(e)
}
