package currency

import (
	"fmt"
	"strings"
)

// Provider names the source a price feed is read from.
type Provider string

const (
	HTTPProvider    Provider = "http"
	MySQLProvider   Provider = "mysql"
	MongoDBProvider Provider = "mongodb"
	EmptyProvider   Provider = ""
)

// ConvertToProviderFromString accepts the names used in config files and
// environment variables, ignoring case and surrounding space.
func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "http", "https":
		return HTTPProvider, nil
	case "mysql":
		return MySQLProvider, nil
	case "mongodb", "mongo":
		return MongoDBProvider, nil
	}

	return EmptyProvider, fmt.Errorf("value %s is not valid Provider", str)
}

// UnmarshalText decodes the configured feed source. p is left unchanged on
// error.
func (p *Provider) UnmarshalText(text []byte) error {
	provider, err := ConvertToProviderFromString(string(text))
	if err != nil {
		return err
	}

	*p = provider

	return nil
}

func (p Provider) String() string {
	return string(p)
}
