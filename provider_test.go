package currency_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-swap"
)

func TestConvertToProviderFromString(t *testing.T) {
	assert := require.New(t)
	values := []struct {
		value    string
		expected interface{}
		err      error
	}{
		{"http", currency.HTTPProvider, nil},
		{"HTTPS", currency.HTTPProvider, nil},
		{"MySQL", currency.MySQLProvider, nil},
		{"mongo", currency.MongoDBProvider, nil},
		{"", currency.EmptyProvider, errors.New("value  is not valid Provider")},
		{"not-valid-value", currency.EmptyProvider, errors.New("value not-valid-value is not valid Provider")},
	}

	for _, value := range values {
		provider, err := currency.ConvertToProviderFromString(value.value)
		assert.Equal(value.expected, provider)
		assert.Equal(value.err, err)
	}
}

func TestProvider_UnmarshalText(t *testing.T) {
	assert := require.New(t)

	var p currency.Provider
	assert.NoError(p.UnmarshalText([]byte("mongodb")))
	assert.Equal(currency.MongoDBProvider, p)

	assert.NoError(p.UnmarshalText([]byte(" HTTPS ")))
	assert.Equal(currency.HTTPProvider, p)

	assert.EqualError(p.UnmarshalText([]byte("redis")), "value redis is not valid Provider")
	assert.Equal(currency.HTTPProvider, p)
}
