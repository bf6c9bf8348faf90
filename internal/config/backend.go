package config

import "time"

// Backend describes the remote marketplace API every outbound call goes to.
type Backend struct {
	BaseAddress    string        `env:"BACKEND_BASE_ADDRESS" envDefault:"http://localhost:8000/api"`
	Timeout        time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	BearerToken    string        `env:"BACKEND_BEARER_TOKEN" json:"-"`
	CurrencyPrefix string        `env:"BACKEND_CURRENCY_PREFIX" envDefault:"Rp"`
}
