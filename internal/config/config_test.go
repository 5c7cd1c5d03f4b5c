package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		runAddress     string
		sessionSecret  string
		gatewayAddress string
		paymentDelay   time.Duration
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				runAddress:   "localhost:8080",
				paymentDelay: 2 * time.Second,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS":             "localhost:9999",
				"SESSION_SECRET":          "env-secret",
				"PAYMENT_GATEWAY_ADDRESS": "localhost:8081",
				"PAYMENT_DELAY":           "500ms",
			},
			flags: []string{},
			want: want{
				runAddress:     "localhost:9999",
				sessionSecret:  "env-secret",
				gatewayAddress: "localhost:8081",
				paymentDelay:   500 * time.Millisecond,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-s", "flag-secret",
				"-g", "gateway:8080",
				"-p", "1s",
			},
			want: want{
				runAddress:     "localhost:7777",
				sessionSecret:  "flag-secret",
				gatewayAddress: "gateway:8080",
				paymentDelay:   time.Second,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS":             "env:9000",
				"SESSION_SECRET":          "env-secret",
				"PAYMENT_GATEWAY_ADDRESS": "env-gateway:8081",
				"PAYMENT_DELAY":           "3s",
			},
			flags: []string{
				"-a", "flag:8000",
				"-s", "flag-secret",
				"-g", "flag-gateway:8080",
				"-p", "1s",
			},
			want: want{
				runAddress:     "env:9000",
				sessionSecret:  "env-secret",
				gatewayAddress: "env-gateway:8081",
				paymentDelay:   3 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.sessionSecret, cfg.SessionSecret)
			assert.Equal(t, tt.want.gatewayAddress, cfg.PaymentGatewayAddress)
			assert.Equal(t, tt.want.paymentDelay, cfg.PaymentDelay)
		})
	}
}
