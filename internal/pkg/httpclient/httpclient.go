package httpclient

import (
	"net/http"
	"time"

	"hotel-booking-service/config"

	circuit "github.com/rubyist/circuitbreaker"
)

func InitCircuitBreaker(cfg *config.HttpClientConfig, breakerType string) *circuit.Breaker {
	switch breakerType {
	case "threshold":
		return circuit.NewThresholdBreaker(cfg.Threshold)
	default:
		return circuit.NewConsecutiveBreaker(cfg.Threshold)
	}
}

func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	transport := &http.Transport{
		MaxIdleConns: cfg.MaxIdleConnections,
	}
	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return circuit.NewHTTPClientWithBreaker(cb, timeout, client)
}
