package utils

import (
	"fmt"
	"log"
	"medmacs/config"
	"time"

	"github.com/go-resty/resty/v2"
)

type checkoutResponse struct {
	Url string `json:"url"`
}

// CreateCheckoutSession asks the hosted payment provider for a checkout page
// URL. The browser is redirected there; success/failure webhooks are handled
// by the provider, not by this service.
func CreateCheckoutSession(planName string, duration int, currency string, userID uint, userEmail string) (string, error) {
	client := resty.New().SetTimeout(30 * time.Second)

	var result checkoutResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.CheckoutApiKey).
		SetBody(map[string]interface{}{
			"planName":  planName,
			"duration":  duration,
			"currency":  currency,
			"userId":    userID,
			"userEmail": userEmail,
		}).
		SetResult(&result).
		Post(config.AppConfig.CheckoutApiUrl)
	if err != nil {
		log.Printf("Checkout request failed: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Checkout returned %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("payment service returned status %d", resp.StatusCode())
	}
	if result.Url == "" {
		return "", fmt.Errorf("payment service returned no checkout url")
	}

	return result.Url, nil
}
