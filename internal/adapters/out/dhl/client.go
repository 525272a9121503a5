// Package dhl provides the HTTP client for the DHL label and rating API.
// The client is optional at runtime: without an API key it reports itself
// unconfigured and callers fail fast before mutating anything.
package dhl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// Client implements CarrierLabelService against the DHL REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a DHL client. An empty API key yields a client that
// reports itself unconfigured.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// IsConfigured reports whether carrier credentials are present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type labelRequest struct {
	Reference    string         `json:"reference"`
	ServiceLevel string         `json:"serviceLevel"`
	WeightKg     float64        `json:"weightKg"`
	LengthCm     float64        `json:"lengthCm"`
	WidthCm      float64        `json:"widthCm"`
	HeightCm     float64        `json:"heightCm"`
	Receiver     labelReceiver  `json:"receiver"`
	Customs      customsSection `json:"customs"`
}

type labelReceiver struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type customsSection struct {
	ContentsType  string  `json:"contentsType"`
	Description   string  `json:"description"`
	DeclaredValue float64 `json:"declaredValue"`
	Currency      string  `json:"currency"`
}

type labelResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	LabelURL       string `json:"labelUrl"`
	TrackingURL    string `json:"trackingUrl"`
}

// CreateLabel purchases a shipping label for the shipment.
func (c *Client) CreateLabel(ctx context.Context, aggregate *shipment.Shipment) (ports.Label, error) {
	if !c.IsConfigured() {
		return ports.Label{}, errs.NewExternalServiceError("dhl")
	}
	if err := aggregate.Validate(); err != nil {
		return ports.Label{}, err
	}

	destination := aggregate.Destination()
	payload := labelRequest{
		Reference:    aggregate.TrackingNumber(),
		ServiceLevel: aggregate.ServiceLevel(),
		WeightKg:     aggregate.Weight().Kilograms(),
		LengthCm:     aggregate.Dimensions().LengthCm(),
		WidthCm:      aggregate.Dimensions().WidthCm(),
		HeightCm:     aggregate.Dimensions().HeightCm(),
		Receiver: labelReceiver{
			Name:       destination.Name(),
			Street:     destination.Street(),
			City:       destination.City(),
			State:      destination.State(),
			PostalCode: destination.PostalCode(),
			Country:    destination.Country(),
		},
		Customs: customsSection{
			ContentsType:  aggregate.Customs().ContentsType,
			Description:   aggregate.Customs().Description,
			DeclaredValue: aggregate.Customs().DeclaredValue.Amount(),
			Currency:      aggregate.Customs().DeclaredValue.Currency(),
		},
	}

	var resp labelResponse
	if err := c.post(ctx, "/labels", payload, &resp); err != nil {
		return ports.Label{}, err
	}

	if resp.TrackingNumber == "" {
		return ports.Label{}, errs.NewExternalServiceErrorWithCause("dhl",
			fmt.Errorf("label response has no tracking number"))
	}

	return ports.Label{
		TrackingNumber: resp.TrackingNumber,
		LabelURL:       resp.LabelURL,
		TrackingURL:    resp.TrackingURL,
	}, nil
}

type rateRequest struct {
	WeightKg           float64 `json:"weightKg"`
	LengthCm           float64 `json:"lengthCm"`
	WidthCm            float64 `json:"widthCm"`
	HeightCm           float64 `json:"heightCm"`
	DestinationCountry string  `json:"destinationCountry"`
}

type rateResponse struct {
	Rates []struct {
		ServiceLevel string  `json:"serviceLevel"`
		Amount       float64 `json:"amount"`
		Currency     string  `json:"currency"`
		ETADays      int     `json:"etaDays"`
	} `json:"rates"`
}

// GetRates quotes the available DHL services for a prospective shipment.
func (c *Client) GetRates(ctx context.Context, req ports.RateRequest) ([]ports.Rate, error) {
	if !c.IsConfigured() {
		return nil, errs.NewExternalServiceError("dhl")
	}

	payload := rateRequest{
		WeightKg:           req.WeightKg,
		LengthCm:           req.LengthCm,
		WidthCm:            req.WidthCm,
		HeightCm:           req.HeightCm,
		DestinationCountry: req.DestinationCountry,
	}

	var resp rateResponse
	if err := c.post(ctx, "/rates", payload, &resp); err != nil {
		return nil, err
	}

	rates := make([]ports.Rate, 0, len(resp.Rates))
	for _, quote := range resp.Rates {
		rates = append(rates, ports.Rate{
			Carrier:      "dhl",
			ServiceLevel: quote.ServiceLevel,
			Amount:       quote.Amount,
			Currency:     quote.Currency,
			ETADays:      quote.ETADays,
		})
	}

	return rates, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.NewExternalServiceErrorWithCause("dhl", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewExternalServiceErrorWithCause("dhl", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewExternalServiceErrorWithCause("dhl",
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewExternalServiceErrorWithCause("dhl", err)
	}

	return nil
}
