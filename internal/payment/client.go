package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrGateway = errors.New("payment gateway error")

// Intent is the gateway's handle for a pending charge. The client secret
// is handed to the frontend; the intent id keys webhook events.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// Client talks to the outbound payment gateway. Amounts are sent in minor
// currency units.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type createIntentRequest struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

func (c *Client) CreateIntent(amountMinor int64, currency, reference string) (Intent, error) {
	body, err := json.Marshal(createIntentRequest{AmountMinor: amountMinor, Currency: currency, Reference: reference})
	if err != nil {
		return Intent{}, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/intents", bytes.NewReader(body))
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return Intent{}, fmt.Errorf("%w: unexpected status %d", ErrGateway, res.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(res.Body).Decode(&intent); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if intent.ID == "" {
		return Intent{}, fmt.Errorf("%w: empty intent id", ErrGateway)
	}
	return intent, nil
}
