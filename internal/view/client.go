package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a thin JSON client for the stockroom API. It validates boundary
// shapes on ingestion: entries without an id are dropped rather than carried
// deeper into the pipeline.
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchItems retrieves the full item collection.
func (c *Client) FetchItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.getJSON(ctx, "/api/item", &items); err != nil {
		return nil, err
	}
	valid := items[:0]
	for _, it := range items {
		if it.ID == "" || it.Name == "" {
			continue
		}
		valid = append(valid, it)
	}
	return valid, nil
}

// FetchInventory retrieves the full inventory collection.
func (c *Client) FetchInventory(ctx context.Context) ([]InventoryRecord, error) {
	var records []InventoryRecord
	if err := c.getJSON(ctx, "/api/inventory", &records); err != nil {
		return nil, err
	}
	valid := records[:0]
	for _, rec := range records {
		if rec.ID == "" || rec.Item.ID == "" {
			continue
		}
		valid = append(valid, rec)
	}
	return valid, nil
}

// Shipment is the boundary shape of GET /api/shipments entries, reduced to
// what the terminal client displays.
type Shipment struct {
	ID                  string       `json:"id"`
	Warehouse           WarehouseRef `json:"warehouse"`
	ExpectedArrivalDate string       `json:"expectedArrivalDate"`
	Status              string       `json:"status"`
}

// FetchShipments retrieves all shipments.
func (c *Client) FetchShipments(ctx context.Context) ([]Shipment, error) {
	var shipments []Shipment
	if err := c.getJSON(ctx, "/api/shipments", &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// Health reports whether the API server answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}
