package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Tracked event names. These mirror the storefront's marketing funnel.
const (
	EventAddToCart     = "add_to_cart"
	EventBeginCheckout = "begin_checkout"
	EventPurchase      = "purchase"
)

// Item is a product reference inside an event payload.
type Item struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Event is one marketing signal. CartKey doubles as the client identifier
// the trackers attribute the event to.
type Event struct {
	Name    string  `json:"name"`
	CartKey string  `json:"cart_key"`
	Value   float64 `json:"value"`
	Items   []Item  `json:"items,omitempty"`
}

// Tracker forwards events to one external analytics backend.
type Tracker interface {
	Name() string
	Enabled() bool
	Send(e Event) error
}

// Sink fans tracked events out to all configured trackers, fire-and-forget:
// no queueing, no retries, failures logged and dropped. Events are also
// delivered synchronously to in-process subscribers, which replaces the
// storefront's old fixed-interval badge polling with push notification.
type Sink struct {
	trackers    []Tracker
	subscribers []func(Event)
}

func NewSink(trackers ...Tracker) *Sink {
	return &Sink{trackers: trackers}
}

// NewSinkFromEnv builds a sink with every tracker whose configuration is
// present. A missing measurement ID or token silently skips that tracker
// only; it never disables the sink.
func NewSinkFromEnv() *Sink {
	return NewSink(
		NewGA4Tracker(os.Getenv("GA_MEASUREMENT_ID"), os.Getenv("GA_API_SECRET")),
		NewMetaTracker(os.Getenv("FB_PIXEL_ID"), os.Getenv("FB_ACCESS_TOKEN")),
	)
}

// Subscribe registers an in-process listener invoked synchronously on every
// tracked event.
func (s *Sink) Subscribe(fn func(Event)) {
	s.subscribers = append(s.subscribers, fn)
}

// Track reports an event to all enabled trackers and subscribers. It never
// blocks on network delivery and never returns an error: these are
// non-critical marketing signals with at-most-once semantics.
func (s *Sink) Track(e Event) {
	if s == nil {
		return
	}
	for _, fn := range s.subscribers {
		fn(e)
	}
	for _, t := range s.trackers {
		if !t.Enabled() {
			continue
		}
		go func(t Tracker) {
			if err := t.Send(e); err != nil {
				log.Printf("analytics: %s delivery failed: %v", t.Name(), err)
			}
		}(t)
	}
}

// GA4Tracker posts events to the Google Analytics 4 Measurement Protocol.
type GA4Tracker struct {
	MeasurementID string
	APISecret     string
	Endpoint      string
	Client        *http.Client
}

func NewGA4Tracker(measurementID, apiSecret string) *GA4Tracker {
	return &GA4Tracker{
		MeasurementID: measurementID,
		APISecret:     apiSecret,
		Endpoint:      "https://www.google-analytics.com/mp/collect",
		Client:        &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *GA4Tracker) Name() string { return "ga4" }

func (t *GA4Tracker) Enabled() bool {
	return t.MeasurementID != "" && t.APISecret != ""
}

func (t *GA4Tracker) Send(e Event) error {
	items := make([]map[string]interface{}, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, map[string]interface{}{
			"item_id":   fmt.Sprintf("%d", it.ProductID),
			"item_name": it.Name,
			"price":     it.Price,
			"quantity":  it.Quantity,
		})
	}

	payload := map[string]interface{}{
		"client_id": e.CartKey,
		"events": []map[string]interface{}{
			{
				"name": e.Name,
				"params": map[string]interface{}{
					"currency": "USD",
					"value":    e.Value,
					"items":    items,
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s", t.Endpoint, t.MeasurementID, t.APISecret)
	resp, err := t.Client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// MetaTracker posts events to the Meta (Facebook Pixel) Conversions API.
type MetaTracker struct {
	PixelID     string
	AccessToken string
	Endpoint    string
	Client      *http.Client
}

func NewMetaTracker(pixelID, accessToken string) *MetaTracker {
	return &MetaTracker{
		PixelID:     pixelID,
		AccessToken: accessToken,
		Endpoint:    "https://graph.facebook.com/v18.0",
		Client:      &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *MetaTracker) Name() string { return "meta" }

func (t *MetaTracker) Enabled() bool {
	return t.PixelID != "" && t.AccessToken != ""
}

// metaEventName maps funnel event names to the Pixel standard event names.
func metaEventName(name string) string {
	switch name {
	case EventAddToCart:
		return "AddToCart"
	case EventBeginCheckout:
		return "InitiateCheckout"
	case EventPurchase:
		return "Purchase"
	default:
		return name
	}
}

func (t *MetaTracker) Send(e Event) error {
	contents := make([]map[string]interface{}, 0, len(e.Items))
	for _, it := range e.Items {
		contents = append(contents, map[string]interface{}{
			"id":         fmt.Sprintf("%d", it.ProductID),
			"quantity":   it.Quantity,
			"item_price": it.Price,
		})
	}

	payload := map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"event_name":    metaEventName(e.Name),
				"event_time":    time.Now().Unix(),
				"action_source": "website",
				"custom_data": map[string]interface{}{
					"currency": "USD",
					"value":    e.Value,
					"contents": contents,
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/events?access_token=%s", t.Endpoint, t.PixelID, t.AccessToken)
	resp, err := t.Client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
