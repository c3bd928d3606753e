package cbr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// DefaultBaseURL is the Central Bank of Russia XML service
const DefaultBaseURL = "https://www.cbr.ru/scripts"

// BaseCurrency is the unit all CBR quotes are expressed in
const BaseCurrency domain.Currency = "RUB"

// goldCode identifies gold in the precious metals feed
const goldCode = "1"

// historyDays covers the longest change window plus room for weekends and holidays
const historyDays = 380

// PricePoint is one quoted price per gram
type PricePoint struct {
	Date  time.Time
	Price decimal.Decimal
}

// Client implements domain.MarketProvider on top of the CBR daily FX and metals feeds
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new CBR client
func NewClient(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Fetch builds a market snapshot: gold price per gram in RUB, FX multipliers from RUB
// into every supported currency and the gold price change over 1d/1w/1m/1y.
func (c *Client) Fetch(ctx context.Context, now time.Time) (*domain.MarketSnapshot, error) {
	rates, err := c.FetchRates(ctx, now)
	if err != nil {
		return nil, err
	}

	prices, err := c.FetchGoldPrices(ctx, now.AddDate(0, 0, -historyDays), now)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no gold quotes found")
	}

	latest := prices[len(prices)-1]
	snapshot := &domain.MarketSnapshot{
		Base:         BaseCurrency,
		PricePerGram: latest.Price,
		ChangePercent: domain.ChangePercent{
			D1: ChangeSince(prices, latest.Date.AddDate(0, 0, -1)),
			W1: ChangeSince(prices, latest.Date.AddDate(0, 0, -7)),
			M1: ChangeSince(prices, latest.Date.AddDate(0, -1, 0)),
			Y1: ChangeSince(prices, latest.Date.AddDate(-1, 0, 0)),
		},
		FXRates:   rates,
		FetchedAt: now.UTC(),
	}

	c.log.Infof("Retrieved gold price: %s RUB/g (quote of %s)", latest.Price.StringFixed(2), latest.Date.Format("2006-01-02"))
	return snapshot, nil
}

// FetchRates retrieves the daily FX table and converts it into RUB -> currency multipliers
func (c *Client) FetchRates(ctx context.Context, date time.Time) (map[domain.Currency]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/XML_daily.asp?date_req=%s", c.baseURL, date.Format("02/01/2006"))
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseDailyRates(body)
}

// FetchGoldPrices retrieves gold quotes between from and to, ordered by date ascending
func (c *Client) FetchGoldPrices(ctx context.Context, from, to time.Time) ([]PricePoint, error) {
	url := fmt.Sprintf("%s/xml_metall.asp?date_req1=%s&date_req2=%s",
		c.baseURL, from.Format("02/01/2006"), to.Format("02/01/2006"))
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseGoldPrices(body)
}

// get sends a GET request to CBR
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("CBR XML response from %s: %d bytes", url, len(body))
	return body, nil
}

// ParseDailyRates reads a ValCurs document. Each quote says how many RUB buy Nominal units,
// so the multiplier from RUB into that currency is Nominal / Value.
// Only supported currencies are kept.
func ParseDailyRates(rawBody []byte) (map[domain.Currency]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	valutes := doc.FindElements("//ValCurs/Valute")
	if len(valutes) == 0 {
		return nil, fmt.Errorf("no currency data found in XML")
	}

	rates := make(map[domain.Currency]decimal.Decimal)
	for _, v := range valutes {
		code := domain.Currency(strings.TrimSpace(textOf(v, "CharCode")))
		if !code.IsSupported() {
			continue
		}

		nominal, err := parseNumber(textOf(v, "Nominal"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse nominal for %s: %w", code, err)
		}
		value, err := parseNumber(textOf(v, "Value"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse value for %s: %w", code, err)
		}
		if value.IsZero() {
			continue
		}

		rates[code] = nominal.Div(value)
	}

	return rates, nil
}

// ParseGoldPrices reads a Metall document and returns the gold quotes ordered by date
func ParseGoldPrices(rawBody []byte) ([]PricePoint, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var points []PricePoint
	for _, record := range doc.FindElements("//Metall/Record") {
		if record.SelectAttrValue("Code", "") != goldCode {
			continue
		}

		date, err := time.Parse("02.01.2006", record.SelectAttrValue("Date", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to parse quote date: %w", err)
		}

		// Buy and Sell are identical in the feed; Sell is the reference price
		price, err := parseNumber(textOf(record, "Sell"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse gold price: %w", err)
		}

		points = append(points, PricePoint{Date: date, Price: price})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// ChangeSince returns the percent move from the last quote on or before since
// to the latest quote. Zero when no such quote exists.
func ChangeSince(points []PricePoint, since time.Time) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}

	latest := points[len(points)-1].Price
	var past *PricePoint
	for i := range points {
		if points[i].Date.After(since) {
			break
		}
		past = &points[i]
	}
	if past == nil || past.Price.IsZero() {
		return decimal.Zero
	}

	return latest.Sub(past.Price).Div(past.Price).Mul(decimal.NewFromInt(100))
}

func textOf(e *etree.Element, child string) string {
	el := e.SelectElement(child)
	if el == nil {
		return ""
	}
	return el.Text()
}

// parseNumber reads CBR numbers, which use a decimal comma ("89,8071")
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
