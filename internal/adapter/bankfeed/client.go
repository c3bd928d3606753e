package bankfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// DefaultTransactionsPath locates the transaction array in the proxy response
const DefaultTransactionsPath = "$.transactions"

// Client reads linked bank transactions from the account aggregation proxy.
// The proxy answers with a JSON document; the transaction array is located with a JSONPath
// expression so different proxy envelopes can be used without code changes.
type Client struct {
	baseURL string
	path    string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient creates a new bank feed client
func NewClient(baseURL, transactionsPath string, log *logrus.Logger) *Client {
	if transactionsPath == "" {
		transactionsPath = DefaultTransactionsPath
	}
	return &Client{
		baseURL: baseURL,
		path:    transactionsPath,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

// List fetches the transactions of the given user
func (c *Client) List(ctx context.Context, userID string) ([]domain.BankTransaction, error) {
	addr, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bank feed url: %w", err)
	}
	q := addr.Query()
	q.Set("user_id", userID)
	addr.RawQuery = q.Encode()

	var jobj any
	if err := c.jwget(ctx, addr.String(), &jobj); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	jval, err := jsonpath.Get(c.path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", c.path, err)
	}
	items, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q does not point to an array", c.path)
	}

	transactions := make([]domain.BankTransaction, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			c.log.WithField("index", i).Warn("Skipping malformed transaction")
			continue
		}
		tx, err := toTransaction(obj)
		if err != nil {
			c.log.WithFields(logrus.Fields{"index": i, "err": err}).Warn("Skipping malformed transaction")
			continue
		}
		transactions = append(transactions, tx)
	}

	c.log.WithFields(logrus.Fields{"user_id": userID, "count": len(transactions)}).Debug("Fetched bank transactions")
	return transactions, nil
}

func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	return dec.Decode(data)
}

// toTransaction maps one aggregator record. The category comes from
// personal_finance_category.primary when present, else the first legacy category.
func toTransaction(obj map[string]any) (domain.BankTransaction, error) {
	amount, err := toDecimal(obj["amount"])
	if err != nil {
		return domain.BankTransaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	tx := domain.BankTransaction{
		ID:           str(obj["transaction_id"]),
		Date:         str(obj["date"]),
		Name:         str(obj["name"]),
		MerchantName: str(obj["merchant_name"]),
		Amount:       amount,
		Institution:  str(obj["institution_name"]),
	}
	if tx.ID == "" {
		return domain.BankTransaction{}, fmt.Errorf("missing transaction_id")
	}

	if pfc, ok := obj["personal_finance_category"].(map[string]any); ok {
		tx.Category = strings.ToLower(str(pfc["primary"]))
	}
	if tx.Category == "" {
		if legacy, ok := obj["category"].([]any); ok && len(legacy) > 0 {
			tx.Category = str(legacy[0])
		}
	}

	return tx, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected type %T", v)
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
