package cbr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

const dailyXML = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="17.10.2026" name="Foreign Currency Market">
<Valute ID="R01235"><NumCode>840</NumCode><CharCode>USD</CharCode><Nominal>1</Nominal><Name>US Dollar</Name><Value>80,0000</Value></Valute>
<Valute ID="R01239"><NumCode>978</NumCode><CharCode>EUR</CharCode><Nominal>1</Nominal><Name>Euro</Name><Value>100,0000</Value></Valute>
<Valute ID="R01700J"><NumCode>949</NumCode><CharCode>TRY</CharCode><Nominal>10</Nominal><Name>Turkish Lira</Name><Value>25,0000</Value></Valute>
<Valute ID="R01720"><NumCode>980</NumCode><CharCode>UAH</CharCode><Nominal>10</Nominal><Name>Hryvnia</Name><Value>20,0000</Value></Valute>
<Valute ID="R01375"><NumCode>156</NumCode><CharCode>CNY</CharCode><Nominal>1</Nominal><Name>Yuan</Name><Value>11,0000</Value></Valute>
</ValCurs>`

const metalsXML = `<?xml version="1.0" encoding="windows-1251"?>
<Metall FromDate="20251001" ToDate="20261017" name="Precious metals quotations">
<Record Date="17.10.2026" Code="1"><Buy>11000,00</Buy><Sell>11000,00</Sell></Record>
<Record Date="17.10.2026" Code="2"><Buy>130,00</Buy><Sell>130,00</Sell></Record>
<Record Date="16.10.2026" Code="1"><Buy>10000,00</Buy><Sell>10000,00</Sell></Record>
<Record Date="10.10.2026" Code="1"><Buy>10000,00</Buy><Sell>10000,00</Sell></Record>
<Record Date="17.09.2026" Code="1"><Buy>8800,00</Buy><Sell>8800,00</Sell></Record>
<Record Date="15.10.2025" Code="1"><Buy>5500,00</Buy><Sell>5500,00</Sell></Record>
</Metall>`

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "expected %s, got %s", want, actual)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestParseDailyRates(t *testing.T) {
	rates, err := ParseDailyRates([]byte(dailyXML))
	require.NoError(t, err)

	assert.Len(t, rates, 4)
	assertDecimal(t, "0.0125", rates[domain.CurrencyUSD])
	assertDecimal(t, "0.01", rates[domain.CurrencyEUR])
	assertDecimal(t, "0.4", rates[domain.CurrencyTRY])
	assertDecimal(t, "0.5", rates[domain.CurrencyUAH])
	_, ok := rates["CNY"]
	assert.False(t, ok)
}

func TestParseDailyRates_Invalid(t *testing.T) {
	_, err := ParseDailyRates([]byte("not xml at all <"))
	assert.Error(t, err)

	_, err = ParseDailyRates([]byte(`<ValCurs Date="17.10.2026"></ValCurs>`))
	assert.Error(t, err)
}

func TestParseGoldPrices(t *testing.T) {
	points, err := ParseGoldPrices([]byte(metalsXML))
	require.NoError(t, err)

	require.Len(t, points, 5)
	assert.Equal(t, "2025-10-15", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-10-17", points[4].Date.Format("2006-01-02"))
	assertDecimal(t, "11000", points[4].Price)
}

func TestChangeSince(t *testing.T) {
	points, err := ParseGoldPrices([]byte(metalsXML))
	require.NoError(t, err)
	latest := points[len(points)-1].Date

	t.Run("previous day", func(t *testing.T) {
		assertDecimal(t, "10", ChangeSince(points, latest.AddDate(0, 0, -1)))
	})

	t.Run("week falls back to earlier quote", func(t *testing.T) {
		assertDecimal(t, "10", ChangeSince(points, latest.AddDate(0, 0, -7)))
	})

	t.Run("month", func(t *testing.T) {
		assertDecimal(t, "25", ChangeSince(points, latest.AddDate(0, -1, 0)))
	})

	t.Run("year", func(t *testing.T) {
		assertDecimal(t, "100", ChangeSince(points, latest.AddDate(-1, 0, 0)))
	})

	t.Run("no quote old enough", func(t *testing.T) {
		assert.True(t, ChangeSince(points, latest.AddDate(-2, 0, 0)).IsZero())
	})

	t.Run("empty series", func(t *testing.T) {
		assert.True(t, ChangeSince(nil, latest).IsZero())
	})
}

func TestClient_Fetch(t *testing.T) {
	var dailyQuery, metalsQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/XML_daily.asp"):
			dailyQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(dailyXML))
		case strings.HasSuffix(r.URL.Path, "/xml_metall.asp"):
			metalsQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(metalsXML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/scripts/", quietLogger())
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	snapshot, err := client.Fetch(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "date_req=17/10/2026", dailyQuery)
	assert.Contains(t, metalsQuery, "date_req2=17/10/2026")
	assert.Equal(t, BaseCurrency, snapshot.Base)
	assertDecimal(t, "11000", snapshot.PricePerGram)
	assertDecimal(t, "10", snapshot.ChangePercent.D1)
	assertDecimal(t, "100", snapshot.ChangePercent.Y1)
	assertDecimal(t, "0.4", snapshot.RateFor(domain.CurrencyTRY))
	assert.Equal(t, now, snapshot.FetchedAt)
}

func TestClient_Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	_, err := client.Fetch(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 503")
}

func TestClient_Fetch_NoGoldQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/XML_daily.asp") {
			_, _ = w.Write([]byte(dailyXML))
			return
		}
		_, _ = w.Write([]byte(`<Metall FromDate="20251001" ToDate="20261017"></Metall>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	_, err := client.Fetch(context.Background(), time.Now())
	assert.Error(t, err)
}
