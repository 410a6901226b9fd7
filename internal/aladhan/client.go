// Package aladhan fetches monthly prayer calendars from the Al Adhan API.
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Exported for testing with httptest.
	BaseURL string
	// Method is the calculation method id; 13 is Diyanet İşleri Başkanlığı.
	Method int
	// CalendarMethod selects the Hijri calendar computation, e.g. "DIYANET".
	CalendarMethod string
}

// NewClient creates a new API client.
func NewClient(baseURL string, method int, calendarMethod string) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:        baseURL,
		Method:         method,
		CalendarMethod: calendarMethod,
	}
}

// calendarResponse is the top-level calendar endpoint response. The calendar
// endpoint returns one data object per day of the month.
type calendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Gregorian struct {
				Date string `json:"date"` // DD-MM-YYYY
			} `json:"gregorian"`
			Hijri struct {
				Day   string `json:"day"`
				Year  string `json:"year"`
				Month struct {
					Number int    `json:"number"`
					En     string `json:"en"`
				} `json:"month"`
			} `json:"hijri"`
		} `json:"date"`
	} `json:"data"`
}

// Calendar fetches one month's prayer times for the given coordinates and
// converts them to daily records.
func (c *Client) Calendar(ctx context.Context, year, month int, lat, lng float64) ([]prayer.Record, error) {
	endpoint := fmt.Sprintf("%s/calendar/%d/%d", c.BaseURL, year, month)

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lng))
	params.Set("method", strconv.Itoa(c.Method))
	if c.CalendarMethod != "" {
		params.Set("calendarMethod", c.CalendarMethod)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decoding API response: %w", err)
	}

	if apiResp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", apiResp.Code, apiResp.Status)
	}

	records := make([]prayer.Record, 0, len(apiResp.Data))
	for _, day := range apiResp.Data {
		rec, err := convertDay(day.Timings, day.Date.Gregorian.Date,
			day.Date.Hijri.Day, day.Date.Hijri.Month.Number, day.Date.Hijri.Month.En, day.Date.Hijri.Year)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", day.Date.Gregorian.Date, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// convertDay maps one calendar day from API form to a record.
func convertDay(timings map[string]string, gregorian, hijriDay string, hijriMonth int, hijriMonthName, hijriYear string) (prayer.Record, error) {
	date, err := normalizeDate(gregorian)
	if err != nil {
		return prayer.Record{}, err
	}

	times := prayer.Times{
		Imsak:     cleanClock(timings["Imsak"]),
		Sunrise:   cleanClock(timings["Sunrise"]),
		Noon:      cleanClock(timings["Dhuhr"]),
		Afternoon: cleanClock(timings["Asr"]),
		Sunset:    cleanClock(timings["Maghrib"]),
		Night:     cleanClock(timings["Isha"]),
	}
	if err := times.Validate(); err != nil {
		return prayer.Record{}, fmt.Errorf("timings: %w", err)
	}

	day, _ := strconv.Atoi(hijriDay)
	yr, _ := strconv.Atoi(hijriYear)

	return prayer.Record{
		Date: date,
		Hijri: prayer.HijriDate{
			Day:       day,
			Month:     hijriMonth,
			MonthName: hijriMonthName,
			Year:      yr,
		},
		Times: times,
	}, nil
}

// normalizeDate converts the API's DD-MM-YYYY form to YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return "", fmt.Errorf("unrecognized date %q", s)
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0], nil
}

// cleanClock strips the timezone suffix the API appends, e.g.
// "05:31 (+03)" becomes "05:31".
func cleanClock(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
