package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	sheetstore "github.com/ideamans/go-sheetstore"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements sheetstore.Transport against the Google Sheets
// values API. Range names are sheet titles within one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	maxRetries    int
	retryInterval time.Duration
}

var _ sheetstore.Transport = (*Client)(nil)

// maxBackoff caps the exponential retry delay after quota errors.
const maxBackoff = 60 * time.Second

// New creates a Google Sheets transport with the provided client options.
func New(ctx context.Context, config Config, opts ...option.ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryInterval := config.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 1 * time.Second
	}

	return &Client{
		service:       service,
		spreadsheetID: config.SpreadsheetID,
		maxRetries:    maxRetries,
		retryInterval: retryInterval,
	}, nil
}

// FetchRange returns every populated cell of the sheet as strings,
// header row first.
func (c *Client) FetchRange(ctx context.Context, rangeName string) ([][]string, error) {
	readRange := fmt.Sprintf("%s!A:ZZ", rangeName)

	var resp *sheets.ValueRange
	err := c.withRetry(ctx, func() error {
		var err error
		resp, err = c.service.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet data: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = cellToString(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// AppendRows appends rows after the last populated row of the sheet.
func (c *Client) AppendRows(ctx context.Context, rangeName string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}

	writeRange := fmt.Sprintf("%s!A:ZZ", rangeName)
	err := c.withRetry(ctx, func() error {
		_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}

	return nil
}

// BatchWriteCells applies all cell writes in a single batchUpdate
// request, one ValueRange per cell.
func (c *Client) BatchWriteCells(ctx context.Context, writes []sheetstore.CellWrite) error {
	data := make([]*sheets.ValueRange, len(writes))
	for i, write := range writes {
		data[i] = &sheets.ValueRange{
			Range:  write.Address.String(),
			Values: [][]interface{}{{write.Value}},
		}
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	err := c.withRetry(ctx, func() error {
		_, err := c.service.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to batch update cells: %w", err)
	}

	return nil
}

// withRetry retries fn with exponential backoff while the API reports
// a quota or server error. Other failures return immediately.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) || attempt == c.maxRetries {
			return err
		}

		backoff := c.retryInterval * time.Duration(1<<uint(attempt))
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		log.WithError(err).Debugf("sheets API call failed, retrying in %v", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}

// isRetryable reports whether the error is a rate limit or transient
// server error per the Sheets API quota documentation.
func isRetryable(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code == 429 || gErr.Code == 403 || gErr.Code >= 500
}

// cellToString renders an API cell value as the raw string the store
// works with. Numbers come back as float64 even for integer cells.
func cellToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", val)
	}
}
