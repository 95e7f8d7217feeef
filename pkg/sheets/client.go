package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API for the practice-session scheduling
// workbook. One spreadsheet, one tab per month, one row per request.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ScheduleRow is one scheduling request in the workbook.
type ScheduleRow struct {
	EmployeeID  string
	Name        string
	Language    string
	SlotDate    string
	SlotTime    string
	RequestedAt time.Time
}

// AppendRequest appends a scheduling request row to the given tab.
func (c *Client) AppendRequest(ctx context.Context, tab string, row ScheduleRow) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			row.EmployeeID,
			row.Name,
			row.Language,
			row.SlotDate,
			row.SlotTime,
			row.RequestedAt.Format(time.RFC3339),
		}},
	}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, tab+"!A:F", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append schedule row: %w", err)
	}
	return nil
}

// ListRequests reads all scheduling rows from the given tab, skipping the
// header row.
func (c *Client) ListRequests(ctx context.Context, tab string) ([]ScheduleRow, error) {
	resp, err := c.service.Spreadsheets.Values.
		Get(c.spreadsheetID, tab+"!A2:F").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule rows: %w", err)
	}

	rows := make([]ScheduleRow, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := ScheduleRow{}
		if len(raw) > 0 {
			row.EmployeeID, _ = raw[0].(string)
		}
		if len(raw) > 1 {
			row.Name, _ = raw[1].(string)
		}
		if len(raw) > 2 {
			row.Language, _ = raw[2].(string)
		}
		if len(raw) > 3 {
			row.SlotDate, _ = raw[3].(string)
		}
		if len(raw) > 4 {
			row.SlotTime, _ = raw[4].(string)
		}
		if len(raw) > 5 {
			if ts, ok := raw[5].(string); ok {
				if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
					row.RequestedAt = parsed
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
