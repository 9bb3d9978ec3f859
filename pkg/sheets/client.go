package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/invitation-backend/pkg/config"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	valueInputUserEntered = "USER_ENTERED"
	defaultPingTimeout    = 5 * time.Second
	tokenURI              = "https://oauth2.googleapis.com/token"
)

var (
	errSpreadsheetIDRequired = errors.New("spreadsheet id is required")
	errCredentialsRequired   = errors.New("google sheets credentials are required")
	errClientNotInitialized  = errors.New("sheets client not initialized")
)

// Client is the Google Sheets v4 implementation of Store.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	pingTimeout   time.Duration
}

// NewClient builds a Sheets client from service-account credentials and
// verifies the spreadsheet is reachable.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logg *logger.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errSpreadsheetIDRequired
	}

	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	client := &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		pingTimeout:   cfg.PingTimeout,
	}

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("sheets health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "spreadsheet_id", spreadsheetID), "sheets client initialized")
	}

	return client, nil
}

func clientOptions(cfg config.SheetsConfig) ([]option.ClientOption, error) {
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.ApplicationCredentials))
	case strings.TrimSpace(cfg.ClientEmail) != "" && strings.TrimSpace(cfg.PrivateKey) != "":
		raw, err := serviceAccountJSON(cfg.ClientEmail, cfg.NormalizedPrivateKey())
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	default:
		return nil, errCredentialsRequired
	}
	return opts, nil
}

// serviceAccountJSON assembles a credentials document from the split
// email/key variables.
func serviceAccountJSON(email, privateKey string) ([]byte, error) {
	doc := map[string]string{
		"type":         "service_account",
		"client_email": strings.TrimSpace(email),
		"private_key":  privateKey,
		"token_uri":    tokenURI,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding service account credentials: %w", err)
	}
	return raw, nil
}

func (c *Client) ReadRange(ctx context.Context, rng Range) ([][]string, error) {
	if c == nil || c.svc == nil {
		return nil, storeErr("read", rng.A1(), errClientNotInitialized)
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng.A1()).Context(ctx).Do()
	if err != nil {
		return nil, storeErr("read", rng.A1(), err)
	}
	return toStrings(resp.Values), nil
}

func (c *Client) AppendRow(ctx context.Context, rng Range, row []string) error {
	if c == nil || c.svc == nil {
		return storeErr("append", rng.A1(), errClientNotInitialized)
	}
	body := &gsheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng.A1(), body).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	return storeErr("append", rng.A1(), err)
}

func (c *Client) UpdateRange(ctx context.Context, rng Range, rowIndex int, values []string) error {
	target := rng.RowA1(rowIndex)
	if c == nil || c.svc == nil {
		return storeErr("update", target, errClientNotInitialized)
	}
	if rowIndex <= 0 {
		return storeErr("update", target, fmt.Errorf("invalid row index %d", rowIndex))
	}
	body := &gsheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, target, body).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	return storeErr("update", target, err)
}

// Ping fetches only the spreadsheet id to confirm credentials and sharing.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}
	timeout := c.pingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields(googleapi.Field("spreadsheetId")).
		Context(ctx).
		Do()
	return storeErr("ping", c.spreadsheetID, err)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, raw := range values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			switch v := cell.(type) {
			case string:
				row[j] = v
			case nil:
				row[j] = ""
			default:
				row[j] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}
	return rows
}
