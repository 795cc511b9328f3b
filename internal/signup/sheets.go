package signup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig locates the spreadsheet and the ranges rows are appended to.
type SheetsConfig struct {
	SpreadsheetID string
	WaitlistRange string
	RSVPRange     string
	// Timeout bounds each append call.
	Timeout time.Duration
}

// Sheets appends submissions as rows of a Google Sheets spreadsheet.
type Sheets struct {
	svc    *sheets.Service
	cfg    SheetsConfig
	logger *zap.Logger
}

// SheetsCredentials returns the client options for service account
// credentials given inline as JSON or as a file path. JSON wins when both are
// set.
func SheetsCredentials(credentialsJSON, credentialsFile string) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	} else if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return opts
}

// NewSheets creates a Sheets recorder. opts are passed to the Sheets client;
// see SheetsCredentials.
func NewSheets(ctx context.Context, cfg SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Sheets{svc: svc, cfg: cfg, logger: logger}, nil
}

// RecordWaitlist appends [email, timestamp, status, country, language, id].
func (s *Sheets) RecordWaitlist(ctx context.Context, e Entry) error {
	row := []interface{}{
		e.Email,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Status,
		countryOrUnknown(e.Country),
		e.Language,
		e.ID,
	}
	return s.append(ctx, s.cfg.WaitlistRange, row)
}

// RecordRSVP appends [name, guests, timestamp, country, id].
func (s *Sheets) RecordRSVP(ctx context.Context, e RSVPEntry) error {
	row := []interface{}{
		e.Name,
		e.Guests,
		e.Timestamp.UTC().Format(time.RFC3339),
		countryOrUnknown(e.Country),
		e.ID,
	}
	return s.append(ctx, s.cfg.RSVPRange, row)
}

func (s *Sheets) append(ctx context.Context, rangeA1 string, row []interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, rangeA1, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s: %w", rangeA1, err)
	}
	s.logger.Debug("sheet row appended", zap.String("range", rangeA1))
	return nil
}

func countryOrUnknown(country string) string {
	if country == "" {
		return "unknown"
	}
	return country
}
