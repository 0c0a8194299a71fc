package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/repositories"
	"github.com/Dosada05/mahjong-scorebook/storage"
)

type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
)

type ExportService interface {
	Export(ctx context.Context, format ExportFormat) (*ExportResult, error)
}

type ExportResult struct {
	Key          string       `json:"key"`
	URL          string       `json:"url,omitempty"`
	Format       ExportFormat `json:"format"`
	SessionCount int          `json:"session_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

type exportService struct {
	sessionRepo repositories.SessionRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
	now         func() time.Time
}

// NewExportService принимает nil uploader, если хранилище не настроено.
func NewExportService(sessionRepo repositories.SessionRepository, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{
		sessionRepo: sessionRepo,
		uploader:    uploader,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}

	var contentType string
	switch format {
	case ExportFormatJSON:
		contentType = "application/json"
	case ExportFormatCSV:
		contentType = "text/csv"
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExport, format)
	}

	sessions, err := s.sessionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for export: %w", err)
	}

	var buf bytes.Buffer
	if format == ExportFormatJSON {
		err = WriteSessionsJSON(&buf, sessions)
	} else {
		err = WriteSessionsCSV(&buf, sessions)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	createdAt := s.now()
	key := storage.ExportKey(createdAt, string(format))
	uploaded, err := s.uploader.Upload(ctx, key, contentType, &buf)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sessions exported",
		slog.String("key", uploaded.Key),
		slog.String("format", string(format)),
		slog.Int("sessions", len(sessions)),
	)

	return &ExportResult{
		Key:          uploaded.Key,
		URL:          uploaded.Location,
		Format:       format,
		SessionCount: len(sessions),
		CreatedAt:    createdAt,
	}, nil
}

func WriteSessionsJSON(w io.Writer, sessions []*models.Session) error {
	if sessions == nil {
		sessions = []*models.Session{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessions)
}

var csvHeader = []string{
	"session_id", "date", "mode", "point_rate", "bonus_value", "chip_rate", "bonus_rule",
	"round_number", "position", "player_name", "user_id", "score", "bonus_marker",
	"chips", "parlor_fee", "is_spectator",
}

// WriteSessionsCSV пишет по строке на каждого игрока каждого ханчана.
func WriteSessionsCSV(w io.Writer, sessions []*models.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range sessions {
		for _, r := range s.Rounds {
			for pos, p := range r.Players {
				record := []string{
					strconv.Itoa(s.ID),
					s.Date.Format("2006-01-02"),
					string(s.Mode),
					strconv.Itoa(s.PointRate),
					strconv.Itoa(s.BonusValue),
					strconv.Itoa(s.ChipRate),
					string(s.BonusRule),
					strconv.Itoa(r.RoundNumber),
					strconv.Itoa(pos + 1),
					p.PlayerName,
					optionalInt(p.UserID),
					optionalInt(p.Score),
					string(p.BonusMarker),
					strconv.Itoa(p.Chips),
					strconv.Itoa(p.ParlorFee),
					strconv.FormatBool(p.IsSpectator),
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
