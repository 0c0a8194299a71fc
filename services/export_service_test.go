package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
)

func exportFixture(uploader *fakeUploader) *exportService {
	repo := newMockSessionRepo(statsSession(7, time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		row(1, intPtr(30), intPtr(10), intPtr(-10), nil)))
	var svc *exportService
	if uploader == nil {
		svc = NewExportService(repo, nil, discardLogger()).(*exportService)
	} else {
		svc = NewExportService(repo, uploader, discardLogger()).(*exportService)
	}
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportService_Unavailable(t *testing.T) {
	svc := exportFixture(nil)
	if _, err := svc.Export(context.Background(), ExportFormatJSON); !errors.Is(err, ErrExportUnavailable) {
		t.Fatalf("Export error = %v, want ErrExportUnavailable", err)
	}
}

func TestExportService_InvalidFormat(t *testing.T) {
	svc := exportFixture(&fakeUploader{})
	if _, err := svc.Export(context.Background(), "xml"); !errors.Is(err, ErrInvalidExport) {
		t.Fatalf("Export error = %v, want ErrInvalidExport", err)
	}
}

func TestExportService_CSV(t *testing.T) {
	uploader := &fakeUploader{}
	svc := exportFixture(uploader)

	result, err := svc.Export(context.Background(), ExportFormatCSV)
	if err != nil {
		t.Fatalf("Export error = %v", err)
	}
	if result.SessionCount != 1 || !strings.HasPrefix(result.Key, "exports/2026/10/") || !strings.HasSuffix(result.Key, ".csv") {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.URL != "https://cdn.example.com/"+result.Key || uploader.contentType != "text/csv" {
		t.Fatalf("URL = %q, content type = %q", result.URL, uploader.contentType)
	}

	records, err := csv.NewReader(bytes.NewReader(uploader.body)).ReadAll()
	if err != nil {
		t.Fatalf("uploaded CSV is invalid: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d CSV rows, want header + 4 players", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Fatalf("unexpected header %v", records[0])
	}
	first := records[1]
	if first[0] != "7" || first[1] != "2026-10-03" || first[9] != "Me" || first[10] != "1" || first[11] != "30" {
		t.Fatalf("unexpected first row %v", first)
	}
	if last := records[4]; last[10] != "" || last[11] != "" {
		t.Fatalf("missing user and score must export as empty cells, got %v", last)
	}
}

func TestExportService_JSON(t *testing.T) {
	uploader := &fakeUploader{}
	svc := exportFixture(uploader)

	if _, err := svc.Export(context.Background(), ExportFormatJSON); err != nil {
		t.Fatalf("Export error = %v", err)
	}

	var decoded []models.Session
	if err := json.Unmarshal(uploader.body, &decoded); err != nil {
		t.Fatalf("uploaded JSON is invalid: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != 7 || len(decoded[0].Rounds) != 1 {
		t.Fatalf("unexpected export %+v", decoded)
	}
}

func TestExportService_UploadFailure(t *testing.T) {
	svc := exportFixture(&fakeUploader{err: errDatabaseDown})
	if _, err := svc.Export(context.Background(), ExportFormatJSON); !errors.Is(err, errDatabaseDown) {
		t.Fatalf("Export error = %v", err)
	}
}
