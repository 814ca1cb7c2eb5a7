// Package audit keeps a JSON report of every corpus import run on disk, one
// file per run, so a partial or failed import can be inspected afterwards.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/sbreader/internal/importers"
)

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// ImportReport is the record written for one import run.
type ImportReport struct {
	ID         string                 `json:"id"`
	Source     string                 `json:"source"`
	DryRun     bool                   `json:"dry_run"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	Document   importers.Summary      `json:"document"`
	Result     importers.ImportResult `json:"result"`
	Error      string                 `json:"error,omitempty"`
}

// SaveImportReport fills in the report id and writes it to the audit
// directory. It returns the file name.
func (a *Auditor) SaveImportReport(report *ImportReport) (string, error) {
	id := uuid.New()
	report.ID = id.String()
	return a.save(id, report)
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	return a.save(uuid.New(), data)
}

func (a *Auditor) save(id uuid.UUID, data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", id.String())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("[IMPORT] Saved import report: %s", path)
	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
