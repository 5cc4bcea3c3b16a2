package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/xuri/excelize/v2"
)

// Adapter implements sheetstore.Transport over a local Excel
// workbook. Range names are sheet names within the workbook. Every
// call opens the file fresh, mirroring the remote transport's
// no-state-between-calls contract; a mutex serializes file access
// within the process.
type Adapter struct {
	config *Config
	mu     sync.Mutex
}

var _ sheetstore.Transport = (*Adapter)(nil)

// New creates a new Excel transport with the given configuration.
func New(config *Config) (*Adapter, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	configCopy := *config
	return &Adapter{config: &configCopy}, nil
}

// FetchRange returns all populated rows of the sheet, header first. A
// missing file or sheet yields an empty block rather than an error.
func (a *Adapter) FetchRange(ctx context.Context, rangeName string) ([][]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := excelize.OpenFile(a.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return [][]string{}, nil
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetIndex, err := f.GetSheetIndex(rangeName)
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet index: %w", err)
	}
	if sheetIndex == -1 {
		return [][]string{}, nil
	}

	rows, err := f.GetRows(rangeName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return rows, nil
}

// AppendRows appends rows after the last populated row of the sheet,
// creating the workbook and the sheet if needed.
func (a *Adapter) AppendRows(ctx context.Context, rangeName string, rows [][]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f, created, err := a.openOrCreate(rangeName)
	if err != nil {
		return err
	}
	defer f.Close()

	start := 1
	if !created {
		existing, err := f.GetRows(rangeName)
		if err != nil {
			return fmt.Errorf("failed to get rows: %w", err)
		}
		start = len(existing) + 1
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell
		}
		cell := fmt.Sprintf("A%d", start+i)
		if err := f.SetSheetRow(rangeName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", start+i, err)
		}
	}

	if err := f.SaveAs(a.config.FilePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// BatchWriteCells applies every cell write and saves the workbook
// once. The target sheet must already exist.
func (a *Adapter) BatchWriteCells(ctx context.Context, writes []sheetstore.CellWrite) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f, err := excelize.OpenFile(a.config.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	for _, write := range writes {
		sheetIndex, err := f.GetSheetIndex(write.Address.Range)
		if err != nil {
			return fmt.Errorf("failed to get sheet index: %w", err)
		}
		if sheetIndex == -1 {
			return fmt.Errorf("%w: %s", ErrSheetNotFound, write.Address.Range)
		}

		cell := fmt.Sprintf("%s%d", write.Address.Column, write.Address.Row)
		if err := f.SetCellStr(write.Address.Range, cell, write.Value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", write.Address, err)
		}
	}

	if err := f.SaveAs(a.config.FilePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// openOrCreate opens the workbook, creating the file and the named
// sheet when absent. The created result reports whether the sheet is
// brand new and therefore empty.
func (a *Adapter) openOrCreate(sheetName string) (*excelize.File, bool, error) {
	var f *excelize.File
	newFile := false

	if _, err := os.Stat(a.config.FilePath); err == nil {
		f, err = excelize.OpenFile(a.config.FilePath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open workbook: %w", err)
		}
	} else {
		dir := filepath.Dir(a.config.FilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, false, fmt.Errorf("failed to create directory: %w", err)
		}
		f = excelize.NewFile()
		newFile = true
	}

	sheetIndex, err := f.GetSheetIndex(sheetName)
	if err != nil {
		f.Close()
		return nil, false, fmt.Errorf("failed to get sheet index: %w", err)
	}
	if sheetIndex != -1 {
		return f, false, nil
	}

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, false, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if newFile {
		if defaultSheet := f.GetSheetName(0); defaultSheet != sheetName {
			_ = f.DeleteSheet(defaultSheet) // Ignore error - not critical
		}
	}

	return f, true, nil
}
