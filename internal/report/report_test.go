package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/internal/ledger"
)

func TestProductsWorkbook(t *testing.T) {
	products := []domain.Product{
		{Name: "Olma", Quantity: 100, Price: 12000, Category: "meva", UpdatedAt: time.Now()},
		{Name: "Non", Quantity: 40, Price: 4000, Category: "oziq-ovqat", UpdatedAt: time.Now()},
	}
	st := ledger.Stats{ProductCount: 2, TotalUnits: 140, TotalValue: 1360000}

	data, err := ProductsWorkbook(products, st)
	if err != nil {
		t.Fatalf("ProductsWorkbook: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
	// xlsx is a zip archive
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("workbook is not a zip archive, starts with %q", data[:2])
	}
}

func TestActivitiesCSV(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	acts := []domain.UserActivity{
		{UserID: 11, Phone: "+998901112233", StoreKey: "main", Action: domain.ActionEntry, CreatedAt: now},
		{UserID: 11, Phone: "+998901112233", StoreKey: "main", Action: domain.ActionExit, CreatedAt: now.Add(8 * time.Hour)},
	}
	users := []domain.BotUser{{TelegramID: 11, FullName: "Aziz Karimov"}}

	data, err := ActivitiesCSV(acts, users)
	if err != nil {
		t.Fatalf("ActivitiesCSV: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "user_id") || !strings.Contains(text, "created_at") {
		t.Errorf("missing header, got %q", text)
	}
	if !strings.Contains(text, "Aziz Karimov") {
		t.Errorf("user name not joined, got %q", text)
	}
	if !strings.Contains(text, domain.ActionExit) {
		t.Errorf("exit row missing, got %q", text)
	}
}

func TestSummarizeQuantities(t *testing.T) {
	s := SummarizeQuantities(nil)
	if s.Min != 0 || s.Max != 0 || s.Mean != 0 || s.Median != 0 {
		t.Errorf("empty summary not zero: %+v", s)
	}

	products := []domain.Product{
		{Name: "a", Quantity: 10},
		{Name: "b", Quantity: 20},
		{Name: "c", Quantity: 60},
	}
	s = SummarizeQuantities(products)
	if s.Min != 10 || s.Max != 60 {
		t.Errorf("min/max wrong: %+v", s)
	}
	if s.Mean != 30 {
		t.Errorf("mean = %v, want 30", s.Mean)
	}
	if s.Median != 20 {
		t.Errorf("median = %v, want 20", s.Median)
	}
}

func TestExportFilenames(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 15, 0, time.UTC)
	if got := WorkbookFilename(now); got != "ombor_hisoboti_20240510_093015.xlsx" {
		t.Errorf("WorkbookFilename = %q", got)
	}
	if got := CSVFilename(now); got != "faoliyat_20240510_093015.csv" {
		t.Errorf("CSVFilename = %q", got)
	}
}
