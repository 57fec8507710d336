package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"capprice/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row, one row per scenario.
var columns = []string{
	"Simulation ID",
	"Created At",
	"Tier",
	"Scenario",
	"Kind",
	"Refinaria",
	"Origem",
	"Destino",
	"Produto",
	"Quantidade",
	"Preço Net",
	"Frete",
	"Impostos",
	"DIFAL",
	"CMV",
	"Margem",
	"Preço Final",
	"Distância (km)",
	"Has Report",
}

// Writer wraps csv.Writer for exporting simulations as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSimulations writes one row per scenario of each simulation. A simulation whose
// stored scenarios cannot be decoded still gets a row with its metadata.
func (w *Writer) WriteSimulations(sims []domain.Simulation) error {
	for i := range sims {
		for _, row := range simulationRows(&sims[i]) {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func simulationRows(sim *domain.Simulation) [][]string {
	meta := func() []string {
		row := make([]string, len(columns))
		row[0] = sim.ID.String()
		row[1] = sim.CreatedAt.Format(time.RFC3339)
		row[2] = string(sim.Tier)
		row[18] = formatBool(sim.HasReport())
		return row
	}

	var scenarios []domain.Scenario
	if err := json.Unmarshal(sim.Scenarios, &scenarios); err != nil || len(scenarios) == 0 {
		return [][]string{meta()}
	}

	rows := make([][]string, 0, len(scenarios))
	for i := range scenarios {
		s := &scenarios[i]
		row := meta()
		row[3] = strconv.Itoa(i + 1)
		row[4] = string(s.Kind)
		row[5] = s.Refinery
		row[6] = s.Origin
		row[7] = s.Destination
		row[8] = s.Product
		row[9] = formatNumber(s.Quantity)
		row[10] = formatMoney(s.NetPrice)
		row[11] = formatMoney(s.Freight)
		row[12] = formatMoney(s.Taxes)
		row[13] = formatMoney(s.Difal)
		row[14] = formatMoney(s.COGS)
		row[15] = formatNumber(s.Margin)
		row[16] = formatMoney(s.FinalPrice)
		row[17] = formatNumber(s.DistanceKm)
		rows = append(rows, row)
	}
	return rows
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// BuildFilename returns the Content-Disposition filename for an export made at t.
// Format: simulacoes_{YYYY-MM-DD}.csv
func BuildFilename(t time.Time) string {
	return fmt.Sprintf("simulacoes_%s.csv", t.Format("2006-01-02"))
}
