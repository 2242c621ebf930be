package pipeline

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"pacesetter/internal"
	"pacesetter/internal/util"
)

// DefaultChunkRows bounds the number of data rows carried by one ChunkEvent.
const DefaultChunkRows = 1000

type RawSheet struct {
	Name string
	Rows [][]string
}

// Parse decodes a workbook-like blob on its own goroutine and streams
// progress events over the returned channel: one MetaEvent, chunks in
// sheet order, then DoneEvent, or a terminal ErrorEvent on any decode
// failure. The channel is closed after the terminal event.
func Parse(blob []byte, fileName string, chunkRows int) <-chan Event {
	if chunkRows <= 0 {
		chunkRows = DefaultChunkRows
	}
	out := make(chan Event)
	go func() {
		defer close(out)

		sheets, err := DecodeSheets(blob, fileName)
		if err != nil {
			out <- ErrorEvent{Message: fmt.Sprintf("decode %s: %v", fileName, err)}
			return
		}

		names := make([]string, 0, len(sheets))
		for _, s := range sheets {
			names = append(names, s.Name)
		}
		out <- MetaEvent{Name: fileName, SheetNames: names}

		for _, sheet := range sheets {
			emitSheet(out, fileName, sheet, chunkRows)
		}
		out <- DoneEvent{}
	}()
	return out
}

// ParseDummy synthesizes a fixed three-product dataset and emits the same
// event shape as Parse, with a single chunk.
func ParseDummy(name string) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		sheet := dummySheet()
		out <- MetaEvent{Name: name, SheetNames: []string{sheet.Name}}
		emitSheet(out, name, sheet, DefaultChunkRows)
		out <- DoneEvent{}
	}()
	return out
}

func emitSheet(out chan<- Event, fileName string, sheet RawSheet, chunkRows int) {
	if len(sheet.Rows) == 0 {
		return
	}

	headerIdx := DetectHeaderRow(sheet.Rows)
	headers := normalizeCells(sheet.Rows[headerIdx])
	data := sheet.Rows[headerIdx+1:]

	for start := 0; start < len(data); start += chunkRows {
		end := start + chunkRows
		if end > len(data) {
			end = len(data)
		}
		rows := make([]internal.Row, 0, end-start)
		for _, raw := range data[start:end] {
			row := internal.Row{}
			for i, h := range headers {
				if h == "" {
					continue
				}
				if i < len(raw) {
					row[h] = strings.TrimSpace(raw[i])
				} else {
					row[h] = ""
				}
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			continue
		}
		out <- ChunkEvent{
			FileName:       fileName,
			SheetName:      sheet.Name,
			HeaderRowIndex: headerIdx,
			Headers:        headers,
			Rows:           rows,
		}
	}
}

// DecodeSheets picks a decoder from the file name: HTML tables and PDF
// text lines are accepted alongside regular workbooks.
func DecodeSheets(blob []byte, fileName string) ([]RawSheet, error) {
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm"):
		return decodeHTML(blob)
	case strings.HasSuffix(lower, ".pdf"):
		return decodePDF(blob)
	default:
		return decodeWorkbook(blob)
	}
}

func decodeWorkbook(blob []byte) ([]RawSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := []RawSheet{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		out = append(out, RawSheet{Name: name, Rows: rows})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return out, nil
}

func decodeHTML(blob []byte) ([]RawSheet, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}

	out := []RawSheet{}
	doc.Find("table").Each(func(tableIdx int, table *goquery.Selection) {
		rows := [][]string{}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		if len(rows) >= 2 {
			out = append(out, RawSheet{Name: fmt.Sprintf("Table %d", tableIdx+1), Rows: rows})
		}
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("no tables found in document")
	}
	return out, nil
}

var reCellSplit = regexp.MustCompile(`\t|\s{2,}`)

func decodePDF(blob []byte) ([]RawSheet, error) {
	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}

	out := []RawSheet{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		rows := [][]string{}
		for _, line := range splitLines(text) {
			cells := normalizeCells(reCellSplit.Split(line, -1))
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		if len(rows) >= 2 {
			out = append(out, RawSheet{Name: fmt.Sprintf("Page %d", i), Rows: rows})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no tabular text found in pdf")
	}
	return out, nil
}

func dummySheet() RawSheet {
	return RawSheet{
		Name: "Products",
		Rows: [][]string{
			{"Product", "Category", "Transport_kgCO2e", "Materials_kgCO2e", "Production_kgCO2e", "Use_kWh_per_year"},
			{"Cooker A", "Cooking", "10", "80", "40", "95"},
			{"Fridge B", "Cooling", "12", "120", "60", "190"},
			{"Washer C", "Washing", "8", "90", "50", "150"},
		},
	}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, util.NormalizeSpaces(c))
	}
	return out
}
