package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/scandata"
)

const (
	DefaultReportTitle = "Nmap Scan Report"
	DefaultReportFile  = "nmap_scan_report.pdf"
)

// ReportOptions controls the PDF layout.
type ReportOptions struct {
	Title string
	// ShowExtra adds an extra-info column to port tables.
	ShowExtra bool
}

var headerFill = [3]int{66, 135, 245}

// WriteReport renders hosts as a PDF: a cover page with the host count, then
// one page per host with its open ports.
func WriteReport(w io.Writer, hosts []scandata.Host, opts ReportOptions) error {
	pdf := buildReport(hosts, opts)
	if err := pdf.Output(w); err != nil {
		return errors.WrapExportError("PDF rendering failed", "report", err)
	}
	return nil
}

func buildReport(hosts []scandata.Host, opts ReportOptions) *fpdf.Fpdf {
	title := opts.Title
	if title == "" {
		title = DefaultReportTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("scanview", true)
	// Core fonts are cp1252; scan data is UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, tr(title))
	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total number of hosts: %d", len(hosts)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total number of open ports: %d", scandata.TotalPorts(hosts)))

	columns := []string{"Port", "Service", "Product", "Version"}
	widths := []float64{25, 45, 60, 60}
	if opts.ShowExtra {
		widths = []float64{20, 35, 45, 40, 50}
		columns = append(columns, "Extra")
	}

	for _, h := range hosts {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, tr("Host: "+h.Hostname))
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 7, "IP: "+h.IP)
		pdf.Ln(7)
		pdf.Cell(0, 7, "Number of open ports: "+strconv.Itoa(h.PortCount()))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		pdf.SetTextColor(255, 255, 255)
		for i, col := range columns {
			pdf.CellFormat(widths[i], 8, col, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, p := range h.PortDetails {
			row := []string{p.Label(), p.Service, p.Product, p.Version}
			if opts.ShowExtra {
				row = append(row, p.ExtraInfo)
			}
			for i, cell := range row {
				pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	return pdf
}

// WriteReportFile renders the report into path.
func WriteReportFile(path string, hosts []scandata.Host, opts ReportOptions) (err error) {
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return errors.WrapExportError("cannot create report file", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapExportError("cannot close report file", path, cerr)
		}
	}()

	if err := WriteReport(f, hosts, opts); err != nil {
		return errors.WrapExportError("cannot write report file", path, err)
	}
	return nil
}
