package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"comandapos/internal/model"
)

// Formato térmico de 74x200 mm, el de las impresoras de mostrador.
const (
	ticketAncho = 74.0
	ticketAlto  = 200.0
)

// GenerarTicketPDF escribe el comprobante del ticket en dir y devuelve la ruta
// del archivo generado.
func GenerarTicketPDF(t *model.Ticket, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: ticketAncho, Ht: ticketAlto},
	})
	pdf.SetMargins(4, 6, 4)
	pdf.AddPage()
	util := ticketAncho - 8

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(util, 6, "COMANDA POS", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(util, 4, fmt.Sprintf("Ticket N° %d", t.NumeroTicket), "", 1, "C", false, 0, "")
	if t.FechaPago != nil {
		pdf.CellFormat(util, 4, t.FechaPago.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(4, pdf.GetY(), ticketAncho-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(util*0.55, 4, "Detalle", "", 0, "L", false, 0, "")
	pdf.CellFormat(util*0.15, 4, "Cant", "", 0, "R", false, 0, "")
	pdf.CellFormat(util*0.30, 4, "Importe", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, item := range t.Items {
		pdf.CellFormat(util*0.55, 4, recortar(item.Nombre, 24), "", 0, "L", false, 0, "")
		pdf.CellFormat(util*0.15, 4, fmt.Sprintf("%d", item.Cantidad), "", 0, "R", false, 0, "")
		pdf.CellFormat(util*0.30, 4, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), ticketAncho-4, pdf.GetY())
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(util*0.6, 5, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(util*0.4, 5, "$"+t.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, pago := range t.Pagos {
		pdf.CellFormat(util*0.6, 4, pago.Metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(util*0.4, 4, "$"+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if t.Vuelto.IsPositive() {
		pdf.CellFormat(util*0.6, 4, "vuelto", "", 0, "L", false, 0, "")
		pdf.CellFormat(util*0.4, 4, "$"+t.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(util, 4, "Gracias por su visita", "", 1, "C", false, 0, "")

	path := filepath.Join(dir, fmt.Sprintf("ticket-%d.pdf", t.NumeroTicket))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}

func recortar(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
