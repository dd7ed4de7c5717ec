package dto

import "github.com/shopspring/decimal"

// MontosPorMetodo breaks an amount down by payment method.
type MontosPorMetodo struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Debito        decimal.Decimal `json:"debito"`
	Credito       decimal.Decimal `json:"credito"`
	Transferencia decimal.Decimal `json:"transferencia"`
	Total         decimal.Decimal `json:"total"`
}

// CerrarDiaRequest closes a business date. The declaration is blind: the
// expected amounts are only revealed in the response.
type CerrarDiaRequest struct {
	Fecha         string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Declaracion   MontosPorMetodo `json:"declaracion"`
	Observaciones *string         `json:"observaciones"`
}

type DesvioResponse struct {
	Monto         decimal.Decimal `json:"monto"`
	Porcentaje    decimal.Decimal `json:"porcentaje"`
	Clasificacion string          `json:"clasificacion"`
}

type CierreResponse struct {
	ID            string          `json:"id"`
	NumeroCierre  int             `json:"numero_cierre"`
	Fecha         string          `json:"fecha"`
	Esperado      MontosPorMetodo `json:"esperado"`
	Declarado     decimal.Decimal `json:"declarado"`
	Desvio        DesvioResponse  `json:"desvio"`
	Observaciones *string         `json:"observaciones,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
