package dto

import "github.com/shopspring/decimal"

// VentaPorMesero aggregates a waiter's paid tickets for one day.
type VentaPorMesero struct {
	MeseroID string          `json:"mesero_id"`
	Mesero   string          `json:"mesero"`
	Tickets  int             `json:"tickets"`
	Total    decimal.Decimal `json:"total"`
}

// VentaPorPlato aggregates units sold per plate for one day.
type VentaPorPlato struct {
	PlatoID  string          `json:"plato_id"`
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

// ResumenDiarioResponse is the daily sales summary projection.
type ResumenDiarioResponse struct {
	Fecha        string           `json:"fecha"`
	Tickets      int64            `json:"tickets"`
	Total        decimal.Decimal  `json:"total"`
	PorMetodo    MontosPorMetodo  `json:"por_metodo"`
	PorMesero    []VentaPorMesero `json:"por_mesero"`
	PorPlato     []VentaPorPlato  `json:"por_plato"`
	ItemsAnulados int64           `json:"items_anulados"`
}
