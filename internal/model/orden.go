package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Orden estados.
const (
	OrdenPendiente = "pendiente"
	OrdenEnCobro   = "en_cobro"
	OrdenPagada    = "pagada"
	OrdenAnulada   = "anulada"
)

var (
	// ErrItemAnulado is returned when an operation targets a cancelled item.
	ErrItemAnulado = errors.New("el item está anulado")
	// ErrItemEnAnulacion is returned when the item has a pending cancellation request.
	ErrItemEnAnulacion = errors.New("el item tiene una anulación pendiente")
	// ErrCanalInvalido is returned for a dispatch channel other than bar/cocina.
	ErrCanalInvalido = errors.New("canal de despacho inválido")
)

// Orden is a table's running tab: line items accumulated until the order is
// sent to checkout and paid, or cancelled.
//
// Estado machine: pendiente → en_cobro → pagada; pendiente → anulada.
// pagada and anulada are terminal.
type Orden struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroOrden int       `gorm:"uniqueIndex;not null"`
	MesaID      uuid.UUID `gorm:"type:uuid;not null;index"`
	MeseroID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// AnulacionCompletaPendiente blocks dispatch and checkout while a
	// whole-order cancellation request awaits resolution.
	AnulacionCompletaPendiente bool `gorm:"not null;default:false"`
	// AvisoRechazo carries the admin's reason when a whole-order cancellation
	// was rejected, until the requesting waiter marks it seen.
	AvisoRechazo      *string
	AvisoRechazoVisto bool `gorm:"not null;default:true"`
	FechaPago         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items  []OrdenItem `gorm:"foreignKey:OrdenID"`
	Mesa   *Mesa       `gorm:"foreignKey:MesaID"`
	Mesero *Usuario    `gorm:"foreignKey:MeseroID"`
}

// OrdenItem is one line of an order. Identity within the order is positional
// (Indice); there is no global item identity.
type OrdenItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_orden_item_indice"`
	Indice  int       `gorm:"not null;uniqueIndex:idx_orden_item_indice"`

	PlatoID        uuid.UUID       `gorm:"type:uuid;not null"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descuento      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Comentarios    *string

	Anulado         bool `gorm:"not null;default:false"`
	MotivoAnulacion *string
	AnuladoPor      *string
	FechaAnulacion  *time.Time

	DespachadoBar       bool `gorm:"not null;default:false"`
	DespachadoBarPor    *string
	FechaDespachoBar    *time.Time
	DespachadoCocina    bool `gorm:"not null;default:false"`
	DespachadoCocinaPor *string
	FechaDespachoCocina *time.Time

	EnProcesoAnulacion bool `gorm:"not null;default:false"`
	AvisoRechazo       *string
	AvisoRechazoVisto  bool `gorm:"not null;default:true"`

	CreatedAt time.Time

	Plato *Plato `gorm:"foreignKey:PlatoID"`
}

// TableName overrides GORM's default pluralization (orden_items → orden_items is fine,
// but ordens → ordenes is not).
func (Orden) TableName() string { return "ordenes" }

// LineaTotal is the item's contribution to the order total.
func (i *OrdenItem) LineaTotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad))).Sub(i.Descuento)
}

// Despachado reports whether the item was already dispatched on the given channel.
func (i *OrdenItem) Despachado(canal string) bool {
	switch canal {
	case CanalBar:
		return i.DespachadoBar
	case CanalCocina:
		return i.DespachadoCocina
	}
	return false
}

// MarcarDespachado flags the item as prepared/served on the given channel.
// Cancelled items are refused (the boards filter them out, but the mutation
// itself must also refuse), as are items with a pending cancellation request.
func (i *OrdenItem) MarcarDespachado(canal, usuario string, cuando time.Time) error {
	if i.Anulado {
		return ErrItemAnulado
	}
	if i.EnProcesoAnulacion {
		return ErrItemEnAnulacion
	}
	switch canal {
	case CanalBar:
		i.DespachadoBar = true
		i.DespachadoBarPor = &usuario
		i.FechaDespachoBar = &cuando
	case CanalCocina:
		i.DespachadoCocina = true
		i.DespachadoCocinaPor = &usuario
		i.FechaDespachoCocina = &cuando
	default:
		return ErrCanalInvalido
	}
	return nil
}

// Anular voids the item with audit fields and clears the in-process flag.
func (i *OrdenItem) Anular(motivo, admin string, cuando time.Time) {
	i.Anulado = true
	i.MotivoAnulacion = &motivo
	i.AnuladoPor = &admin
	i.FechaAnulacion = &cuando
	i.EnProcesoAnulacion = false
}

// RegistrarRechazo clears the in-process flag and leaves a rejection notice
// visible to the requester until acknowledged.
func (i *OrdenItem) RegistrarRechazo(motivoAdmin string) {
	i.EnProcesoAnulacion = false
	i.AvisoRechazo = &motivoAdmin
	i.AvisoRechazoVisto = false
}

// ItemPorIndice returns the item at the given position, or nil when out of bounds.
func (o *Orden) ItemPorIndice(indice int) *OrdenItem {
	for idx := range o.Items {
		if o.Items[idx].Indice == indice {
			return &o.Items[idx]
		}
	}
	return nil
}

// ItemsActivos returns the non-cancelled items.
func (o *Orden) ItemsActivos() []OrdenItem {
	activos := make([]OrdenItem, 0, len(o.Items))
	for _, item := range o.Items {
		if !item.Anulado {
			activos = append(activos, item)
		}
	}
	return activos
}

// TieneAnulacionPendiente reports whether the order or any of its items has a
// cancellation request awaiting resolution. Dispatch and payment must refuse
// while this holds.
func (o *Orden) TieneAnulacionPendiente() bool {
	if o.AnulacionCompletaPendiente {
		return true
	}
	for _, item := range o.Items {
		if item.EnProcesoAnulacion {
			return true
		}
	}
	return false
}

// RecomputeTotal recalculates Total from the active items. Must be called
// after every mutation that changes an item's cancellation status.
func (o *Orden) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Items {
		if o.Items[idx].Anulado {
			continue
		}
		total = total.Add(o.Items[idx].LineaTotal())
	}
	o.Total = total
	return total
}

// EsTerminal reports whether no further state transition is allowed.
func (o *Orden) EsTerminal() bool {
	return o.Estado == OrdenPagada || o.Estado == OrdenAnulada
}
