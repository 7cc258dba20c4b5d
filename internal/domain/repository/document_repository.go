package repository

import (
	"time"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// DocumentFilter criterios comunes de listado de documentos.
type DocumentFilter struct {
	CompanyID  string
	SupplierID string
	Status     string
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByNumber busca por (empresa, proveedor, número) para detectar duplicados. nil si no existe.
	GetByNumber(companyID, supplierID, number string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	List(filter DocumentFilter) ([]*entity.Invoice, error)
	// ListExpired devuelve facturas no purgadas con IssueDate anterior al corte.
	ListExpired(companyID string, before time.Time) ([]*entity.Invoice, error)
	// SoftDelete marca la factura como purgada y fija DeletedAt.
	SoftDelete(id string, at time.Time) error
}

// CreditNoteRepository define el puerto de persistencia para CreditNote.
type CreditNoteRepository interface {
	Create(note *entity.CreditNote) error
	GetByID(id string) (*entity.CreditNote, error)
	GetByNumber(companyID, supplierID, number string) (*entity.CreditNote, error)
	Update(note *entity.CreditNote) error
	List(filter DocumentFilter) ([]*entity.CreditNote, error)
	ListExpired(companyID string, before time.Time) ([]*entity.CreditNote, error)
	SoftDelete(id string, at time.Time) error
}

// StatementRepository define el puerto de persistencia para Statement.
type StatementRepository interface {
	Create(statement *entity.Statement) error
	GetByID(id string) (*entity.Statement, error)
	GetByNumber(companyID, supplierID, number string) (*entity.Statement, error)
	Update(statement *entity.Statement) error
	List(filter DocumentFilter) ([]*entity.Statement, error)
	ListExpired(companyID string, before time.Time) ([]*entity.Statement, error)
	SoftDelete(id string, at time.Time) error
}
