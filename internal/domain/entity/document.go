package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento que gestiona el portal.
const (
	DocTypeInvoice    = "invoice"
	DocTypeCreditNote = "credit_note"
	DocTypeStatement  = "statement"
)

// Estados del ciclo de vida de un documento.
const (
	DocStatusNeedsReview = "needs_review" // extraído pero sin proveedor resuelto (o campos dudosos)
	DocStatusRegistered  = "registered"   // registrado y notificado
	DocStatusPurged      = "purged"       // eliminado por la política de retención
)

// Invoice representa la cabecera de una factura recibida.
type Invoice struct {
	ID         string
	CompanyID  string
	SupplierID string // vacío mientras el documento esté en needs_review
	FileID     string // DocumentFile de origen
	Number     string
	IssueDate  time.Time
	DueDate    *time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Currency   string // ISO 4217, defecto COP
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // soft delete (retención)
}

// CreditNote representa una nota crédito recibida.
type CreditNote struct {
	ID             string
	CompanyID      string
	SupplierID     string
	FileID         string
	Number         string
	IssueDate      time.Time
	Total          decimal.Decimal
	Currency       string
	InvoiceNumber  string // número de la factura a la que aplica, si se conoce
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// Statement representa un estado de cuenta del proveedor para un período.
type Statement struct {
	ID             string
	CompanyID      string
	SupplierID     string
	FileID         string
	Number         string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Currency       string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
