package dto

import "time"

// UploadResponse salida de la carga manual de un archivo.
type UploadResponse struct {
	FileID      string `json:"file_id"`
	Status      string `json:"status"`                 // stored, parsed, failed
	DocType     string `json:"doc_type,omitempty"`     // tipo detectado, si se extrajo
	DocumentID  string `json:"document_id,omitempty"`  // ID del documento registrado
	DocStatus   string `json:"doc_status,omitempty"`   // registered, needs_review
	Error       string `json:"error,omitempty"`
}

// DocumentListQuery filtros de listado de documentos.
type DocumentListQuery struct {
	SupplierID string `query:"supplier_id"`
	Status     string `query:"status"`
	PageRequest
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	SupplierID string     `json:"supplier_id,omitempty"`
	FileID     string     `json:"file_id"`
	Number     string     `json:"number"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	NetTotal   string     `json:"net_total"`
	TaxTotal   string     `json:"tax_total"`
	GrandTotal string     `json:"grand_total"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreditNoteResponse salida de una nota crédito.
type CreditNoteResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	SupplierID    string    `json:"supplier_id,omitempty"`
	FileID        string    `json:"file_id"`
	Number        string    `json:"number"`
	IssueDate     time.Time `json:"issue_date"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreditNoteListResponse listado paginado de notas crédito.
type CreditNoteListResponse struct {
	Items []CreditNoteResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// StatementResponse salida de un estado de cuenta.
type StatementResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	SupplierID     string    `json:"supplier_id,omitempty"`
	FileID         string    `json:"file_id"`
	Number         string    `json:"number"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	OpeningBalance string    `json:"opening_balance"`
	ClosingBalance string    `json:"closing_balance"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// StatementListResponse listado paginado de estados de cuenta.
type StatementListResponse struct {
	Items []StatementResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// AssignSupplierRequest asignación manual de proveedor a un documento en revisión.
type AssignSupplierRequest struct {
	SupplierID string `json:"supplier_id" validate:"required,uuid"`
}

// FileResponse salida de un archivo ingresado.
type FileResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id,omitempty"`
	OriginalName string    `json:"original_name"`
	SHA256       string    `json:"sha256"`
	SizeBytes    int64     `json:"size_bytes"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileListResponse listado paginado de archivos.
type FileListResponse struct {
	Items []FileResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
