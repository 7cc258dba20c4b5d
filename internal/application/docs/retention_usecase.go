package docs

import (
	"log"
	"time"

	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// PurgeReport resume una corrida de la purga por retención.
type PurgeReport struct {
	Invoices    int
	CreditNotes int
	Statements  int
	Files       int
}

// RetentionUseCase purga documentos cuya fecha supera la política de retención
// de su empresa. La purga es un soft delete más la eliminación del archivo físico.
type RetentionUseCase struct {
	companies  repository.CompanyRepository
	invoices   repository.InvoiceRepository
	notes      repository.CreditNoteRepository
	statements repository.StatementRepository
	files      repository.DocumentFileRepository
	remover    FileRemover
	policy     RetentionPolicy
}

// NewRetentionUseCase construye el caso de uso con sus puertos.
func NewRetentionUseCase(
	companies repository.CompanyRepository,
	invoices repository.InvoiceRepository,
	notes repository.CreditNoteRepository,
	statements repository.StatementRepository,
	files repository.DocumentFileRepository,
	remover FileRemover,
	policy RetentionPolicy,
) *RetentionUseCase {
	return &RetentionUseCase{
		companies:  companies,
		invoices:   invoices,
		notes:      notes,
		statements: statements,
		files:      files,
		remover:    remover,
		policy:     policy,
	}
}

// Purge recorre todas las empresas y purga los documentos vencidos según la
// retención de cada una (o la global si la empresa no define la suya). Un fallo
// sobre un documento no detiene la corrida: se registra y se continúa.
func (uc *RetentionUseCase) Purge() (PurgeReport, error) {
	companies, err := uc.companies.ListAll()
	if err != nil {
		return PurgeReport{}, err
	}

	var report PurgeReport
	now := time.Now()
	for _, company := range companies {
		days := company.RetentionDays
		if days <= 0 {
			days = uc.policy.RetentionDays()
		}
		cutoff := now.AddDate(0, 0, -days)

		expiredInvoices, err := uc.invoices.ListExpired(company.ID, cutoff)
		if err != nil {
			log.Printf("[PURGA][%s] error listando facturas vencidas: %v", company.ID, err)
			continue
		}
		for _, inv := range expiredInvoices {
			if err := uc.invoices.SoftDelete(inv.ID, now); err != nil {
				log.Printf("[PURGA][%s] error purgando factura %s: %v", company.ID, inv.ID, err)
				continue
			}
			report.Invoices++
			report.Files += uc.removeFile(inv.FileID)
		}

		expiredNotes, err := uc.notes.ListExpired(company.ID, cutoff)
		if err != nil {
			log.Printf("[PURGA][%s] error listando notas crédito vencidas: %v", company.ID, err)
			continue
		}
		for _, note := range expiredNotes {
			if err := uc.notes.SoftDelete(note.ID, now); err != nil {
				log.Printf("[PURGA][%s] error purgando nota crédito %s: %v", company.ID, note.ID, err)
				continue
			}
			report.CreditNotes++
			report.Files += uc.removeFile(note.FileID)
		}

		expiredStatements, err := uc.statements.ListExpired(company.ID, cutoff)
		if err != nil {
			log.Printf("[PURGA][%s] error listando estados de cuenta vencidos: %v", company.ID, err)
			continue
		}
		for _, st := range expiredStatements {
			if err := uc.statements.SoftDelete(st.ID, now); err != nil {
				log.Printf("[PURGA][%s] error purgando estado de cuenta %s: %v", company.ID, st.ID, err)
				continue
			}
			report.Statements++
			report.Files += uc.removeFile(st.FileID)
		}
	}
	return report, nil
}

// removeFile elimina el archivo físico y su registro. Devuelve 1 si se eliminó.
func (uc *RetentionUseCase) removeFile(fileID string) int {
	if fileID == "" {
		return 0
	}
	file, err := uc.files.GetByID(fileID)
	if err != nil || file == nil {
		return 0
	}
	if err := uc.remover.Remove(file.StoragePath); err != nil {
		log.Printf("[PURGA] error eliminando archivo %s (%s): %v", fileID, file.StoragePath, err)
		return 0
	}
	if err := uc.files.Delete(fileID); err != nil {
		log.Printf("[PURGA] error eliminando registro de archivo %s: %v", fileID, err)
		return 0
	}
	return 1
}
