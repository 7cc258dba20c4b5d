package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/match"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// UseCase orquesta el ingreso de documentos: guardado del archivo, extracción
// según plantilla, resolución del proveedor y registro del documento.
type UseCase struct {
	files     repository.DocumentFileRepository
	suppliers repository.SupplierRepository
	companies repository.CompanyRepository
	templates repository.TemplateRepository
	store     FileStore
	extractor Extractor
	matcher   *match.Matcher
	notifier  Notifier
	tx        TxRunner
	sources   []DocumentSource
}

// NewUseCase construye el orquestador de ingreso.
func NewUseCase(
	files repository.DocumentFileRepository,
	suppliers repository.SupplierRepository,
	companies repository.CompanyRepository,
	templates repository.TemplateRepository,
	store FileStore,
	extractor Extractor,
	matcher *match.Matcher,
	notifier Notifier,
	tx TxRunner,
	sources ...DocumentSource,
) *UseCase {
	return &UseCase{
		files:     files,
		suppliers: suppliers,
		companies: companies,
		templates: templates,
		store:     store,
		extractor: extractor,
		matcher:   matcher,
		notifier:  notifier,
		tx:        tx,
		sources:   sources,
	}
}

// IngestUpload procesa un archivo cargado manualmente desde el portal.
// Devuelve domain.ErrDuplicate si el mismo contenido ya fue ingresado y
// domain.ErrUnsupportedFile si la extensión no está soportada.
func (uc *UseCase) IngestUpload(ctx context.Context, companyID, filename string, content []byte) (*dto.UploadResponse, error) {
	fileKind := fileKindFromName(filename)
	if fileKind == "" {
		return nil, domain.ErrUnsupportedFile
	}

	hash := contentHash(content)
	existing, err := uc.files.GetBySHA256(hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	file, err := uc.storeFile(companyID, filename, content, hash, entity.FileSourceUpload)
	if err != nil {
		return nil, err
	}
	return uc.process(ctx, file, fileKind), nil
}

// ScanReport resume una corrida de escaneo de orígenes.
type ScanReport struct {
	Pulled     int
	Ingested   int
	Duplicates int
	Failed     int
}

// Scan recorre los orígenes configurados (carpeta, FTP) e ingresa los archivos
// pendientes. Cada archivo vive en un subdirectorio nombrado con el NIT de la
// empresa destino. Un archivo procesado (o duplicado) se retira del origen;
// uno con empresa desconocida se deja en su lugar para revisión.
func (uc *UseCase) Scan(ctx context.Context) ScanReport {
	var report ScanReport
	for _, source := range uc.sources {
		incoming, err := source.Pull(ctx)
		if err != nil {
			log.Printf("[INGRESO][%s] error escaneando origen: %v", source.Name(), err)
			continue
		}
		report.Pulled += len(incoming)

		for _, in := range incoming {
			switch uc.ingestScanned(ctx, source, in) {
			case scanIngested:
				report.Ingested++
			case scanDuplicate:
				report.Duplicates++
			case scanFailed:
				report.Failed++
			}
		}
	}
	return report
}

type scanOutcome int

const (
	scanIngested scanOutcome = iota
	scanDuplicate
	scanFailed
	scanSkipped
)

func (uc *UseCase) ingestScanned(ctx context.Context, source DocumentSource, in IncomingFile) scanOutcome {
	fileKind := fileKindFromName(in.Name)
	if fileKind == "" {
		log.Printf("[INGRESO][%s] %s: extensión no soportada, se deja en el origen", source.Name(), in.Name)
		return scanSkipped
	}

	company, err := uc.companies.GetByNIT(in.NIT)
	if err != nil || company == nil {
		log.Printf("[INGRESO][%s] %s: empresa con NIT %q desconocida, se deja en el origen", source.Name(), in.Name, in.NIT)
		return scanSkipped
	}

	hash := contentHash(in.Content)
	existing, err := uc.files.GetBySHA256(hash)
	if err != nil {
		log.Printf("[INGRESO][%s] %s: error consultando duplicados: %v", source.Name(), in.Name, err)
		return scanFailed
	}
	if existing != nil {
		// Ya ingresado antes: retirar del origen para no reescanearlo.
		if err := source.Discard(ctx, in.NIT, in.Name); err != nil {
			log.Printf("[INGRESO][%s] %s: error retirando duplicado: %v", source.Name(), in.Name, err)
		}
		return scanDuplicate
	}

	file, err := uc.storeFile(company.ID, in.Name, in.Content, hash, source.Name())
	if err != nil {
		log.Printf("[INGRESO][%s] %s: error guardando archivo: %v", source.Name(), in.Name, err)
		return scanFailed
	}

	result := uc.process(ctx, file, fileKind)
	if err := source.Discard(ctx, in.NIT, in.Name); err != nil {
		log.Printf("[INGRESO][%s] %s: error retirando archivo procesado: %v", source.Name(), in.Name, err)
	}
	if result.Status == entity.FileStatusFailed {
		return scanFailed
	}
	return scanIngested
}

// RetryFailed reintenta la extracción de los archivos en estado failed (por
// ejemplo tras crear la plantilla que faltaba).
func (uc *UseCase) RetryFailed(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 50
	}
	failed, err := uc.files.ListByStatus(entity.FileStatusFailed, limit, 0)
	if err != nil {
		return 0, err
	}
	recovered := 0
	for _, file := range failed {
		fileKind := fileKindFromName(file.OriginalName)
		if fileKind == "" {
			continue
		}
		if result := uc.process(ctx, file, fileKind); result.Status == entity.FileStatusParsed {
			recovered++
		}
	}
	return recovered, nil
}

// storeFile persiste el contenido en el almacén y crea el registro del archivo.
func (uc *UseCase) storeFile(companyID, name string, content []byte, hash, source string) (*entity.DocumentFile, error) {
	path, err := uc.store.Save(name, content)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	file := &entity.DocumentFile{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		OriginalName: name,
		StoragePath:  path,
		SHA256:       hash,
		SizeBytes:    int64(len(content)),
		Source:       source,
		Status:       entity.FileStatusStored,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.files.Create(file); err != nil {
		return nil, err
	}
	return file, nil
}

// process intenta extraer y registrar el documento de un archivo ya guardado.
// Nunca devuelve error: el resultado queda en el estado del archivo.
func (uc *UseCase) process(ctx context.Context, file *entity.DocumentFile, fileKind string) *dto.UploadResponse {
	resp := &dto.UploadResponse{FileID: file.ID}

	templates, err := uc.templates.ListActive(file.CompanyID, fileKind)
	if err != nil {
		uc.markFailed(file, "error consultando plantillas: "+err.Error())
		resp.Status, resp.Error = file.Status, file.Error
		return resp
	}
	if len(templates) == 0 {
		uc.markFailed(file, domain.ErrNoTemplate.Error())
		resp.Status, resp.Error = file.Status, file.Error
		return resp
	}

	fullPath := uc.store.FullPath(file.StoragePath)
	var lastErr error
	for _, tpl := range templates {
		fields, err := uc.extractor.Extract(fullPath, tpl)
		if err != nil {
			lastErr = err
			continue
		}
		docID, docStatus, err := uc.register(ctx, file, tpl, fields)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Status = file.Status
		resp.DocType = tpl.DocType
		resp.DocumentID = docID
		resp.DocStatus = docStatus
		return resp
	}

	msg := "ninguna plantilla produjo un documento válido"
	if lastErr != nil {
		msg += ": " + lastErr.Error()
	}
	uc.markFailed(file, msg)
	resp.Status, resp.Error = file.Status, file.Error
	return resp
}

// register crea el documento según el tipo de la plantilla y marca el archivo
// como parsed, todo dentro de una transacción. Devuelve el ID del documento y
// su estado (registered o needs_review).
func (uc *UseCase) register(ctx context.Context, file *entity.DocumentFile, tpl *entity.ParseTemplate, fields map[string]string) (string, string, error) {
	supplier := uc.resolveSupplier(file.CompanyID, tpl, fields)

	supplierID := ""
	status := entity.DocStatusNeedsReview
	if supplier != nil {
		supplierID = supplier.ID
		status = entity.DocStatusRegistered
	}

	now := time.Now()
	var docID, number, total string

	err := uc.tx.Run(ctx, func(
		files repository.DocumentFileRepository,
		invoices repository.InvoiceRepository,
		notes repository.CreditNoteRepository,
		statements repository.StatementRepository,
	) error {
		switch tpl.DocType {
		case entity.DocTypeInvoice:
			inv, err := buildInvoice(fields)
			if err != nil {
				return err
			}
			if supplierID != "" {
				dup, err := invoices.GetByNumber(file.CompanyID, supplierID, inv.Number)
				if err != nil {
					return err
				}
				if dup != nil {
					return domain.ErrDuplicate
				}
			}
			inv.ID = uuid.New().String()
			inv.CompanyID = file.CompanyID
			inv.SupplierID = supplierID
			inv.FileID = file.ID
			inv.Status = status
			inv.CreatedAt, inv.UpdatedAt = now, now
			if err := invoices.Create(inv); err != nil {
				return err
			}
			docID, number, total = inv.ID, inv.Number, inv.GrandTotal.StringFixed(2)

		case entity.DocTypeCreditNote:
			note, err := buildCreditNote(fields)
			if err != nil {
				return err
			}
			if supplierID != "" {
				dup, err := notes.GetByNumber(file.CompanyID, supplierID, note.Number)
				if err != nil {
					return err
				}
				if dup != nil {
					return domain.ErrDuplicate
				}
			}
			note.ID = uuid.New().String()
			note.CompanyID = file.CompanyID
			note.SupplierID = supplierID
			note.FileID = file.ID
			note.Status = status
			note.CreatedAt, note.UpdatedAt = now, now
			if err := notes.Create(note); err != nil {
				return err
			}
			docID, number, total = note.ID, note.Number, note.Total.StringFixed(2)

		case entity.DocTypeStatement:
			st, err := buildStatement(fields)
			if err != nil {
				return err
			}
			if supplierID != "" {
				dup, err := statements.GetByNumber(file.CompanyID, supplierID, st.Number)
				if err != nil {
					return err
				}
				if dup != nil {
					return domain.ErrDuplicate
				}
			}
			st.ID = uuid.New().String()
			st.CompanyID = file.CompanyID
			st.SupplierID = supplierID
			st.FileID = file.ID
			st.Status = status
			st.CreatedAt, st.UpdatedAt = now, now
			if err := statements.Create(st); err != nil {
				return err
			}
			docID, number, total = st.ID, st.Number, st.ClosingBalance.StringFixed(2)

		default:
			return domain.ErrInvalidInput
		}

		file.Status = entity.FileStatusParsed
		file.Error = ""
		file.UpdatedAt = now
		return files.Update(file)
	})
	if err != nil {
		return "", "", err
	}

	uc.notifyRegistered(ctx, file.CompanyID, status, number, supplier, total)
	return docID, status, nil
}

// resolveSupplier resuelve el proveedor del documento: plantilla específica,
// luego código exacto, luego emparejamiento difuso por nombre. nil = sin resolver.
func (uc *UseCase) resolveSupplier(companyID string, tpl *entity.ParseTemplate, fields map[string]string) *entity.Supplier {
	if tpl.SupplierID != "" {
		if s, err := uc.suppliers.GetByID(tpl.SupplierID); err == nil && s != nil {
			return s
		}
		return nil
	}

	if code := fields[entity.FieldSupplierCode]; code != "" {
		if s, err := uc.suppliers.GetByCode(companyID, code); err == nil && s != nil {
			return s
		}
	}

	name := fields[entity.FieldSupplierName]
	if name == "" {
		return nil
	}
	candidates, err := uc.suppliers.ListActiveByCompany(companyID)
	if err != nil || len(candidates) == 0 {
		return nil
	}
	pool := make([]match.Candidate, 0, len(candidates))
	byID := make(map[string]*entity.Supplier, len(candidates))
	for _, s := range candidates {
		pool = append(pool, match.Candidate{ID: s.ID, Name: s.Name})
		byID[s.ID] = s
	}
	if best := uc.matcher.Best(name, pool); best != nil {
		return byID[best.ID]
	}
	return nil
}

// notifyRegistered encola la notificación que corresponda al estado final del
// documento: registro exitoso o solicitud de revisión manual.
func (uc *UseCase) notifyRegistered(ctx context.Context, companyID, status, number string, supplier *entity.Supplier, total string) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil || company == nil || company.Email == "" {
		return
	}
	supplierName := "(sin resolver)"
	if supplier != nil {
		supplierName = supplier.Name
	}
	template := entity.EmailTplDocumentRegistered
	if status == entity.DocStatusNeedsReview {
		template = entity.EmailTplDocumentReview
	}
	_, _ = uc.notifier.Queue(ctx, companyID, template, company.Email, map[string]string{
		"Number":       number,
		"SupplierName": supplierName,
		"Total":        total,
	})
}

func (uc *UseCase) markFailed(file *entity.DocumentFile, msg string) {
	file.Status = entity.FileStatusFailed
	file.Error = msg
	file.UpdatedAt = time.Now()
	if err := uc.files.Update(file); err != nil {
		log.Printf("[INGRESO] error marcando archivo %s como fallido: %v", file.ID, err)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
