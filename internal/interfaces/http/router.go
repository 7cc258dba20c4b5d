package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/analytics"
	"github.com/jhoicas/Docuport-api/internal/application/auth"
	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/application/notify"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	SupplierUC  *usecase.SupplierUseCase
	UserUC      *usecase.UserUseCase
	TemplateUC  *usecase.TemplateUseCase
	SettingUC   *usecase.SettingUseCase
	InvoiceUC   *docs.InvoiceUseCase
	NoteUC      *docs.CreditNoteUseCase
	StatementUC *docs.StatementUseCase
	IngestUC    *ingest.UseCase
	EmailUC     *notify.EmailUseCase
	DashboardUC *analytics.DashboardUseCase
	Reload      ReloadNotifier
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público: login y verificación del segundo factor)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-2fa", authHandler.Verify2FA)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Gestión del segundo factor del usuario autenticado
	twofa := protected.Group("/auth/2fa")
	twofa.Post("/totp", authHandler.EnableTOTP)
	twofa.Post("/email", authHandler.EnableEmail2FA)
	twofa.Delete("/", authHandler.Disable2FA)

	adminOnly := RequireRole(entity.RoleAdmin)
	canManage := RequireRole(entity.RoleAdmin, entity.RoleGestor)

	// Companies (lectura para todos; escritura solo admin)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/tree", companyHandler.Tree)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", adminOnly, companyHandler.Create)
	companies.Put("/:id", adminOnly, companyHandler.Update)
	companies.Delete("/:id", adminOnly, companyHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Suppliers (lectura para todos; escritura admin/gestor)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", canManage, supplierHandler.Create)
	suppliers.Put("/:id", canManage, supplierHandler.Update)
	suppliers.Delete("/:id", canManage, supplierHandler.Delete)

	// Plantillas de extracción (lectura para todos; escritura admin/gestor)
	templates := protected.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Post("/", canManage, templateHandler.Create)
	templates.Put("/:id", canManage, templateHandler.Update)
	templates.Delete("/:id", canManage, templateHandler.Delete)

	// Documentos (lectura para todos; asignación de proveedor admin/gestor)
	documentHandler := NewDocumentHandler(deps.InvoiceUC, deps.NoteUC, deps.StatementUC)

	invoices := protected.Group("/invoices")
	invoices.Get("/", documentHandler.ListInvoices)
	invoices.Get("/:id", documentHandler.GetInvoice)
	invoices.Put("/:id/supplier", canManage, documentHandler.AssignInvoiceSupplier)

	notes := protected.Group("/credit-notes")
	notes.Get("/", documentHandler.ListCreditNotes)
	notes.Get("/:id", documentHandler.GetCreditNote)
	notes.Put("/:id/supplier", canManage, documentHandler.AssignCreditNoteSupplier)

	statements := protected.Group("/statements")
	statements.Get("/", documentHandler.ListStatements)
	statements.Get("/:id", documentHandler.GetStatement)
	statements.Get("/:id/summary.pdf", documentHandler.StatementPDF)
	statements.Put("/:id/supplier", canManage, documentHandler.AssignStatementSupplier)

	// Archivos (carga y reintento admin/gestor; lectura para todos)
	files := protected.Group("/files")
	fileHandler := NewFileHandler(deps.IngestUC)
	files.Get("/", fileHandler.List)
	files.Get("/:id", fileHandler.GetByID)
	files.Post("/upload", canManage, fileHandler.Upload)
	files.Post("/retry", canManage, fileHandler.RetryFailed)

	// Correo (solo admin)
	email := protected.Group("/email", adminOnly)
	emailHandler := NewEmailHandler(deps.EmailUC)
	email.Get("/templates", emailHandler.Templates)
	email.Put("/templates/:code", emailHandler.UpdateTemplate)
	email.Get("/logs", emailHandler.Logs)

	// Settings (solo admin)
	settings := protected.Group("/settings", adminOnly)
	settingHandler := NewSettingHandler(deps.SettingUC, deps.Reload)
	settings.Get("/", settingHandler.List)
	settings.Put("/", settingHandler.Update)

	// Dashboard (todos los autenticados)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
