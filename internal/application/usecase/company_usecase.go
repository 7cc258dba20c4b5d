package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas, incluida la jerarquía.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el NIT ya existe
// y domain.ErrNotFound si el padre indicado no existe.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, _ := uc.repo.GetByNIT(in.NIT)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		ParentID:      in.ParentID,
		Name:          in.Name,
		NIT:           in.NIT,
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		Status:        "active",
		RetentionDays: in.RetentionDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// Update actualiza campos editables de una empresa.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	if in.Address != "" {
		company.Address = in.Address
	}
	if in.Phone != "" {
		company.Phone = in.Phone
	}
	if in.Email != "" {
		company.Email = in.Email
	}
	if in.Status != "" {
		company.Status = in.Status
	}
	if in.RetentionDays != nil {
		company.RetentionDays = *in.RetentionDays
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Tree arma el árbol jerárquico completo de empresas (raíces con hijos anidados).
// Los hijos se ordenan por nombre para que el filtro del frontend sea estable.
func (uc *CompanyUseCase) Tree() ([]dto.CompanyTreeNode, error) {
	all, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}

	children := make(map[string][]*entity.Company)
	byID := make(map[string]*entity.Company, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	var roots []*entity.Company
	for _, c := range all {
		// Un padre borrado o fuera del listado convierte al hijo en raíz visible.
		if c.ParentID == "" || byID[c.ParentID] == nil {
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	var build func(c *entity.Company) dto.CompanyTreeNode
	build = func(c *entity.Company) dto.CompanyTreeNode {
		node := dto.CompanyTreeNode{ID: c.ID, Name: c.Name, NIT: c.NIT, Status: c.Status}
		kids := children[c.ID]
		sort.Slice(kids, func(i, j int) bool { return kids[i].Name < kids[j].Name })
		for _, k := range kids {
			node.Children = append(node.Children, build(k))
		}
		return node
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Name < roots[j].Name })
	out := make([]dto.CompanyTreeNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out, nil
}

// Delete elimina una empresa si no tiene filiales.
func (uc *CompanyUseCase) Delete(id string) error {
	kids, err := uc.repo.ListChildren(id)
	if err != nil {
		return err
	}
	if len(kids) > 0 {
		return domain.ErrConflict // primero reubicar o eliminar las filiales
	}
	return uc.repo.Delete(id)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		ParentID:      c.ParentID,
		Name:          c.Name,
		NIT:           c.NIT,
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		Status:        c.Status,
		RetentionDays: c.RetentionDays,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
