package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// fakeCompanyRepo repositorio en memoria para los tests del caso de uso.
type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(cs ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range cs {
		r.companies[c.ID] = c
	}
	return r
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { f.companies[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}
func (f *fakeCompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.NIT == nit {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCompanyRepo) Update(c *entity.Company) error { f.companies[c.ID] = c; return nil }
func (f *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	return f.listAll(), nil
}
func (f *fakeCompanyRepo) ListAll() ([]*entity.Company, error) { return f.listAll(), nil }
func (f *fakeCompanyRepo) ListChildren(parentID string) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCompanyRepo) Delete(id string) error { delete(f.companies, id); return nil }

func (f *fakeCompanyRepo) listAll() []*entity.Company {
	out := make([]*entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyCreate_NITDuplicado(t *testing.T) {
	repo := newFakeCompanyRepo(&entity.Company{ID: "c1", Name: "Holding", NIT: "900111222"})
	uc := usecase.NewCompanyUseCase(repo)

	_, err := uc.Create(dto.CreateCompanyRequest{Name: "Otra", NIT: "900111222"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyCreate_PadreInexistente(t *testing.T) {
	uc := usecase.NewCompanyUseCase(newFakeCompanyRepo())

	_, err := uc.Create(dto.CreateCompanyRequest{Name: "Filial", NIT: "900333444", ParentID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyCreate_ConPadre(t *testing.T) {
	repo := newFakeCompanyRepo(&entity.Company{ID: "c1", Name: "Holding", NIT: "900111222"})
	uc := usecase.NewCompanyUseCase(repo)

	out, err := uc.Create(dto.CreateCompanyRequest{Name: "Filial", NIT: "900333444", ParentID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", out.ParentID)
	assert.Equal(t, "active", out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tree
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyTree_AnidaYOrdena(t *testing.T) {
	repo := newFakeCompanyRepo(
		&entity.Company{ID: "root", Name: "Holding Andina", NIT: "1"},
		&entity.Company{ID: "b", ParentID: "root", Name: "Bodega Sur", NIT: "2"},
		&entity.Company{ID: "a", ParentID: "root", Name: "Almacén Norte", NIT: "3"},
		&entity.Company{ID: "leaf", ParentID: "a", Name: "Sede Centro", NIT: "4"},
	)
	uc := usecase.NewCompanyUseCase(repo)

	tree, err := uc.Tree()
	require.NoError(t, err)
	require.Len(t, tree, 1, "una sola raíz")

	root := tree[0]
	assert.Equal(t, "Holding Andina", root.Name)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Almacén Norte", root.Children[0].Name, "hijos ordenados por nombre")
	assert.Equal(t, "Bodega Sur", root.Children[1].Name)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "Sede Centro", root.Children[0].Children[0].Name)
}

func TestCompanyTree_PadreDesaparecido_HijoComoRaiz(t *testing.T) {
	repo := newFakeCompanyRepo(
		&entity.Company{ID: "x", ParentID: "borrado", Name: "Huérfana", NIT: "9"},
	)
	uc := usecase.NewCompanyUseCase(repo)

	tree, err := uc.Tree()
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Huérfana", tree[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyDelete_ConFiliales_Rechazado(t *testing.T) {
	repo := newFakeCompanyRepo(
		&entity.Company{ID: "root", Name: "Holding", NIT: "1"},
		&entity.Company{ID: "kid", ParentID: "root", Name: "Filial", NIT: "2"},
	)
	uc := usecase.NewCompanyUseCase(repo)

	err := uc.Delete("root")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
