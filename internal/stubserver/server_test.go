package stubserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suteetoe/stockmobile/internal/model"
	"github.com/suteetoe/stockmobile/pkg/jwtutil"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	s := New(Options{Signer: jwtutil.NewSigner("test", time.Hour)})
	require.NoError(t, s.AddUser("Ana", "ana@example.com", "secret"))

	token, err := s.signer.GenerateToken("ana@example.com", 1, "Ana")
	require.NoError(t, err)
	return s, token
}

func do(t *testing.T, s *Server, method, target, token string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/auth/login", "", []byte(`{"email":"ana@example.com","password":"secret"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out["token"])

	rec = do(t, s, http.MethodPost, "/auth/login", "", []byte(`{"email":"ana@example.com","password":"wrong"}`), "application/json")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	s, _ := newTestServer(t)
	body := []byte(`{"name":"Bia","email":"bia@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/auth/register", "", body, "application/json").Code)
	assert.Equal(t, http.StatusConflict, do(t, s, http.MethodPost, "/auth/register", "", body, "application/json").Code)
}

func TestProductRoutesRequireToken(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/produtos/listAll", "", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/produtos/listAll", "garbage", nil, "").Code)
}

func TestProductLifecycle(t *testing.T) {
	s, token := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/produtos/save", token,
		[]byte(`{"nome":"Caneta","descricao":"Azul","categoria":"Papelaria","quantidadeEstoque":10,"precoDeCusto":0.5,"precoDeVenda":1.2}`),
		"application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.ID)

	rec = do(t, s, http.MethodGet, "/produtos/findByNameOrCategory?categoria=papelaria", token, nil, "")
	var found []model.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Len(t, found, 1)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/produtos/delete/1", token, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/produtos/delete/1", token, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/produtos/findById/1", token, nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/produtos/findById/abc", token, nil, "").Code)
}

func TestUploadThenFetchImage(t *testing.T) {
	s, token := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("imagem", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := do(t, s, http.MethodPost, "/produtos/uploadImage", token, buf.Bytes(), w.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out["caminhoImagem"], ".png")

	rec = do(t, s, http.MethodGet, "/api/images/"+out["caminhoImagem"], token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestFindProductsMatchesNameOrCategory(t *testing.T) {
	st := NewStore()
	st.SaveProduct(model.ProductDTO{Nome: "Caneta Azul", Categoria: "Papelaria"})
	st.SaveProduct(model.ProductDTO{Nome: "Caderno", Categoria: "Papelaria"})
	st.SaveProduct(model.ProductDTO{Nome: "Cafe", Categoria: "Mercearia"})

	assert.Len(t, st.FindProducts("caneta", ""), 1)
	assert.Len(t, st.FindProducts("", "papelaria"), 2)
	assert.Len(t, st.FindProducts("cafe", "papelaria"), 3)
	assert.Len(t, st.FindProducts("", ""), 3)
}

func TestUpdateRejectsInvalidProduct(t *testing.T) {
	s, token := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/produtos/save", token,
		[]byte(`{"nome":"Caneta","categoria":"Papelaria","quantidadeEstoque":10,"precoDeCusto":0.5,"precoDeVenda":1.2}`),
		"application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	for name, body := range map[string]string{
		"negative stock": `{"nome":"Caneta","quantidadeEstoque":-1,"precoDeCusto":0.5,"precoDeVenda":1.2}`,
		"negative price": `{"nome":"Caneta","quantidadeEstoque":1,"precoDeCusto":-0.5,"precoDeVenda":1.2}`,
		"missing name":   `{"quantidadeEstoque":1,"precoDeCusto":0.5,"precoDeVenda":1.2}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPut, "/produtos/atualizar/1", token, []byte(body), "application/json")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	product, err := s.Store().FindProduct(1)
	require.NoError(t, err)
	assert.Equal(t, 10, product.QuantidadeEstoque)
}
