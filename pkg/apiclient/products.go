package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/model"
)

const (
	productsPath      = "/produtos"
	saveProductPath   = productsPath + "/save"
	listProductsPath  = productsPath + "/listAll"
	findProductsPath  = productsPath + "/findByNameOrCategory"
	findByIDPath      = productsPath + "/findById/%d"
	updateProductPath = productsPath + "/atualizar/%d"
	deleteProductPath = productsPath + "/delete/%d"
	uploadImagePath   = productsPath + "/uploadImage"
)

// SearchFilter narrows a product search. Empty fields are not sent.
type SearchFilter struct {
	Name     string
	Category string
}

func (f SearchFilter) query() url.Values {
	q := url.Values{}
	if f.Name != "" {
		q.Set("nome", f.Name)
	}
	if f.Category != "" {
		q.Set("categoria", f.Category)
	}
	return q
}

// ProductClient performs product operations against the inventory service
type ProductClient struct {
	t *transport
}

func NewProductClient(opts Options) *ProductClient {
	return &ProductClient{t: newTransport(opts)}
}

// CreateProduct saves a new product and returns it with the server-assigned id
func (c *ProductClient) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	dto := model.ToDTO(p.WithoutID())
	body, err := jsonBody(dto)
	if err != nil {
		return model.Product{}, fmt.Errorf("createProduct: encode: %w", err)
	}

	resp, err := c.t.send(ctx, request{
		op:            "createProduct",
		method:        http.MethodPost,
		path:          saveProductPath,
		body:          body,
		contentType:   "application/json",
		authenticated: true,
	})
	if err != nil {
		return model.Product{}, err
	}

	var created model.ProductDTO
	if err := c.t.decode(resp, &created); err != nil {
		return model.Product{}, err
	}

	c.t.log(ctx).Info("Product created", zap.Int64p("product_id", created.ID), zap.String("name", created.Nome))
	return model.ToEntity(created), nil
}

// ListProducts returns every product in server order
func (c *ProductClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	resp, err := c.t.send(ctx, request{
		op:            "listProducts",
		method:        http.MethodGet,
		path:          listProductsPath,
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var dtos []model.ProductDTO
	if err := c.t.decode(resp, &dtos); err != nil {
		return nil, err
	}
	return model.ToEntities(dtos), nil
}

// SearchProducts returns the products matching the filter
func (c *ProductClient) SearchProducts(ctx context.Context, filter SearchFilter) ([]model.Product, error) {
	resp, err := c.t.send(ctx, request{
		op:            "searchProducts",
		method:        http.MethodGet,
		path:          findProductsPath,
		query:         filter.query(),
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var dtos []model.ProductDTO
	if err := c.t.decode(resp, &dtos); err != nil {
		return nil, err
	}
	return model.ToEntities(dtos), nil
}

// GetProductByID fetches a single product
func (c *ProductClient) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	resp, err := c.t.send(ctx, request{
		op:            "getProductById",
		method:        http.MethodGet,
		path:          fmt.Sprintf(findByIDPath, id),
		authenticated: true,
	})
	if err != nil {
		return model.Product{}, err
	}

	var dto model.ProductDTO
	if err := c.t.decode(resp, &dto); err != nil {
		return model.Product{}, err
	}
	return model.ToEntity(dto), nil
}

// UpdateProduct replaces the whole record stored under id
func (c *ProductClient) UpdateProduct(ctx context.Context, id int64, p model.Product) (model.Product, error) {
	body, err := jsonBody(model.ToDTO(p.WithID(id)))
	if err != nil {
		return model.Product{}, fmt.Errorf("updateProduct: encode: %w", err)
	}

	resp, err := c.t.send(ctx, request{
		op:            "updateProduct",
		method:        http.MethodPut,
		path:          fmt.Sprintf(updateProductPath, id),
		body:          body,
		contentType:   "application/json",
		authenticated: true,
	})
	if err != nil {
		return model.Product{}, err
	}

	var updated model.ProductDTO
	if err := c.t.decode(resp, &updated); err != nil {
		return model.Product{}, err
	}
	return model.ToEntity(updated), nil
}

// DeleteProduct removes the product stored under id
func (c *ProductClient) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.t.send(ctx, request{
		op:            "deleteProduct",
		method:        http.MethodDelete,
		path:          fmt.Sprintf(deleteProductPath, id),
		authenticated: true,
	})
	if err != nil {
		return err
	}

	c.t.log(ctx).Info("Product deleted", zap.Int64("product_id", id))
	return nil
}
