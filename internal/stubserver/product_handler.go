package stubserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/model"
	"github.com/suteetoe/stockmobile/pkg/logger"
)

func (s *Server) createProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.ProductDTO
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := model.ToEntity(req).Validate(); err != nil {
		log.Warn("Product rejected", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	product := s.store.SaveProduct(req)

	log.Info("Product created successfully",
		zap.Int64("product_id", *product.ID),
		zap.String("name", product.Nome))
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) listProducts(c echo.Context) error {
	products := s.store.ListProducts()
	logger.FromEcho(c).Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

func (s *Server) findProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	name := c.QueryParam("nome")
	category := c.QueryParam("categoria")
	products := s.store.FindProducts(name, category)

	log.Info("Products searched",
		zap.String("nome", name),
		zap.String("categoria", category),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := s.store.FindProduct(id)
	if err != nil {
		log.Warn("Product not found", zap.Int64("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := productID(c)
	if err != nil {
		return err
	}

	var req model.ProductDTO
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Int64("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := model.ToEntity(req).Validate(); err != nil {
		log.Warn("Product update rejected", zap.Int64("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	product, err := s.store.UpdateProduct(id, req)
	if errors.Is(err, ErrNotFound) {
		log.Warn("Product not found for update", zap.Int64("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product updated successfully", zap.Int64("product_id", id))
	return c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := s.store.DeleteProduct(id); err != nil {
		log.Warn("Product not found for deletion", zap.Int64("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product deleted successfully", zap.Int64("product_id", id))
	return c.NoContent(http.StatusNoContent)
}

func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}
