package model

import "github.com/shopspring/decimal"

// ProductDTO is the wire representation exchanged with the inventory service
type ProductDTO struct {
	ID                *int64  `json:"id,omitempty"`
	Nome              string  `json:"nome"`
	Descricao         string  `json:"descricao"`
	Categoria         string  `json:"categoria"`
	QuantidadeEstoque int     `json:"quantidadeEstoque"`
	PrecoDeCusto      float64 `json:"precoDeCusto"`
	PrecoDeVenda      float64 `json:"precoDeVenda"`
	CaminhoImagem     string  `json:"caminhoImagem,omitempty"`
}

// ImageUploadResponse is returned by the image upload endpoint
type ImageUploadResponse struct {
	CaminhoImagem string `json:"caminhoImagem"`
}

// ToDTO converts a domain product into its wire model
func ToDTO(p Product) ProductDTO {
	dto := ProductDTO{
		Nome:              p.Name,
		Descricao:         p.Description,
		Categoria:         p.Category,
		QuantidadeEstoque: p.StockQuantity,
		PrecoDeCusto:      p.CostPrice.InexactFloat64(),
		PrecoDeVenda:      p.SalePrice.InexactFloat64(),
		CaminhoImagem:     p.ImagePath,
	}
	if p.ID != nil {
		id := *p.ID
		dto.ID = &id
	}
	return dto
}

// ToEntity converts a wire model into a domain product
func ToEntity(dto ProductDTO) Product {
	p := Product{
		Name:          dto.Nome,
		Description:   dto.Descricao,
		Category:      dto.Categoria,
		StockQuantity: dto.QuantidadeEstoque,
		CostPrice:     decimal.NewFromFloat(dto.PrecoDeCusto),
		SalePrice:     decimal.NewFromFloat(dto.PrecoDeVenda),
		ImagePath:     dto.CaminhoImagem,
	}
	if dto.ID != nil {
		p = p.WithID(*dto.ID)
	}
	return p
}

// ToEntities converts a list of wire models preserving order
func ToEntities(dtos []ProductDTO) []Product {
	products := make([]Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, ToEntity(dto))
	}
	return products
}
