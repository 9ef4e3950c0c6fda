package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/suteetoe/stockmobile/internal/model"
	"github.com/suteetoe/stockmobile/internal/screens"
	"github.com/suteetoe/stockmobile/pkg/apiclient"
)

func loginCmd(a func() *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the issued token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printOutcome(cmd, a().login.Submit(cmd.Context(), email, password))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd(a func() *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printOutcome(cmd, a().register.Submit(cmd.Context(), name, email, password))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a().login.Logout(cmd.Context())
		},
	}
}

func productsCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List, search and manage products",
	}

	var withImages bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List every product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := a().list.Refresh(cmd.Context())
			if state.Error != "" {
				return fmt.Errorf("%s", state.Error)
			}
			if withImages {
				printCards(cmd, a().list.Cards(cmd.Context()))
				return nil
			}
			printProducts(cmd, state.Products)
			return nil
		},
	}
	list.Flags().BoolVar(&withImages, "images", false, "fetch each product image as a data URI")

	var name, category string
	search := &cobra.Command{
		Use:   "search",
		Short: "Search products by name and/or category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := a().products.SearchProducts(cmd.Context(), apiclient.SearchFilter{Name: name, Category: category})
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
	search.Flags().StringVar(&name, "name", "", "name filter")
	search.Flags().StringVar(&category, "category", "", "category filter")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a().products.GetProductByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProducts(cmd, []model.Product{p})
			return nil
		},
	}

	var form productForm
	var imagePath string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product, optionally uploading an image first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := form.product()
			if err != nil {
				return err
			}

			var picked *screens.PickedImage
			if imagePath != "" {
				content, err := os.ReadFile(imagePath)
				if err != nil {
					return err
				}
				picked = &screens.PickedImage{Source: imagePath, Content: content}
			}
			return printOutcome(cmd, a().list.Create(cmd.Context(), draft, picked))
		},
	}
	form.bind(create)
	create.Flags().StringVar(&imagePath, "image", "", "image file to upload")

	var updateForm productForm
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			draft, err := updateForm.product()
			if err != nil {
				return err
			}
			if err := draft.Validate(); err != nil {
				return err
			}
			p, err := a().products.UpdateProduct(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			printProducts(cmd, []model.Product{p})
			return nil
		},
	}
	updateForm.bind(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return printOutcome(cmd, a().list.Delete(cmd.Context(), id))
		},
	}

	cmd.AddCommand(list, search, get, create, update, del)
	return cmd
}

func imagesCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Fetch or upload product images",
	}

	fetch := &cobra.Command{
		Use:   "fetch NAME",
		Short: "Print an image as a data URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := a().images.FetchImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}

	upload := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload an image and print its storage path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			path, err := a().images.UploadImage(cmd.Context(), apiclient.NewImageUpload(args[0], content))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(fetch, upload)
	return cmd
}

// productForm collects the product fields from flags
type productForm struct {
	name, description, category string
	stock                       int
	cost, sale                  string
	imagePath                   string
}

func (f *productForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "product description")
	cmd.Flags().StringVar(&f.category, "category", "", "product category")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "stock quantity")
	cmd.Flags().StringVar(&f.cost, "cost", "0", "cost price")
	cmd.Flags().StringVar(&f.sale, "price", "0", "sale price")
	cmd.Flags().StringVar(&f.imagePath, "image-path", "", "already uploaded image path")
	_ = cmd.MarkFlagRequired("name")
}

func (f *productForm) product() (model.Product, error) {
	cost, err := decimal.NewFromString(f.cost)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid cost %q: %w", f.cost, err)
	}
	sale, err := decimal.NewFromString(f.sale)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q: %w", f.sale, err)
	}

	return model.Product{}.
		WithName(f.name).
		WithDescription(f.description).
		WithCategory(f.category).
		WithStockQuantity(f.stock).
		WithCostPrice(cost).
		WithSalePrice(sale).
		WithImagePath(f.imagePath), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

func printProducts(cmd *cobra.Command, products []model.Product) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTOCK\tCOST\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			p.IDValue(), p.Name, p.Category, p.StockQuantity,
			p.CostPrice.StringFixed(2), p.SalePrice.StringFixed(2), p.ImagePath)
	}
	_ = w.Flush()
}

func printCards(cmd *cobra.Command, cards []screens.Card) {
	for _, c := range cards {
		image := c.ImageURI
		switch {
		case c.ImageErr != nil:
			image = "image error: " + c.ImageErr.Error()
		case len(image) > 64:
			image = image[:64] + "..."
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  R$ %s  %s\n",
			c.Product.IDValue(), c.Product.Name, c.Product.SalePrice.StringFixed(2), strings.TrimSpace(image))
	}
}
