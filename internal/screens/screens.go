// Package screens holds the presentation flows of the app: what each screen
// calls, and which alert or navigation follows. Rendering is left to the
// front end.
package screens

import (
	"context"

	"github.com/suteetoe/stockmobile/internal/model"
	"github.com/suteetoe/stockmobile/pkg/apiclient"
)

// Route names a screen of the app
type Route string

const (
	RouteLogin    Route = "Login"
	RouteRegister Route = "Register"
	RouteHome     Route = "Home"
	RouteProducts Route = "ProductsList"
)

// Alert is a user-facing message box
type Alert struct {
	Title   string
	Message string
}

// Outcome is what a screen action asks the front end to do
type Outcome struct {
	Alerts     []Alert
	NavigateTo Route
}

func (o Outcome) withAlert(title, message string) Outcome {
	o.Alerts = append(o.Alerts, Alert{Title: title, Message: message})
	return o
}

// Authenticator is the part of the auth client the login and register screens use
type Authenticator interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (apiclient.LoginResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (int, error)
}

// ProductCatalog is the part of the product client the list screen uses
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, filter apiclient.SearchFilter) ([]model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ImageService is the part of the image client the list screen uses
type ImageService interface {
	FetchImage(ctx context.Context, name string) (string, error)
	UploadImage(ctx context.Context, upload apiclient.ImageUpload) (string, error)
}

const unexpectedError = "An unexpected error occurred."
