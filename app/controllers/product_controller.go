package controllers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"waroengpos/app/services"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/resource"
	"waroengpos/pkg/storage"
)

// maxImageBytes caps product image uploads at 5 MB.
const maxImageBytes = 5 << 20

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController() *ProductController {
	return &ProductController{catalog: services.NewCatalogService()}
}

type productRequest struct {
	Name       string `json:"name" validate:"required,min=3"`
	Price      int64  `json:"price" validate:"required,gte=1000"`
	CategoryID uint   `json:"categoryId" validate:"required"`
}

// Index lists products. ?categoryId=all (the default) bypasses the filter.
func (c *ProductController) Index(cc *ctx.Context) {
	products, err := c.catalog.GetProducts(cc.DefaultQuery("categoryId", "all"))
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.CollectionOf(&ProductResource{}, products))
}

// Store creates a product.
func (c *ProductController) Store(cc *ctx.Context) {
	var body productRequest
	if !cc.BindJSON(&body) {
		return
	}

	product, err := c.catalog.CreateProduct(body.Name, body.Price, body.CategoryID)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Created(resource.New(&ProductResource{}, product))
}

// Update edits a product.
func (c *ProductController) Update(cc *ctx.Context) {
	var body productRequest
	if !cc.BindJSON(&body) {
		return
	}

	product, err := c.catalog.EditProduct(cc.ParamUint("productId"), body.Name, body.Price, body.CategoryID)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.New(&ProductResource{}, product))
}

// Destroy removes a product.
func (c *ProductController) Destroy(cc *ctx.Context) {
	if err := c.catalog.DeleteProduct(cc.ParamUint("productId")); err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(map[string]bool{"deleted": true})
}

// UploadImage stores a product image on the configured disk and records its
// key on the product.
func (c *ProductController) UploadImage(cc *ctx.Context) {
	id := cc.ParamUint("productId")

	if err := cc.R.ParseMultipartForm(maxImageBytes); err != nil {
		cc.Error(413, "image too large")
		return
	}
	file, header, err := cc.R.FormFile("image")
	if err != nil {
		cc.Error(400, "image field missing")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		cc.ValidationError(map[string]string{"image": "unsupported image type"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		cc.Error(400, "failed to read image")
		return
	}

	key := fmt.Sprintf("products/%d%s", id, ext)
	if err := storage.Put(key, data); err != nil {
		cc.Fail(err)
		return
	}

	product, err := c.catalog.SetProductImage(id, key)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.New(&ProductResource{}, product))
}
