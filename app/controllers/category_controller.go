package controllers

import (
	"waroengpos/app/services"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/resource"
)

type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController() *CategoryController {
	return &CategoryController{catalog: services.NewCatalogService()}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

// Index lists all categories with product counts.
func (c *CategoryController) Index(cc *ctx.Context) {
	categories, err := c.catalog.GetCategories()
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.CollectionOf(&CategoryResource{}, categories))
}

// Store creates a category.
func (c *CategoryController) Store(cc *ctx.Context) {
	var body categoryRequest
	if !cc.BindJSON(&body) {
		return
	}

	category, err := c.catalog.CreateCategory(body.Name)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Created(resource.New(&CategoryResource{}, category))
}

// Update renames a category.
func (c *CategoryController) Update(cc *ctx.Context) {
	var body categoryRequest
	if !cc.BindJSON(&body) {
		return
	}

	category, err := c.catalog.EditCategory(cc.ParamUint("categoryId"), body.Name)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.New(&CategoryResource{}, category))
}

// Destroy deletes a category, refusing while products still reference it.
func (c *CategoryController) Destroy(cc *ctx.Context) {
	if err := c.catalog.DeleteCategory(cc.ParamUint("categoryId")); err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(map[string]bool{"deleted": true})
}
