package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse envelopa coleções com a contagem, o formato que o painel do
// salão consome nas listagens de serviços, clientes e links.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, ListResponse[T]{Data: items, Total: len(items)})
}
