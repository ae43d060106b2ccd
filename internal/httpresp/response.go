package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Ack is the body for state transitions that have nothing useful to
// return beyond "it happened".
func Ack(c *gin.Context, status string) {
	c.JSON(200, gin.H{"ok": true, "status": status})
}
