package readProbe

import (
	"dietplan-go-worker/controllers/check"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Probe(c *gin.Context) {
	c.JSON(http.StatusOK, check.AliveResponse{Success: true, Message: "probe success"})
}
