package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/tariff-pdf
func GetTariffPDF(c *gin.Context) {
	pdfBytes, filename, err := getDeps().Reports.GenerateTariffSheet(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to generate tariff sheet", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
