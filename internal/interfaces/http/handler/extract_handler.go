package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"customer_extract/internal/domain/customer"
	"customer_extract/internal/domain/dataset"
)

// Transformer turns loaded records into the flat dataset.
type Transformer interface {
	Transform(ctx context.Context, customers []customer.Customer, vips customer.VIPSet) *dataset.Dataset
}

type ExtractRequest struct {
	Customers []customer.Customer `json:"customers"`
	VIPIDs    []int64             `json:"vip_ids"`
}

type ExtractResponse struct {
	Columns []string      `json:"columns"`
	Rows    []dataset.Row `json:"rows"`
}

type ExtractHandler struct {
	svc Transformer
}

func NewExtractHandler(svc Transformer) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ds := h.svc.Transform(c.Request.Context(), req.Customers, customer.NewVIPSet(req.VIPIDs...))

	rows := ds.Rows
	if rows == nil {
		rows = []dataset.Row{}
	}
	// Render before writing the status so an unencodable row gives a 500
	// instead of a 200 with a truncated body.
	body, err := json.Marshal(ExtractResponse{
		Columns: dataset.Columns,
		Rows:    rows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render rows: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
