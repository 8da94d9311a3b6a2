package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *handler) listDeposits(c *gin.Context) {
	list, err := h.deposits.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := make([]depositResponse, 0, len(list))
	for _, d := range list {
		out = append(out, newDepositResponse(d))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *handler) createDeposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	d, err := h.deposits.Create(c.Request.Context(), currentUser(c).ID, req.input())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": newDepositResponse(d)})
}

func (h *handler) updateDeposit(c *gin.Context) {
	id, ok := depositID(c)
	if !ok {
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	d, err := h.deposits.Update(c.Request.Context(), currentUser(c).ID, id, req.input())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newDepositResponse(d)})
}

func (h *handler) deleteDeposit(c *gin.Context) {
	id, ok := depositID(c)
	if !ok {
		return
	}

	if err := h.deposits.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) exportDeposits(c *gin.Context) {
	link, err := h.deposits.Export(c.Request.Context(), currentUser(c).ID)
	if h.metrics != nil {
		h.metrics.RecordExport(err == nil)
	}
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": exportResponse{URL: link.URL, Key: link.Key, ExpiresAt: link.ExpiresAt}})
}

func depositID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithMessage(c, http.StatusBadRequest, "Invalid deposit id")
		return 0, false
	}
	return id, true
}
