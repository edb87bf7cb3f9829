package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/takeoff/pkg/application/dto"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
	"github.com/vsinha/takeoff/pkg/interfaces/httpapi/response"
)

// CatalogHandler lists the preloaded rebar masterlist and resource catalog
type CatalogHandler struct {
	masterlist repositories.RebarMasterlistRepository
	resources  repositories.ResourceRepository
}

func NewCatalogHandler(masterlist repositories.RebarMasterlistRepository, resources repositories.ResourceRepository) *CatalogHandler {
	return &CatalogHandler{masterlist: masterlist, resources: resources}
}

func (h *CatalogHandler) ListRebarMasterlist(c *gin.Context) {
	specs, err := h.masterlist.GetAllSpecs()
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, err)
		return
	}
	response.RespondOK(c, gin.H{"rebar_masterlist": dto.NewRebarSpecs(specs)})
}

func (h *CatalogHandler) ListResources(c *gin.Context) {
	resources, err := h.resources.GetAllResources()
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, err)
		return
	}
	response.RespondOK(c, gin.H{"resources": dto.NewResources(resources)})
}
