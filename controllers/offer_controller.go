package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/pricing"
	"github.com/aromanza/gateway/utils"
)

// OfferController serves the offer listings
type OfferController struct {
	Offers *apiclient.Offers
	Clock  Clock
}

// Carousel returns the home page carousel
func (oc *OfferController) Carousel(c *gin.Context) {
	offers, err := oc.Offers.Carousel(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch carousel offers: %v", err)
		upstreamError(c, "No se pudo cargar las ofertas", err)
		return
	}
	utils.Success(c, "Ofertas del carrusel", offers)
}

// ListOffers returns the offers in effect today with their discounted price
func (oc *OfferController) ListOffers(c *gin.Context) {
	utils.LogInfo("ListOffers called")
	offers, err := oc.Offers.WithPrices(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		upstreamError(c, "No se pudo cargar las ofertas", err)
		return
	}

	active, _ := pricing.Partition(offers, oc.Clock.now())
	pricing.AnnotateOffers(active)
	utils.Success(c, "Ofertas vigentes", active)
}

// OfferStatus splits every offer into active and expired for the dashboard
func (oc *OfferController) OfferStatus(c *gin.Context) {
	utils.LogInfo("OfferStatus called")
	offers, err := oc.Offers.All(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch admin offers: %v", err)
		upstreamError(c, "No se pudo cargar las ofertas", err)
		return
	}

	active, expired := pricing.Partition(offers, oc.Clock.now())
	utils.Success(c, "Estado de las ofertas", gin.H{
		"activas":  active,
		"vencidas": expired,
	})
}
