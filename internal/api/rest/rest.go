package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Token endpoints (public read access)
		v1.GET("/nfts", handler.ListNFTs)
		v1.GET("/nfts/explore", handler.ExploreNFTs)
		v1.GET("/nfts/:token_number", handler.GetNFT)
		v1.GET("/nfts/:token_number/transfers", handler.ListTransfers)

		// Metadata documents (public read access - tokenURI targets)
		v1.GET("/metadata/:id", handler.GetMetadata)

		// Write endpoints (requires authentication)
		auth := middleware.Auth(authCfg)
		v1.POST("/nfts", auth, handler.CreateNFT)
		v1.PATCH("/nfts/:token_number", auth, handler.UpdateListing)
		v1.POST("/transfers", auth, handler.CreateTransfer)
		v1.POST("/users", auth, handler.UpsertUser)
		v1.POST("/upload", auth, handler.UploadAsset)
		v1.POST("/metadata", auth, handler.PublishMetadata)
	}
}
