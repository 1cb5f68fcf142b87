// Package api exposes the scoring pipeline over HTTP for editor plugins and
// dashboards.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

// Server wires the record store, the extractor and the source host into a
// gin router.
type Server struct {
	store        contract.RecordStore
	extractor    *core.Extractor
	host         contract.SourceHost
	catalog      schema.Catalog
	keyFileLimit int
}

// NewServer creates a server. The source host may be nil when remote repo
// browsing is not configured.
func NewServer(store contract.RecordStore, extractor *core.Extractor, host contract.SourceHost, catalog schema.Catalog, keyFileLimit int) *Server {
	if keyFileLimit <= 0 {
		keyFileLimit = schema.DefaultKeyFileLimit
	}
	return &Server{
		store:        store,
		extractor:    extractor,
		host:         host,
		catalog:      catalog,
		keyFileLimit: keyFileLimit,
	}
}

// Router assembles the HTTP routes. Health and key generation stay outside
// the auth middleware so that new users can bootstrap.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	router.POST("/generate_key", s.handleGenerateKey)

	authed := router.Group("/", s.apiKeyAuth())
	authed.POST("/insert_file", s.handleInsertFile)
	authed.POST("/extract_metrics", s.handleExtractMetrics)
	authed.GET("/get_metrics", s.handleGetMetrics)
	authed.GET("/get_user_email", s.handleGetUserEmail)
	authed.GET("/get_user_projects", s.handleGetUserProjects)
	authed.GET("/api_keys", s.handleListAPIKeys)
	authed.DELETE("/api_keys/:key", s.handleDeleteAPIKey)
	authed.GET("/fetch_repo_structure", s.handleFetchRepoStructure)
	authed.GET("/fetch_file_content", s.handleFetchFileContent)

	return router
}

// Run starts the server on the given address.
func (s *Server) Run(address string) error {
	return s.Router().Run(address)
}
