// Package hypernodetest runs an in-process fake of the Hypernode API for
// exercising the SDK without the real service. The fake keeps deployments,
// jobs and nodes in memory, serves inference from deployment endpoints it
// hands out, and can inject failures per route to drive the retry path.
package hypernodetest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Hypernode-sol/hypernode-sdk-go/ginext"
	"github.com/Hypernode-sol/hypernode-sdk-go/hypernode"
)

// onePixelPNG is a 1x1 transparent PNG, served as generated image data.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// CapturedRequest is one request the fake server received.
type CapturedRequest struct {
	Method string
	Path   string
	Route  string
	Header http.Header
	Body   []byte
}

type deploymentState struct {
	dep  hypernode.Deployment
	plan []hypernode.DeploymentStatus
	idx  int
}

type failureState struct {
	remaining int
	status    int
}

// Server is a fake Hypernode API bound to a local listener.
type Server struct {
	engine     *ginext.Engine
	httpServer *httptest.Server

	apiKey     string
	statusPlan []hypernode.DeploymentStatus

	mu          sync.Mutex
	seq         int
	deployments map[string]*deploymentState
	jobs        map[string]hypernode.Job
	nodes       []hypernode.Node
	stakes      map[string]hypernode.StakeInfo
	failures    map[string]*failureState
	captured    []CapturedRequest
}

// Option configures the fake server.
type Option func(*Server)

// WithAPIKey makes the server reject requests whose bearer token does not
// match key.
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// WithDeploymentStatuses sets the status sequence a deployment walks
// through: creation reports the first status and every GET advances one
// step until the last, which then repeats. The default is pending followed
// by running.
func WithDeploymentStatuses(statuses ...hypernode.DeploymentStatus) Option {
	return func(s *Server) {
		if len(statuses) > 0 {
			s.statusPlan = statuses
		}
	}
}

// WithFailures makes the first count requests matching the route template,
// for example /v1/deployments/:id, fail with the given status before the
// route behaves normally again.
func WithFailures(route string, status, count int) Option {
	return func(s *Server) {
		s.failures[route] = &failureState{remaining: count, status: status}
	}
}

// New starts a fake server and registers its shutdown with tb.
func New(tb testing.TB, opts ...Option) *Server {
	tb.Helper()

	s := &Server{
		engine:      ginext.NewTest(),
		statusPlan:  []hypernode.DeploymentStatus{hypernode.DeploymentPending, hypernode.DeploymentRunning},
		deployments: make(map[string]*deploymentState),
		jobs:        make(map[string]hypernode.Job),
		stakes:      make(map[string]hypernode.StakeInfo),
		failures:    make(map[string]*failureState),
		nodes: []hypernode.Node{
			{ID: "node-alpha", PublicKey: "7nYab9VoV3kX2sDjmZXgfmRPmU2DWOrBXUzx1hYrdnaf", Status: hypernode.NodeActive, GPUModel: "RTX 4090", GPUMemory: 24, Region: "us-east"},
			{ID: "node-beta", PublicKey: "3kTqZVoBhJpkXM9Y1u5GgwrP7fJ9eWvRrCcQxJNnodeB", Status: hypernode.NodeBusy, GPUModel: "A100", GPUMemory: 80, Region: "eu-west"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(s.capture(), s.failureInjection(), s.auth())
	s.routes()
	s.httpServer = httptest.NewServer(s.engine)
	tb.Cleanup(s.Close)
	return s
}

// URL is the base URL of the fake API.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the listener down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapturedRequest, len(s.captured))
	copy(out, s.captured)
	return out
}

// SetStake seeds the staking record served for a wallet.
func (s *Server) SetStake(walletAddress string, info hypernode.StakeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakes[walletAddress] = info
}

func (s *Server) capture() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.captured = append(s.captured, CapturedRequest{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Route:  c.FullPath(),
			Header: c.Request.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) failureInjection() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		s.mu.Lock()
		fs := s.failures[c.FullPath()]
		inject := fs != nil && fs.remaining > 0
		status := 0
		if inject {
			fs.remaining--
			status = fs.status
		}
		s.mu.Unlock()

		if inject {
			c.AbortWithStatusJSON(status, ginext.H{"detail": "injected failure"})
			return
		}
		c.Next()
	}
}

func (s *Server) auth() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		if s.apiKey != "" && c.GetHeader("Authorization") != "Bearer "+s.apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"detail": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}

func (s *Server) routes() {
	s.engine.POST("/v1/deployments", s.createDeployment)
	s.engine.GET("/v1/deployments", s.listDeployments)
	s.engine.GET("/v1/deployments/:id", s.getDeployment)
	s.engine.DELETE("/v1/deployments/:id", s.deleteDeployment)
	s.engine.POST("/v1/deployments/:id/scale", s.scaleDeployment)

	s.engine.POST("/endpoints/:id/generate", s.generate)
	s.engine.POST("/endpoints/:id/embed", s.embed)
	s.engine.POST("/endpoints/:id/classify", s.classify)

	s.engine.POST("/v1/jobs", s.submitJob)
	s.engine.GET("/v1/jobs/:id", s.getJob)

	s.engine.GET("/v1/nodes", s.listNodes)
	s.engine.POST("/v1/nodes/register", s.registerNode)

	s.engine.GET("/v1/metrics", s.networkMetrics)
	s.engine.GET("/v1/stake/:wallet", s.getStake)
}

func (s *Server) createDeployment(c *ginext.Context) {
	var cfg hypernode.DeploymentConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": err.Error()})
		return
	}
	if cfg.Model == "" || cfg.Template == "" {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "model and template are required"})
		return
	}

	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("dep-%06d", s.seq)
	state := &deploymentState{
		dep: hypernode.Deployment{
			ID:        id,
			Endpoint:  s.httpServer.URL + "/endpoints/" + id,
			Status:    s.statusPlan[0],
			Model:     cfg.Model,
			Template:  cfg.Template,
			Replicas:  max(cfg.Replicas, 1),
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
		plan: s.statusPlan,
	}
	s.deployments[id] = state
	s.mu.Unlock()

	c.JSON(http.StatusCreated, state.dep)
}

func (s *Server) listDeployments(c *ginext.Context) {
	s.mu.Lock()
	out := make([]hypernode.Deployment, 0, len(s.deployments))
	for _, state := range s.deployments {
		out = append(out, state.dep)
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) getDeployment(c *ginext.Context) {
	s.mu.Lock()
	state, ok := s.deployments[c.Param("id")]
	if ok {
		if state.idx < len(state.plan)-1 {
			state.idx++
		}
		state.dep.Status = state.plan[state.idx]
	}
	var dep hypernode.Deployment
	if ok {
		dep = state.dep
	}
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, ginext.H{"detail": "Deployment not found"})
		return
	}
	c.JSON(http.StatusOK, dep)
}

func (s *Server) deleteDeployment(c *ginext.Context) {
	s.mu.Lock()
	_, ok := s.deployments[c.Param("id")]
	delete(s.deployments, c.Param("id"))
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, ginext.H{"detail": "Deployment not found"})
		return
	}
	c.JSON(http.StatusOK, ginext.H{"status": "terminated"})
}

func (s *Server) scaleDeployment(c *ginext.Context) {
	var req struct {
		Replicas int `json:"replicas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Replicas < 1 {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "replicas must be a positive integer"})
		return
	}

	s.mu.Lock()
	state, ok := s.deployments[c.Param("id")]
	var dep hypernode.Deployment
	if ok {
		state.dep.Replicas = req.Replicas
		dep = state.dep
	}
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, ginext.H{"detail": "Deployment not found"})
		return
	}
	c.JSON(http.StatusOK, dep)
}

func (s *Server) lookupEndpoint(c *ginext.Context) (hypernode.Deployment, bool) {
	s.mu.Lock()
	state, ok := s.deployments[c.Param("id")]
	var dep hypernode.Deployment
	if ok {
		dep = state.dep
	}
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, ginext.H{"detail": "Endpoint not found"})
	}
	return dep, ok
}

func (s *Server) generate(c *ginext.Context) {
	dep, ok := s.lookupEndpoint(c)
	if !ok {
		return
	}

	if dep.Template == hypernode.TemplateStableDiffusion {
		var req hypernode.ImageGenerationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ginext.H{"detail": err.Error()})
			return
		}
		images := make([]string, max(req.NumImages, 1))
		for i := range images {
			images[i] = onePixelPNG
		}
		seed := int64(4242)
		if req.Seed != nil {
			seed = *req.Seed
		}
		c.JSON(http.StatusOK, hypernode.ImageGenerationResponse{
			Images: images,
			Seed:   seed,
			Model:  dep.Model,
		})
		return
	}

	var req hypernode.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": err.Error()})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "prompt is required"})
		return
	}
	c.JSON(http.StatusOK, hypernode.GenerationResponse{
		GeneratedText:   "completion for: " + req.Prompt,
		TokensGenerated: len(strings.Fields(req.Prompt)) + 2,
		Device:          "cuda:0",
	})
}

func (s *Server) embed(c *ginext.Context) {
	if _, ok := s.lookupEndpoint(c); !ok {
		return
	}
	var req struct {
		Text      string `json:"text"`
		Normalize bool   `json:"normalize"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "text is required"})
		return
	}
	embedding := []float64{3, 4}
	if req.Normalize {
		embedding = []float64{0.6, 0.8}
	}
	c.JSON(http.StatusOK, ginext.H{"embedding": embedding})
}

func (s *Server) classify(c *ginext.Context) {
	if _, ok := s.lookupEndpoint(c); !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
		TopK int    `json:"top_k"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "text is required"})
		return
	}
	results := []hypernode.Classification{
		{Label: "positive", Score: 0.72},
		{Label: "neutral", Score: 0.19},
		{Label: "negative", Score: 0.09},
	}
	if req.TopK > 0 && req.TopK < len(results) {
		results = results[:req.TopK]
	}
	c.JSON(http.StatusOK, ginext.H{"results": results})
}

func (s *Server) submitJob(c *ginext.Context) {
	var req hypernode.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": err.Error()})
		return
	}
	if req.WalletAddress == "" || req.JobType == "" || req.ModelName == "" {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "walletAddress, jobType and modelName are required"})
		return
	}

	s.mu.Lock()
	s.seq++
	job := hypernode.Job{
		ID:              fmt.Sprintf("job-%06d", s.seq),
		ClientPublicKey: req.WalletAddress,
		JobType:         req.JobType,
		ModelName:       req.ModelName,
		Status:          hypernode.JobPending,
		MaxPrice:        req.MaxPrice,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	s.jobs[job.ID] = job
	s.mu.Unlock()

	c.JSON(http.StatusCreated, job)
}

func (s *Server) getJob(c *ginext.Context) {
	s.mu.Lock()
	job, ok := s.jobs[c.Param("id")]
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, ginext.H{"detail": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) listNodes(c *ginext.Context) {
	s.mu.Lock()
	out := make([]hypernode.Node, len(s.nodes))
	copy(out, s.nodes)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) registerNode(c *ginext.Context) {
	var reg hypernode.NodeRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": err.Error()})
		return
	}
	if reg.PublicKey == "" || reg.GPUModel == "" {
		c.JSON(http.StatusBadRequest, ginext.H{"detail": "publicKey and gpuModel are required"})
		return
	}

	s.mu.Lock()
	s.seq++
	node := hypernode.Node{
		ID:        fmt.Sprintf("node-%06d", s.seq),
		PublicKey: reg.PublicKey,
		Status:    hypernode.NodeActive,
		GPUModel:  reg.GPUModel,
		GPUMemory: reg.GPUMemory,
		Region:    reg.Region,
	}
	s.nodes = append(s.nodes, node)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, node)
}

func (s *Server) networkMetrics(c *ginext.Context) {
	s.mu.Lock()
	active := 0
	for _, n := range s.nodes {
		if n.Status == hypernode.NodeActive {
			active++
		}
	}
	metrics := hypernode.NetworkMetrics{
		TotalDeployments: len(s.deployments),
		ActiveNodes:      active,
		ComputeHours:     1234.5,
		AvgUptime:        99.2,
		SuccessRate:      0.987,
		TotalJobs:        len(s.jobs),
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, metrics)
}

func (s *Server) getStake(c *ginext.Context) {
	s.mu.Lock()
	info, ok := s.stakes[c.Param("wallet")]
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, ginext.H{"detail": "Stake not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}
