package hypernode

import (
	"encoding/base64"
	"fmt"
	"time"
)

// Template selects the runtime image a deployment is built from.
type Template string

const (
	TemplatePyTorch         Template = "pytorch"
	TemplateHuggingFace     Template = "huggingface"
	TemplateStableDiffusion Template = "stable-diffusion"
	TemplateCustom          Template = "custom"
)

// DeploymentStatus is the lifecycle state of a deployment.
type DeploymentStatus string

const (
	DeploymentPending   DeploymentStatus = "pending"
	DeploymentDeploying DeploymentStatus = "deploying"
	DeploymentRunning   DeploymentStatus = "running"
	DeploymentFailed    DeploymentStatus = "failed"
)

// NodeStatus is the availability state of a compute node.
type NodeStatus string

const (
	NodeActive  NodeStatus = "active"
	NodeOffline NodeStatus = "offline"
	NodeBusy    NodeStatus = "busy"
)

// JobStatus is the lifecycle state of a compute job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// StakeTier is the reward tier derived from a wallet's staked amount.
type StakeTier string

const (
	TierStarter StakeTier = "starter"
	TierBronze  StakeTier = "bronze"
	TierSilver  StakeTier = "silver"
	TierGold    StakeTier = "gold"
	TierDiamond StakeTier = "diamond"
)

// Ptr returns a pointer to v. It is a convenience for optional request
// fields where the zero value is meaningful, such as a temperature of 0.
func Ptr[T any](v T) *T { return &v }

// DeploymentConfig describes the deployment to create.
type DeploymentConfig struct {
	Model       string            `json:"model" validate:"required"`
	Template    Template          `json:"template" validate:"required,oneof=pytorch huggingface stable-diffusion custom"`
	GPUMemory   int               `json:"gpuMemory,omitempty" validate:"omitempty,gt=0"`
	Replicas    int               `json:"replicas,omitempty" validate:"omitempty,gte=1"`
	AutoScale   bool              `json:"autoScale,omitempty"`
	MinReplicas int               `json:"minReplicas,omitempty" validate:"omitempty,gte=1"`
	MaxReplicas int               `json:"maxReplicas,omitempty" validate:"omitempty,gtefield=MinReplicas"`
	Env         map[string]string `json:"env,omitempty"`
}

// Deployment is a model deployment as reported by the API.
type Deployment struct {
	ID        string           `json:"deploymentId"`
	Endpoint  string           `json:"endpoint"`
	Status    DeploymentStatus `json:"status"`
	Model     string           `json:"model,omitempty"`
	Template  Template         `json:"template,omitempty"`
	Replicas  int              `json:"replicas,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// GenerationRequest is a text generation request against a deployed endpoint.
// Zero MaxTokens and nil Temperature are filled with the service defaults
// of 256 tokens and 0.7.
type GenerationRequest struct {
	Prompt        string   `json:"prompt" validate:"required"`
	MaxTokens     int      `json:"maxTokens,omitempty" validate:"omitempty,gt=0"`
	Temperature   *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	TopP          *float64 `json:"topP,omitempty" validate:"omitempty,gt=0,lte=1"`
	TopK          int      `json:"topK,omitempty" validate:"omitempty,gt=0"`
	StopSequences []string `json:"stopSequences,omitempty"`
}

const (
	defaultMaxTokens   = 256
	defaultTemperature = 0.7
)

func (r GenerationRequest) withDefaults() GenerationRequest {
	if r.MaxTokens == 0 {
		r.MaxTokens = defaultMaxTokens
	}
	if r.Temperature == nil {
		r.Temperature = Ptr(defaultTemperature)
	}
	return r
}

// GenerationResponse is the result of a text generation request.
type GenerationResponse struct {
	GeneratedText   string `json:"generatedText"`
	TokensGenerated int    `json:"tokensGenerated"`
	Device          string `json:"device,omitempty"`
}

// ImageGenerationRequest is an image generation request against a deployed
// stable-diffusion endpoint. Zero-valued dimensions and sampler settings are
// filled with the service defaults of 512x512, 25 steps, guidance 7.5 and a
// single image.
type ImageGenerationRequest struct {
	Prompt            string  `json:"prompt" validate:"required"`
	NegativePrompt    string  `json:"negativePrompt,omitempty"`
	Width             int     `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height            int     `json:"height,omitempty" validate:"omitempty,gt=0"`
	NumInferenceSteps int     `json:"numInferenceSteps,omitempty" validate:"omitempty,gt=0"`
	GuidanceScale     float64 `json:"guidanceScale,omitempty" validate:"omitempty,gt=0"`
	NumImages         int     `json:"numImages,omitempty" validate:"omitempty,gte=1,lte=4"`
	Seed              *int64  `json:"seed,omitempty"`
}

const (
	defaultImageSize     = 512
	defaultImageSteps    = 25
	defaultGuidanceScale = 7.5
)

func (r ImageGenerationRequest) withDefaults() ImageGenerationRequest {
	if r.Width == 0 {
		r.Width = defaultImageSize
	}
	if r.Height == 0 {
		r.Height = defaultImageSize
	}
	if r.NumInferenceSteps == 0 {
		r.NumInferenceSteps = defaultImageSteps
	}
	if r.GuidanceScale == 0 {
		r.GuidanceScale = defaultGuidanceScale
	}
	if r.NumImages == 0 {
		r.NumImages = 1
	}
	return r
}

// ImageGenerationResponse carries generated images as base64-encoded PNG
// payloads. Use DecodeImages to obtain the raw bytes.
type ImageGenerationResponse struct {
	Images []string `json:"images"`
	Seed   int64    `json:"seed,omitempty"`
	Model  string   `json:"model,omitempty"`
}

// DecodeImages decodes every base64 image payload in the response.
func (r *ImageGenerationResponse) DecodeImages() ([][]byte, error) {
	decoded := make([][]byte, 0, len(r.Images))
	for i, img := range r.Images {
		raw, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", i, err)
		}
		decoded = append(decoded, raw)
	}
	return decoded, nil
}

type embedRequest struct {
	Text      string `json:"text"`
	Normalize bool   `json:"normalize"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

type classifyRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

type classifyResponse struct {
	Results []Classification `json:"results"`
}

// Classification is a single label candidate returned by a classifier
// endpoint, ordered by descending score.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Node is a registered compute node.
type Node struct {
	ID                 string     `json:"nodeId"`
	PublicKey          string     `json:"publicKey"`
	Status             NodeStatus `json:"status"`
	GPUModel           string     `json:"gpuModel,omitempty"`
	GPUMemory          int        `json:"gpuMemory,omitempty"`
	TotalJobsCompleted int        `json:"totalJobsCompleted,omitempty"`
	TotalEarned        float64    `json:"totalEarned,omitempty"`
	Uptime             float64    `json:"uptime,omitempty"`
	Region             string     `json:"region,omitempty"`
}

// NodeRegistration describes a node joining the network.
type NodeRegistration struct {
	PublicKey string `json:"publicKey" validate:"required"`
	GPUModel  string `json:"gpuModel" validate:"required"`
	GPUMemory int    `json:"gpuMemory" validate:"required,gt=0"`
	Region    string `json:"region,omitempty"`
}

// JobRequest describes a compute job to submit. Timeout is in seconds.
type JobRequest struct {
	WalletAddress string         `json:"walletAddress" validate:"required"`
	JobType       string         `json:"jobType" validate:"required"`
	ModelName     string         `json:"modelName" validate:"required"`
	InputData     map[string]any `json:"inputData,omitempty"`
	MaxPrice      float64        `json:"maxPrice,omitempty" validate:"omitempty,gt=0"`
	Timeout       int            `json:"timeout,omitempty" validate:"omitempty,gt=0"`
}

// Job is a compute job as reported by the API.
type Job struct {
	ID              string         `json:"jobId"`
	ClientPublicKey string         `json:"clientPublicKey,omitempty"`
	NodeID          string         `json:"nodeId,omitempty"`
	JobType         string         `json:"jobType,omitempty"`
	ModelName       string         `json:"modelName,omitempty"`
	Status          JobStatus      `json:"status"`
	MaxPrice        float64        `json:"maxPrice,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	Result          map[string]any `json:"result,omitempty"`
}

// NetworkMetrics is an aggregate snapshot of network activity.
type NetworkMetrics struct {
	TotalDeployments int     `json:"totalDeployments"`
	ActiveNodes      int     `json:"activeNodes"`
	ComputeHours     float64 `json:"computeHours"`
	AvgUptime        float64 `json:"avgUptime"`
	SuccessRate      float64 `json:"successRate"`
	TotalJobs        int     `json:"totalJobs"`
}

// StakeInfo is the staking position of a wallet.
type StakeInfo struct {
	WalletAddress string     `json:"walletAddress"`
	StakedAmount  float64    `json:"stakedAmount"`
	Tier          StakeTier  `json:"tier"`
	Multiplier    float64    `json:"multiplier"`
	UnlockTime    *time.Time `json:"unlockTime,omitempty"`
}

type scaleRequest struct {
	Replicas int `json:"replicas"`
}
