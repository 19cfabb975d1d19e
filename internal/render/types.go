package render

import "time"

// ServiceState is the lifecycle state of a Render service.
type ServiceState string

const (
	StateRunning   ServiceState = "running"
	StateDeploying ServiceState = "deploying"
	StateSuspended ServiceState = "suspended"
	StateFailed    ServiceState = "failed"
	StateUnknown   ServiceState = "unknown"
)

// parseServiceState maps Render API status strings to a ServiceState.
func parseServiceState(s string) ServiceState {
	switch s {
	case "available":
		return StateRunning
	case "deploying":
		return StateDeploying
	case "suspended":
		return StateSuspended
	case "failed", "unavailable":
		return StateFailed
	default:
		return StateUnknown
	}
}

// DeployState is the state of a single deployment.
type DeployState string

const (
	DeployLive     DeployState = "live"
	DeployBuilding DeployState = "building"
	DeployFailed   DeployState = "failed"
	DeployCreated  DeployState = "created"
	DeployCanceled DeployState = "canceled"
)

// parseDeployState maps Render API deploy status strings to a DeployState.
func parseDeployState(s string) DeployState {
	switch s {
	case "live":
		return DeployLive
	case "build_in_progress", "update_in_progress", "pre_deploy_in_progress":
		return DeployBuilding
	case "build_failed", "update_failed", "pre_deploy_failed":
		return DeployFailed
	case "canceled", "deactivated":
		return DeployCanceled
	default:
		return DeployCreated
	}
}

// InProgress reports whether a deployment in this state is still running.
func (d DeployState) InProgress() bool {
	return d == DeployBuilding || d == DeployCreated
}

// Service is a Render service record.
type Service struct {
	ID    string
	Name  string
	Type  string // web_service, cron_job, static_site, ...
	State ServiceState
	URL   string
}

// Deploy is a single deployment of a service.
type Deploy struct {
	ID            string
	State         DeployState
	CommitRef     string
	CommitMessage string
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// ServiceStatus combines a service record with its most recent deployment.
// LatestDeploy is nil when the service has never deployed.
type ServiceStatus struct {
	Service      Service
	LatestDeploy *Deploy
}
