package render

import "fmt"

// DashboardBaseURL is the web dashboard, as opposed to the REST API.
const DashboardBaseURL = "https://dashboard.render.com"

// Dashboard page actions accepted by DashboardURL.
const (
	ActionLogs     = "logs"
	ActionEvents   = "events"
	ActionDeploys  = "deploys"
	ActionSettings = "settings"
)

// ValidActions lists the dashboard pages that can be opened for a service,
// in display order.
var ValidActions = []string{ActionLogs, ActionEvents, ActionDeploys, ActionSettings}

// DashboardURL builds the web dashboard URL for a service page. An empty
// action or ActionSettings yields the service overview page.
func DashboardURL(serviceID, action string) (string, error) {
	base := fmt.Sprintf("%s/web/%s", DashboardBaseURL, serviceID)
	switch action {
	case "", ActionSettings:
		return base, nil
	case ActionLogs, ActionEvents, ActionDeploys:
		return base + "/" + action, nil
	default:
		return "", fmt.Errorf("unknown dashboard action %q", action)
	}
}

// IsValidAction reports whether action names a dashboard page.
func IsValidAction(action string) bool {
	switch action {
	case ActionLogs, ActionEvents, ActionDeploys, ActionSettings:
		return true
	default:
		return false
	}
}
