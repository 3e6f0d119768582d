package bootstrap

import (
	"fmt"
	"io"
	"time"
)

// ComponentStatus holds the tracked status of a component during bootstrap.
type ComponentStatus struct {
	Name    string
	Status  string
	Healthy bool
}

// ClientInfo represents an external client connection.
type ClientInfo struct {
	Name   string
	Target string
	Status string
	Type   string // "http", "process", ...
}

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	components      []ComponentStatus
	clients         []ClientInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		components:  make([]ComponentStatus, 0),
		clients:     make([]ClientInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackComponent adds a component's bootstrap status to the summary.
func (s *Summary) TrackComponent(name, status string, healthy bool) {
	s.components = append(s.components, ComponentStatus{
		Name:    name,
		Status:  status,
		Healthy: healthy,
	})
}

// TrackClient records an external client.
func (s *Summary) TrackClient(name, target, clientType, status string) {
	s.clients = append(s.clients, ClientInfo{
		Name:   name,
		Target: target,
		Status: status,
		Type:   clientType,
	})
}

// Components returns the tracked components.
func (s *Summary) Components() []ComponentStatus { return s.components }

// Clients returns the tracked clients.
func (s *Summary) Clients() []ClientInfo { return s.clients }

// DisplaySummary writes the bootstrap summary to w.
func (s *Summary) DisplaySummary(w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.components) > 0 {
		fmt.Fprintf(w, "📦 Components\n")
		healthy := 0
		for i, c := range s.components {
			fmt.Fprintf(w, "   %s %s %s (%s)\n", treePrefix(i, len(s.components)), statusIcon(c.Status, c.Healthy), c.Name, c.Status)
			if c.Healthy {
				healthy++
			}
		}
		fmt.Fprintf(w, "\n")

		total := len(s.components)
		if healthy == total {
			fmt.Fprintf(w, "✅ All components healthy (%d/%d)\n", healthy, total)
		} else {
			fmt.Fprintf(w, "⚠️  Some components have issues (%d/%d healthy)\n", healthy, total)
		}
	} else {
		fmt.Fprintf(w, "   └── No components registered\n")
	}

	if len(s.clients) > 0 {
		fmt.Fprintf(w, "\n🔌 Clients\n")
		for i, c := range s.clients {
			fmt.Fprintf(w, "   %s %s → %s [%s] (%s)\n", treePrefix(i, len(s.clients)), c.Name, c.Target, c.Type, c.Status)
		}
	}

	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(status string, healthy bool) string {
	if !healthy {
		return "❌"
	}
	switch status {
	case "active", "initialized", "connected", "healthy":
		return "✅"
	case "inactive", "disabled":
		return "⏸️"
	case "error", "failed", "unavailable":
		return "❌"
	default:
		return "⚠️"
	}
}
