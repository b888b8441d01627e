package game

// DecisionGateway is how the engine asks the outside world for decisions and
// tells it what happened. The engine never holds its lock while calling it.
type DecisionGateway interface {
	// Confirm asks for a yes/no decision and blocks until one is made.
	Confirm(title, message string) bool
	// Notify delivers an informational notice. It may be a no-op.
	Notify(title, message string)
}

// NopGateway declines every confirmation and drops every notice.
type NopGateway struct{}

func (NopGateway) Confirm(string, string) bool { return false }
func (NopGateway) Notify(string, string)       {}

// AutoConfirmGateway accepts every confirmation and drops every notice.
type AutoConfirmGateway struct{}

func (AutoConfirmGateway) Confirm(string, string) bool { return true }
func (AutoConfirmGateway) Notify(string, string)       {}

// Notice is one recorded notification.
type Notice struct {
	Title   string
	Message string
}

// RecordingGateway records everything it is asked and answers confirmations
// with Answer. The cmd driver and tests use it to observe the engine.
type RecordingGateway struct {
	Answer        bool
	Notices       []Notice
	Confirmations []Notice
}

// Confirm records the request and returns Answer.
func (g *RecordingGateway) Confirm(title, message string) bool {
	g.Confirmations = append(g.Confirmations, Notice{Title: title, Message: message})
	return g.Answer
}

// Notify records the notice.
func (g *RecordingGateway) Notify(title, message string) {
	g.Notices = append(g.Notices, Notice{Title: title, Message: message})
}

// Titles returns the titles of the recorded notices in order.
func (g *RecordingGateway) Titles() []string {
	titles := make([]string, len(g.Notices))
	for i, n := range g.Notices {
		titles[i] = n.Title
	}
	return titles
}

// Reset clears everything recorded so far.
func (g *RecordingGateway) Reset() {
	g.Notices = nil
	g.Confirmations = nil
}
