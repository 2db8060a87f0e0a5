package contentcmd

const checkMessageType = "portfolio.content.check"

// CheckResult summarizes the records loaded during a content check.
type CheckResult struct {
	Posts     int
	Projects  int
	Work      int
	Education int
}

// CheckResultCallback receives the check summary. Optional, invoked
// synchronously from the handler.
type CheckResultCallback func(CheckResult)

// CheckMessage reloads every collection and validates front matter against
// the collection schemas. Schema failures surface as execution errors.
type CheckMessage struct {
	ResultCallback CheckResultCallback `json:"-"`
}

// Type implements command.Message.
func (CheckMessage) Type() string { return checkMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CheckMessage) Validate() error { return nil }
