package builtin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// Params is the decoded custom_action_param payload of one built-in entry.
type Params interface {
	Validate() error
}

// SleepParams configures the sleep action. SleepTime is in seconds.
type SleepParams struct {
	SleepTime int `json:"sleep_time"`
}

// Validate reports negative durations.
func (p *SleepParams) Validate() error {
	if p.SleepTime < 0 {
		return fmt.Errorf("builtin: sleep_time must be >= 0, got %d", p.SleepTime)
	}
	return nil
}

// WaitUntilParams configures the wait-until action. TargetTime is a wall
// clock time in H:MM or HH:MM form; the action waits for its next
// occurrence.
type WaitUntilParams struct {
	TargetTime string `json:"target_time"`
}

// Validate checks the clock format and range.
func (p *WaitUntilParams) Validate() error {
	parts := strings.Split(p.TargetTime, ":")
	if len(parts) != 2 {
		return fmt.Errorf("builtin: target_time %q is not in HH:MM form", p.TargetTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("builtin: target_time %q has no valid hour", p.TargetTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("builtin: target_time %q has no valid minute", p.TargetTime)
	}
	return nil
}

// LaunchParams configures the launch action.
type LaunchParams struct {
	Program     string `json:"program"`
	Args        string `json:"args"`
	WaitForExit bool   `json:"wait_for_exit"`
}

// Validate requires a program.
func (p *LaunchParams) Validate() error {
	if strings.TrimSpace(p.Program) == "" {
		return fmt.Errorf("builtin: launch requires a program")
	}
	return nil
}

// SplitArgs splits the argument string shell-style, honoring quoting.
// Argument strings the shell parser rejects fall back to plain whitespace
// splitting rather than failing the launch.
func (p *LaunchParams) SplitArgs() []string {
	if strings.TrimSpace(p.Args) == "" {
		return nil
	}
	parsed, err := shellwords.Parse(p.Args)
	if err != nil {
		return strings.Fields(p.Args)
	}
	return parsed
}

// WebhookParams configures the webhook action.
type WebhookParams struct {
	URL string `json:"url"`
}

// Validate requires a URL.
func (p *WebhookParams) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("builtin: webhook requires a url")
	}
	return nil
}

// NotifyParams configures the notify action.
type NotifyParams struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate always passes; an empty body is a valid notification.
func (p *NotifyParams) Validate() error {
	return nil
}

// KillProcessParams configures the kill-process action: either the engine's
// own process, or a named one.
type KillProcessParams struct {
	KillSelf    bool   `json:"kill_self"`
	ProcessName string `json:"process_name"`
}

// Validate requires a process name when not self-targeting.
func (p *KillProcessParams) Validate() error {
	if !p.KillSelf && strings.TrimSpace(p.ProcessName) == "" {
		return fmt.Errorf("builtin: kill_process requires a process_name when kill_self is off")
	}
	return nil
}

// PowerParams configures the power action.
type PowerParams struct {
	Action string `json:"power_action"`
}

// Validate checks the action against the supported set.
func (p *PowerParams) Validate() error {
	switch p.Action {
	case PowerShutdown, PowerRestart, PowerScreenOff, PowerSleep:
		return nil
	}
	return fmt.Errorf("builtin: unknown power_action %q", p.Action)
}

// DecodeParams decodes a custom_action_param payload for an entry, seeding
// the defaults the actions assume for absent fields: 5 seconds of sleep,
// no wait on launch, self-targeted kill, shutdown power action, "Loom" as
// the notification title.
func DecodeParams(entry string, raw []byte) (Params, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	var params Params
	switch entry {
	case EntrySleep:
		params = &SleepParams{SleepTime: 5}
	case EntryWaitUntil:
		params = &WaitUntilParams{}
	case EntryLaunch:
		params = &LaunchParams{}
	case EntryWebhook:
		params = &WebhookParams{}
	case EntryNotify:
		params = &NotifyParams{Title: "Loom"}
	case EntryKillProcess:
		params = &KillProcessParams{KillSelf: true}
	case EntryPower:
		params = &PowerParams{Action: PowerShutdown}
	default:
		return nil, fmt.Errorf("builtin: unknown entry %s", entry)
	}
	if err := json.Unmarshal(raw, params); err != nil {
		return nil, fmt.Errorf("builtin: decode %s params: %w", entry, err)
	}
	return params, nil
}

// ParamsFromDocument extracts and decodes the custom_action_param an
// override document carries for an entry node. Later document elements win,
// matching the engine's shallow overwrite; a document that never touches
// the parameter decodes to pure defaults.
func ParamsFromDocument(entry, document string) (Params, error) {
	var elements []map[string]any
	if err := json.Unmarshal([]byte(document), &elements); err != nil {
		return nil, fmt.Errorf("builtin: decode override document: %w", err)
	}
	var payload any
	for _, element := range elements {
		node, ok := element[entry].(map[string]any)
		if !ok {
			continue
		}
		if param, ok := node["custom_action_param"]; ok {
			payload = param
		}
	}
	if payload == nil {
		return DecodeParams(entry, nil)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("builtin: reencode %s params: %w", entry, err)
	}
	return DecodeParams(entry, raw)
}

// CheckDocument decodes and validates the params a compiled document
// carries for an entry. The compile CLI uses it to catch bad input values
// before a task is handed to the engine.
func CheckDocument(entry, document string) error {
	params, err := ParamsFromDocument(entry, document)
	if err != nil {
		return err
	}
	return params.Validate()
}
