package builtin

import "github.com/kingrea/loom/internal/catalog"

// Reserved task names.
const (
	TaskSleep       = NamePrefix + "sleep"
	TaskWaitUntil   = NamePrefix + "wait_until"
	TaskLaunch      = NamePrefix + "launch"
	TaskWebhook     = NamePrefix + "webhook"
	TaskNotify      = NamePrefix + "notify"
	TaskKillProcess = NamePrefix + "kill_process"
	TaskPower       = NamePrefix + "power"
)

// Engine entry nodes the built-in tasks start from. Each doubles as the
// custom action name the engine dispatches to.
const (
	EntrySleep       = "LoomSleep"
	EntryWaitUntil   = "LoomWaitUntil"
	EntryLaunch      = "LoomLaunch"
	EntryWebhook     = "LoomWebhook"
	EntryNotify      = "LoomNotify"
	EntryKillProcess = "LoomKillProcess"
	EntryPower       = "LoomPower"
)

// Power actions accepted by the power task.
const (
	PowerShutdown  = "shutdown"
	PowerRestart   = "restart"
	PowerScreenOff = "screen_off"
	PowerSleep     = "sleep"
)

// Default returns a registry populated with the standard built-in tasks.
func Default() *Registry {
	reg := NewRegistry()
	reg.MustRegister(sleepTask())
	reg.MustRegister(waitUntilTask())
	reg.MustRegister(launchTask())
	reg.MustRegister(webhookTask())
	reg.MustRegister(notifyTask())
	reg.MustRegister(killProcessTask())
	reg.MustRegister(powerTask())
	return reg
}

// selfOverride declares the entry node as a custom action dispatch; option
// contributions merge their custom_action_param into it.
func selfOverride(entry string) catalog.Fragment {
	return catalog.Fragment{
		entry: map[string]any{
			"action":        "Custom",
			"custom_action": entry,
		},
	}
}

func paramTemplate(entry string, params map[string]any) catalog.Fragment {
	return catalog.Fragment{
		entry: map[string]any{
			"custom_action_param": params,
		},
	}
}

func sleepTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskSleep,
		Entry:            EntrySleep,
		PipelineOverride: selfOverride(EntrySleep),
		Options:          []string{TaskSleep + "/duration"},
	}
	options := catalog.Catalog{
		TaskSleep + "/duration": {
			Input: []catalog.InputField{
				{Name: "sleep_time", Default: "5", PipelineType: catalog.PipelineInt, Verify: `^\d+$`},
			},
			PipelineOverride: paramTemplate(EntrySleep, map[string]any{
				"sleep_time": "{sleep_time}",
			}),
		},
	}
	return task, options
}

func waitUntilTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskWaitUntil,
		Entry:            EntryWaitUntil,
		PipelineOverride: selfOverride(EntryWaitUntil),
		Options:          []string{TaskWaitUntil + "/clock"},
	}
	options := catalog.Catalog{
		TaskWaitUntil + "/clock": {
			Input: []catalog.InputField{
				{Name: "target_time", Default: "00:00", PipelineType: catalog.PipelineString, Verify: `^\d{1,2}:\d{2}$`},
			},
			PipelineOverride: paramTemplate(EntryWaitUntil, map[string]any{
				"target_time": "{target_time}",
			}),
		},
	}
	return task, options
}

func launchTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskLaunch,
		Entry:            EntryLaunch,
		PipelineOverride: selfOverride(EntryLaunch),
		Options: []string{
			TaskLaunch + "/command",
			TaskLaunch + "/wait",
		},
	}
	options := catalog.Catalog{
		TaskLaunch + "/command": {
			Input: []catalog.InputField{
				{Name: "program", PipelineType: catalog.PipelineString},
				{Name: "args", PipelineType: catalog.PipelineString},
			},
			PipelineOverride: paramTemplate(EntryLaunch, map[string]any{
				"program": "{program}",
				"args":    "{args}",
			}),
		},
		TaskLaunch + "/wait": {
			Type: catalog.KindSwitch,
			Cases: []catalog.Case{
				{Name: "Yes", PipelineOverride: paramTemplate(EntryLaunch, map[string]any{"wait_for_exit": true})},
				{Name: "No", PipelineOverride: paramTemplate(EntryLaunch, map[string]any{"wait_for_exit": false})},
			},
		},
	}
	return task, options
}

func webhookTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskWebhook,
		Entry:            EntryWebhook,
		PipelineOverride: selfOverride(EntryWebhook),
		Options:          []string{TaskWebhook + "/target"},
	}
	options := catalog.Catalog{
		TaskWebhook + "/target": {
			Input: []catalog.InputField{
				{Name: "url", PipelineType: catalog.PipelineString},
			},
			PipelineOverride: paramTemplate(EntryWebhook, map[string]any{
				"url": "{url}",
			}),
		},
	}
	return task, options
}

func notifyTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskNotify,
		Entry:            EntryNotify,
		PipelineOverride: selfOverride(EntryNotify),
		Options:          []string{TaskNotify + "/message"},
	}
	options := catalog.Catalog{
		TaskNotify + "/message": {
			Input: []catalog.InputField{
				{Name: "title", Default: "Loom", PipelineType: catalog.PipelineString},
				{Name: "body", PipelineType: catalog.PipelineString},
			},
			PipelineOverride: paramTemplate(EntryNotify, map[string]any{
				"title": "{title}",
				"body":  "{body}",
			}),
		},
	}
	return task, options
}

func killProcessTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskKillProcess,
		Entry:            EntryKillProcess,
		PipelineOverride: selfOverride(EntryKillProcess),
		Options:          []string{TaskKillProcess + "/target"},
	}
	options := catalog.Catalog{
		TaskKillProcess + "/target": {
			Type:        catalog.KindSelect,
			DefaultCase: "Self",
			Cases: []catalog.Case{
				{Name: "Self", PipelineOverride: paramTemplate(EntryKillProcess, map[string]any{"kill_self": true})},
				{
					Name:             "Named",
					PipelineOverride: paramTemplate(EntryKillProcess, map[string]any{"kill_self": false}),
					Options:          []string{TaskKillProcess + "/name"},
				},
			},
		},
		TaskKillProcess + "/name": {
			Input: []catalog.InputField{
				{Name: "process_name", PipelineType: catalog.PipelineString},
			},
			PipelineOverride: paramTemplate(EntryKillProcess, map[string]any{
				"process_name": "{process_name}",
			}),
		},
	}
	return task, options
}

func powerTask() (catalog.Task, catalog.Catalog) {
	task := catalog.Task{
		Name:             TaskPower,
		Entry:            EntryPower,
		PipelineOverride: selfOverride(EntryPower),
		Options:          []string{TaskPower + "/action"},
	}
	powerCase := func(action string) catalog.Case {
		return catalog.Case{
			Name:             action,
			PipelineOverride: paramTemplate(EntryPower, map[string]any{"power_action": action}),
		}
	}
	options := catalog.Catalog{
		TaskPower + "/action": {
			Type:        catalog.KindSelect,
			DefaultCase: PowerShutdown,
			Cases: []catalog.Case{
				powerCase(PowerShutdown),
				powerCase(PowerRestart),
				powerCase(PowerScreenOff),
				powerCase(PowerSleep),
			},
		},
	}
	return task, options
}
