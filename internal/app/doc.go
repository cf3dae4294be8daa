// Package app is the composition root for knowledgehub.
//
// Every entry point resolves configuration the same way (see setup): load the
// TOML file and environment through config, apply command-line overrides,
// build the trigger.Window and a blogapi.Client. From there:
//
//   - Run redirects the standard logger to the log file, starts the scheduled
//     trigger in the background (when enabled and a secret is configured) and
//     blocks in the TUI.
//   - RunTrigger runs only the scheduled trigger, in the foreground, until the
//     context is cancelled.
//   - List, Show, Next, Generate and Health are one-shot commands that write
//     plain text to Options.Out.
//
// # Trigger wiring
//
//	StartScheduler / RunTrigger
//	  └─> trigger.Scheduler{Clock, Interval, Window}
//	        └─> every Interval: Window.Check(now)
//	              └─> go trigger.Generate(...)  POST /admin/generate-blog
//	                    └─> state.Store.RecordFire()  read by the UI
//
// The scheduler clock comes from Options.Clock, so tests drive it with a
// clockwork fake clock.
//
// # Errors
//
// Configuration and client construction errors are fatal and returned.
// Failures of scheduled generation requests are logged and recorded, never
// returned. ErrNoSecret and ErrAccessDenied report a missing or mismatched
// admin secret to the CLI.
package app
