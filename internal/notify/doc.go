// Package notify presents notifications and guards every request against
// hanging.
//
// A request flows through two layers:
//
//   - Presenter plays the sound through an audio player and then shows a
//     visual notification with sound suppressed. It never returns an error;
//     failures are recorded in the Outcome.
//   - Guard races the Presenter against a deadline and renders the result
//     as the text returned to the caller. It always produces a Response.
//
// # Platform Support
//
//   - Linux: freedesktop Notify over the D-Bus session bus, with the
//     suppress-sound hint set. beeep is used only when the session bus
//     cannot be reached; its notify-send path has no suppress-sound hint,
//     so some daemons may then play their own sound.
//   - macOS, Windows: beeep
//
// Every visual call is bounded by DefaultVisualTimeout.
//
// # Usage
//
//	presenter := notify.NewPresenter(dispatcher, notify.NewVisual("mcp-notify", logger), logger)
//	guard := notify.NewGuard(presenter, logger)
//	resp := guard.Dispatch(ctx, notify.NewRequest("Build", "done", notify.SoundSuccess), cfg.Dispatch(), 5*time.Second)
//	fmt.Println(resp.Text)
package notify
