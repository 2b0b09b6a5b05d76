// Package viz provides the terminal surface of gradloop.
//
//   - [Preview]: Bubble Tea model that plays an animation in the terminal
//     using coloured cells
//   - [PlotSchedule]: ASCII chart of the ping-pong progress curve
//   - lipgloss styles shared by the CLI output
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	Q     - Quit (also Esc, Ctrl+C)
package viz
