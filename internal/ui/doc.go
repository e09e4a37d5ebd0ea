// Package ui contains the Bubble Tea program used to browse a dependency
// folder. Model focuses on message orchestration while dedicated helpers own
// navigation, filter input, previews, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Entering a directory runs navigator.Transition inside a tea.Cmd; the
//     resulting levelLoadedMsg replaces the on-screen level. A failed read
//     keeps the current listing and shows the error in the status line.
//   - Choosing a file performs the terminal transition synchronously and
//     quits the program. Result reports the chosen path afterwards.
//
// State ownership:
//   - The navigator.State held by the model is the single source of truth
//     for where the user is. The matching ui/state.Level adds filtering,
//     cursor, and viewport bookkeeping on top of it.
//   - The last cursor position of every visited directory is remembered so
//     moving back up lands on the entry the user came from.
//   - Previews of regular files load asynchronously and are keyed by level,
//     with a sequence number discarding stale results.
package ui
