package fsm

// Version is the release of the fsm module, reported by the CLI.
var Version = "0.3.0"
