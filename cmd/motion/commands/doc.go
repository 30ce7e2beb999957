// Package commands defines the motion CLI.
//
// Commands
//
//   - play      Play a YAML animation script and print sampled values
//   - validate  Check a YAML animation script
//   - easings   List the named easing curves
//   - sample    Print samples of an easing expression
//
// # Implementation
//
// The root command loads the optional --config file into a motion.Config
// before any subcommand runs. play simulates time by default so output is
// deterministic; --realtime plays on a TickerScheduler against the wall clock.
package commands
