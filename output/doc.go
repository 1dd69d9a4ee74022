// Package output writes baked animations to disk.
//
// Every animation becomes "<content id>.json" and the model gets one
// "manifest.json", both passed through the configured compression codec and
// suffixed with its extension (".zst", ".s2", ".lz4"). Optionally all
// written files are also collected into a zip archive.
package output
