// Package audio plays notification sounds through one external player.
//
// A Dispatcher walks an ordered fallback chain, the caller's custom file
// first and then the bundled asset, and stops at the first attempt that
// plays. It never returns an error: every call ends in an Outcome value.
// The bundled asset is embedded in the binary and written to the user cache
// directory on first use so that an external player can read it.
package audio
