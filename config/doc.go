// Package config loads chatwire settings from layered sources.
//
// Three layers merge in order: built-in defaults, a TOML file, and
// CHATWIRE_ environment variables, with later layers winning key by key.
// Settings are addressed by dot-separated keys ("bot.commandPrefix") and
// read through typed getters that report missing keys and type mismatches
// as distinct errors.
//
// Watch puts an fsnotify watcher on the config file and rebuilds the merge
// once writes settle; registered handlers see the values before and after
// each successful reload. A reload that fails to parse keeps the previous
// values.
package config
