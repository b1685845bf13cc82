// Package bot routes chat commands to handlers.
//
// A Bot subscribes to chat messages through a dispatch.Dispatcher, treats
// lines starting with the configured prefix as commands, and routes each to
// the handler registered under the first token. Handlers get a Context with
// the channel, the sender's identity and badges, the parsed arguments, and
// Say/Reply helpers. Handler panics are recovered and reported as errors,
// never crashing the routing loop.
//
// Middleware composes around handlers; RequireBadge gates commands on the
// sender's badges.
package bot
