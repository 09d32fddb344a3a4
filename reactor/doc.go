// Package reactor implements the readiness multiplexer (C1) of the
// reactor core: a level-triggered poller over a bounded set of
// api.Channel values. The interface is stable across platforms; the
// backend (epoll, IOCP, or an unsupported-platform stub) is selected at
// build time via Go build tags and is invisible to callers.
package reactor
