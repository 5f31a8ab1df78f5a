// Package transport is thin TCP glue around the netstring codec: an accept
// loop that decodes items per connection and a one-shot sender.
//
// It owns no framing logic. Each connection gets its own working buffer;
// a fatal decode error closes that connection without resynchronizing.
package transport
