// Package netstring implements the netstring wire format.
//
// A frame is `<length>:<payload>,` where length is the ASCII decimal byte
// count of payload. Frames are concatenated on the stream with no outer
// framing.
//
// Ownership boundary:
// - Parse/Append are pure byte-slice primitives
// - Codec applies limits and observation over a caller-owned working buffer
// - Reader/Writer/ScanFrames adapt the codec to io streams
package netstring
