package config

import "github.com/danmuck/netstring/internal/netstring"

func (c Config) Limits() netstring.Limits {
	return netstring.Limits{
		MaxPayloadBytes: c.MaxPayloadBytes,
		MaxLengthDigits: c.MaxLengthDigits,
	}
}

// CodecConfig builds the codec settings for c. A nil observer is silent.
func (c Config) CodecConfig(observer netstring.Observer) netstring.Config {
	if observer == nil {
		observer = netstring.NopObserver{}
	}
	return netstring.Config{Limits: c.Limits(), Observer: observer}
}
