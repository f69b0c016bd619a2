package simnet

// Fixed network-wide simulation parameters.
const (
	// NetBlockRate is the target network-wide block discovery rate, in
	// blocks per virtual second: one block every ten minutes.
	NetBlockRate = 1.0 / 600.0

	// DefaultVerifyRate is how many bytes per virtual second a miner can
	// validate, absent a more specific configuration.
	DefaultVerifyRate = 200 * 1024.0

	// DefaultLinkDelay is the propagation delay put on every link of the
	// default mesh when Config.LinkDelay is zero.
	DefaultLinkDelay = 0.02
)
