package cli

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/Fepozopo/instafilter/pkg/cli.Version=1.2.3" ./cmd/instafilter
var Version = "0.0.0-dev"
