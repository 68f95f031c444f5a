package version

// Version is overridable at link time:
//
//	go build -ldflags "-X folderdock/internal/version.Version=v1.2.3"
var Version = "v0.3.0"

func String() string {
	return Version
}
