package common

// PackageName is used as the metrics namespace and default log service tag.
const PackageName = "cast_attestation_webhook"

// Version is set at build time with
// -ldflags "-X github.com/castproof/cast-attestation-webhook/common.Version=..."
var Version = "dev"
