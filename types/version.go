package types

// Version is the canonical project version.
// The CLI, the crash.meta sidecar, and the adapter event contract share this
// version per the lockstep versioning policy.
//
// This version is authoritative. Contract docs must reference this constant.
const Version = "0.3.0"
