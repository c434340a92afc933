package domain

// CrashSite names the pipeline stage a crash was isolated to.
type CrashSite int

const (
	// SiteFrontend means the crash reproduces during IR emission, before any
	// code generation runs.
	SiteFrontend CrashSite = iota
	// SiteBackend means the crash was isolated to the code generator working
	// on an emitted intermediate artifact.
	SiteBackend
)

// String returns the crash site name.
func (s CrashSite) String() string {
	if s == SiteBackend {
		return "backend"
	}
	return "frontend"
}

// Classification is the classifier's terminal state. The two variants carry
// different payloads: a frontend crash holds only the simplified invocation,
// a backend crash additionally holds the intermediate artifact the translated
// code-generator invocation runs against.
type Classification struct {
	Site       CrashSite
	Invocation Invocation
	// Artifact is the emitted intermediate-representation file. Set only for
	// SiteBackend.
	Artifact string
}

// FrontendCrash builds the frontend terminal variant.
func FrontendCrash(inv Invocation) Classification {
	return Classification{Site: SiteFrontend, Invocation: inv}
}

// BackendCrash builds the backend terminal variant.
func BackendCrash(inv Invocation, artifact string) Classification {
	return Classification{Site: SiteBackend, Invocation: inv, Artifact: artifact}
}
