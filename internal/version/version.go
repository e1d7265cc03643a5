package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Planner identifies the planner algorithm revision. It is stamped into
// every planning result so stored trajectories can be traced back to the
// logic that produced them.
const Planner = "v1"
