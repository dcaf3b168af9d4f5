package core

// Environment selects the guide service's runtime profile. Only two profiles
// exist: development (console logging, debug level) and production.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// String returns the string representation of the environment.
func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// ParseEnvironment normalises the provided value. Anything that is not
// exactly "production" runs as development so a misconfigured box still logs
// verbosely instead of silently dropping detail.
func ParseEnvironment(v string) Environment {
	if Environment(v) == Production {
		return Production
	}
	return Development
}
