package filter

// Config is the root-relative filter configuration: ordered include and
// exclude glob pattern lists, plus the two explicit per-path override sets.
// A path never appears in both explicit sets at once; the session's
// include/exclude operations enforce that by always removing from one set
// before inserting into the other.
type Config struct {
	IncludePatterns  []string
	ExcludePatterns  []string
	ExplicitIncludes map[string]struct{}
	ExplicitExcludes map[string]struct{}
}

// NewConfig returns an empty filter configuration.
func NewConfig() *Config {
	return &Config{
		ExplicitIncludes: make(map[string]struct{}),
		ExplicitExcludes: make(map[string]struct{}),
	}
}

// Clone returns a deep copy. The batch traversal reads a clone so the
// interactive session can keep mutating its own copy.
func (c *Config) Clone() *Config {
	out := &Config{
		IncludePatterns:  append([]string(nil), c.IncludePatterns...),
		ExcludePatterns:  append([]string(nil), c.ExcludePatterns...),
		ExplicitIncludes: make(map[string]struct{}, len(c.ExplicitIncludes)),
		ExplicitExcludes: make(map[string]struct{}, len(c.ExplicitExcludes)),
	}
	for p := range c.ExplicitIncludes {
		out.ExplicitIncludes[p] = struct{}{}
	}
	for p := range c.ExplicitExcludes {
		out.ExplicitExcludes[p] = struct{}{}
	}
	return out
}
