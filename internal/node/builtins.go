// Package node reports which module names are Node.js built-ins, the
// reference implementation of internal/resolve's NodeBuiltins collaborator.
package node

// builtins is the set of Node.js built-in module names, unprefixed (i.e.
// "fs", not "node:fs"). It includes deprecated aliases such as "sys".
var builtins = map[string]bool{
	"assert":              true,
	"assert/strict":       true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"dns/promises":        true,
	"domain":               true,
	"events":              true,
	"fs":                   true,
	"fs/promises":          true,
	"http":                 true,
	"http2":                true,
	"https":                true,
	"inspector":            true,
	"inspector/promises":   true,
	"module":               true,
	"net":                  true,
	"os":                   true,
	"path":                 true,
	"path/posix":           true,
	"path/win32":           true,
	"perf_hooks":           true,
	"process":              true,
	"punycode":             true,
	"querystring":          true,
	"readline":             true,
	"readline/promises":    true,
	"repl":                 true,
	"stream":               true,
	"stream/consumers":     true,
	"stream/promises":      true,
	"stream/web":           true,
	"string_decoder":       true,
	"sys":                  true,
	"timers":               true,
	"timers/promises":      true,
	"tls":                  true,
	"trace_events":         true,
	"tty":                  true,
	"url":                  true,
	"util":                 true,
	"util/types":           true,
	"v8":                   true,
	"vm":                   true,
	"wasi":                 true,
	"worker_threads":       true,
	"zlib":                 true,
}

// Builtins reports whether a module name is a Node.js built-in.
type Builtins struct{}

// New returns a Builtins backed by the standard Node.js module list.
func New() Builtins { return Builtins{} }

// IsBuiltin implements resolve.NodeBuiltins.
func (Builtins) IsBuiltin(name string) bool {
	return builtins[name]
}
