package pes

// ConfigError reports an invalid sampler configuration or a malformed
// problem definition. It is always fatal: surfaced at construction or before
// the first point, never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return "sampler configuration: " + e.Reason
	}
	return "sampler configuration error"
}

func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// ErrConfig matches any ConfigError via errors.Is.
var ErrConfig = &ConfigError{}

// DriverError reports a problem driver that is not one of the supported
// molecule driver kinds, or one without a molecule. Raised before any point
// is evaluated and re-checked per point.
type DriverError struct {
	Reason string
}

func (e *DriverError) Error() string {
	if e.Reason != "" {
		return "unsupported driver: " + e.Reason
	}
	return "unsupported driver"
}

func (e *DriverError) Is(target error) bool {
	_, ok := target.(*DriverError)
	return ok
}

// ErrDriver matches any DriverError via errors.Is.
var ErrDriver = &DriverError{}
